package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mirpls/pkg/errors"
)

func TestStateManager(t *testing.T) {
	s := NewStateManager()

	err := s.RequireFitted("PLSRegression", "Predict")
	require.Error(t, err)
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	s.SetDimensions(500, 80)
	s.SetFitted()
	assert.True(t, s.IsFitted())
	assert.NoError(t, s.RequireFitted("PLSRegression", "Predict"))

	nFeatures, nSamples := s.GetDimensions()
	assert.Equal(t, 500, nFeatures)
	assert.Equal(t, 80, nSamples)

	assert.NoError(t, s.RequireFeatures("PLSRegression.Predict", 500))
	err = s.RequireFeatures("PLSRegression.Predict", 499)
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 1, dimErr.Axis)

	s.Reset()
	assert.False(t, s.IsFitted())
	nFeatures, _ = s.GetDimensions()
	assert.Zero(t, nFeatures)
}

func TestBaseEstimator(t *testing.T) {
	var e BaseEstimator
	assert.False(t, e.IsFitted())
	e.SetFitted()
	assert.True(t, e.IsFitted())
	e.Reset()
	assert.False(t, e.IsFitted())
}
