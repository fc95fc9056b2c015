package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "SavitzkyGolay.Transform")
		panic("mat: dimension mismatch")
	}

	err := testFunc()
	require.Error(t, err)

	var panicErr *PanicError
	require.True(t, As(err, &panicErr), "expected PanicError, got %T", err)
	assert.Equal(t, "SavitzkyGolay.Transform", panicErr.Operation)
	assert.Equal(t, "mat: dimension mismatch", panicErr.PanicValue)
	assert.NotEmpty(t, panicErr.StackTrace)
	assert.Equal(t, "panic in SavitzkyGolay.Transform: mat: dimension mismatch", panicErr.Error())
	assert.Contains(t, panicErr.String(), "Stack trace:")
}

func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "PLSRegression.Fit")
		return nil
	}

	assert.NoError(t, testFunc())
}

func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "PLSRegression.Fit")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "panic in PLSRegression.Fit"), err.Error())
	assert.True(t, strings.Contains(err.Error(), "original error"), err.Error())
	assert.True(t, Is(err, originalErr))
}

func TestRecover_DifferentPanicTypes(t *testing.T) {
	testCases := []struct {
		name       string
		panicValue interface{}
	}{
		{"string panic", "string panic"},
		{"int panic", 42},
		{"error panic", fmt.Errorf("error as panic")},
		{"struct panic", struct{ Msg string }{"struct message"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testFunc := func() (err error) {
				defer Recover(&err, "TypeTest")
				panic(tc.panicValue)
			}

			err := testFunc()
			require.Error(t, err)

			var panicErr *PanicError
			require.True(t, As(err, &panicErr))
			assert.Equal(t, fmt.Sprintf("%v", tc.panicValue), fmt.Sprintf("%v", panicErr.PanicValue))
		})
	}
}
