package log

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/mirpls/pkg/errors"
)

// ZerologProvider is the default LoggerProvider. All loggers it hands out
// share one zerolog root and level.
type ZerologProvider struct {
	mu   sync.RWMutex
	root zerolog.Logger
}

// NewZerologProvider returns a provider writing human-readable lines to
// stderr, so that stdout stays reserved for the pipeline report.
// It also routes errors.Warn through the root logger.
func NewZerologProvider(level Level) *ZerologProvider {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return NewZerologProviderWithWriter(out, level)
}

// NewZerologProviderWithWriter returns a provider writing JSON lines to w.
func NewZerologProviderWithWriter(w io.Writer, level Level) *ZerologProvider {
	p := &ZerologProvider{
		root: zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger(),
	}
	errors.SetZerologWarnFunc(p.warn)
	return p
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &zerologLogger{zl: p.root}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &zerologLogger{zl: p.root.With().Str(ComponentKey, name).Logger()}
}

// SetLevel implements LoggerProvider.SetLevel. Loggers obtained earlier keep
// their level.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.root = p.root.Level(toZerologLevel(level))
}

func (p *ZerologProvider) warn(w error) {
	p.mu.RLock()
	zl := p.root
	p.mu.RUnlock()

	event := zl.Warn()
	if m, ok := w.(zerolog.LogObjectMarshaler); ok {
		event = event.Object("warning", m)
	}
	event.Msg(w.Error())
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	l.log(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	l.log(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	l.log(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	l.log(l.zl.Error(), msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	return &zerologLogger{zl: l.zl.With().Fields(fields).Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.zl.GetLevel()
}

// log writes one event. A leading error field is attached under "error"
// along with its stack trace; typed errors are also logged as objects.
func (l *zerologLogger) log(event *zerolog.Event, msg string, fields []any) {
	if event == nil {
		return
	}
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			event = event.AnErr(ErrAttrKey, err)
			if st := extractStacktrace(err); st != "" {
				event = event.Str(StacktraceAttrKey, st)
			}
			if m, ok := err.(zerolog.LogObjectMarshaler); ok {
				event = event.Object("error_detail", m)
			}
			fields = fields[1:]
		}
	}
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

var (
	globalMu       sync.RWMutex
	globalProvider LoggerProvider
)

// SetProvider replaces the package-level provider used by GetLogger and
// GetLoggerWithName.
func SetProvider(p LoggerProvider) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalProvider = p
}

func provider() LoggerProvider {
	globalMu.RLock()
	p := globalProvider
	globalMu.RUnlock()
	if p != nil {
		return p
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalProvider == nil {
		globalProvider = NewZerologProvider(LevelInfo)
	}
	return globalProvider
}

// GetLogger returns the root logger of the package-level provider, creating
// a stderr zerolog provider at info level on first use.
func GetLogger() Logger {
	return provider().GetLogger()
}

// GetLoggerWithName returns a component logger from the package-level
// provider.
func GetLoggerWithName(name string) Logger {
	return provider().GetLoggerWithName(name)
}
