package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/schuko/tracing"
)

// newLogger creates a logger with timestamps like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to milliseconds.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger of ctx, or log.Default() if there
// is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// === Tracing bridge ========================================================

// traceSelector routes the tracers of the library packages to a logger,
// prefixed with the tracer's key.
type traceSelector struct {
	logger *log.Logger
}

// Select is part of interface tracing.TraceSelector.
func (sel traceSelector) Select(key string) tracing.Trace {
	return logTrace{sel.logger.WithPrefix(key)}
}

// routeTracing makes library tracing visible in l.
func routeTracing(l *log.Logger) {
	tracing.SetTraceSelector(traceSelector{logger: l})
}

// logTrace implements tracing.Trace on top of a charm logger.
type logTrace struct {
	l *log.Logger
}

func (t logTrace) Errorf(s string, args ...interface{}) { t.l.Errorf(s, args...) }
func (t logTrace) Infof(s string, args ...interface{})  { t.l.Infof(s, args...) }
func (t logTrace) Debugf(s string, args ...interface{}) { t.l.Debugf(s, args...) }

func (t logTrace) P(key string, val interface{}) tracing.Trace {
	return logTrace{t.l.With(key, fmt.Sprint(val))}
}

func (t logTrace) SetTraceLevel(level tracing.TraceLevel) {
	switch level {
	case tracing.LevelDebug:
		t.l.SetLevel(log.DebugLevel)
	case tracing.LevelInfo:
		t.l.SetLevel(log.InfoLevel)
	default:
		t.l.SetLevel(log.ErrorLevel)
	}
}

func (t logTrace) GetTraceLevel() tracing.TraceLevel {
	switch t.l.GetLevel() {
	case log.DebugLevel:
		return tracing.LevelDebug
	case log.InfoLevel:
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

func (t logTrace) SetOutput(w io.Writer) { t.l.SetOutput(w) }
