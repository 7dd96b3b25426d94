// Package logger is a thin wrapper around logrus' standard logger.
//
// It is imported as `log`, so the CLI and the library packages share one
// backend configured once via pkg/bootstrap.
package logger

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/jpsember/dev/pkg/codes"
)

type Fields = log.Fields
type Entry = log.Entry
type Logger = log.Logger

func StandardLogger() *Logger { return log.StandardLogger() }
func NewEntry(l *Logger) *Entry {
	return log.NewEntry(l)
}

func WithFields(fields Fields) *Entry { return log.WithFields(fields) }
func WithError(err error) *Entry      { return log.WithError(err) }

// WithTrace binds ctx and adds "trace_id" when OpenTelemetry span context is present.
func WithTrace(ctx context.Context) *Entry {
	e := log.WithContext(ctx)
	if ctx == nil {
		return e
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		e = e.WithField("trace_id", sc.TraceID().String())
	}
	return e
}

// WithCode adds "code" and "symbol" fields.
func WithCode(e *Entry, c codes.Code) *Entry {
	if e == nil {
		e = log.NewEntry(log.StandardLogger())
	}
	return e.WithFields(log.Fields{"code": int(c), "symbol": c.String()})
}

// WithErr adds the error and, when it carries one, its code.
func WithErr(e *Entry, err error) *Entry {
	if e == nil {
		e = log.NewEntry(log.StandardLogger())
	}
	e = e.WithError(err)
	if c := codes.CodeOf(err); c != 0 {
		e = WithCode(e, c)
	}
	return e
}

func Debug(args ...any) { log.Debug(args...) }
