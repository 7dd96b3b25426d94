package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jpsember/dev/pkg/codes"
)

// Tracer returns named tracer for dev components.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// RecordFailure marks span as failed with code and err.
func RecordFailure(span trace.Span, code codes.Code, err error) {
	span.SetAttributes(
		attribute.Int("dev.error.code", int(code)),
		attribute.String("dev.error.symbol", code.String()),
	)
	if err != nil {
		span.RecordError(err)
	}
	span.SetStatus(otelcodes.Error, code.String())
}
