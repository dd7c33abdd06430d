package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the paramstr tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("paramstr")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartCatalogSpan starts a span for a catalog operation ("load", "reload").
	StartCatalogSpan(ctx context.Context, op, source string) (context.Context, trace.Span)

	// StartSnapshotSpan starts a span for a snapshot store operation.
	StartSnapshotSpan(ctx context.Context, op, template string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartCatalogSpan starts a span for a catalog operation.
func (m *otelSpanManager) StartCatalogSpan(ctx context.Context, op, source string) (context.Context, trace.Span) {
	return StartCatalogSpan(ctx, op, source)
}

// StartSnapshotSpan starts a span for a snapshot store operation.
func (m *otelSpanManager) StartSnapshotSpan(ctx context.Context, op, template string) (context.Context, trace.Span) {
	return StartSnapshotSpan(ctx, op, template)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// Convenience functions that operate on the global tracer.
// These are useful for simple cases where you don't need the interface.

// StartCatalogSpan starts a span for a catalog operation.
// Uses the global OTel tracer.
func StartCatalogSpan(ctx context.Context, op, source string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "paramstr.catalog."+op,
		trace.WithAttributes(
			attribute.String("catalog.source", source),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartSnapshotSpan starts a span for a snapshot store operation.
// Uses the global OTel tracer.
func StartSnapshotSpan(ctx context.Context, op, template string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "paramstr.snapshot."+op,
		trace.WithAttributes(
			attribute.String("template.name", template),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
