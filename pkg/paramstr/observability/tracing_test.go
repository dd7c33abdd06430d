package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("paramstr")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func spanAttr(attrs []attribute.KeyValue, key string) string {
	for _, attr := range attrs {
		if string(attr.Key) == key {
			return attr.Value.AsString()
		}
	}
	return ""
}

func TestStartCatalogSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx := context.Background()
	newCtx, span := StartCatalogSpan(ctx, "load", "templates.yaml")
	require.NotNil(t, span)
	assert.NotEqual(t, ctx, newCtx)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "paramstr.catalog.load", spans[0].Name)
	assert.Equal(t, "templates.yaml", spanAttr(spans[0].Attributes, "catalog.source"))
}

func TestStartSnapshotSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	_, span := StartSnapshotSpan(context.Background(), "save", "user-path")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "paramstr.snapshot.save", spans[0].Name)
	assert.Equal(t, "user-path", spanAttr(spans[0].Attributes, "template.name"))
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	t.Run("sets ok status on success", func(t *testing.T) {
		exporter.Reset()

		_, span := StartCatalogSpan(context.Background(), "load", "a.yaml")
		EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("records error", func(t *testing.T) {
		exporter.Reset()

		_, span := StartCatalogSpan(context.Background(), "load", "b.yaml")
		EndSpanWithError(span, errors.New("invalid pattern"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "invalid pattern", spans[0].Status.Description)
		require.NotEmpty(t, spans[0].Events)
		assert.Equal(t, "exception", spans[0].Events[0].Name)
	})

	t.Run("handles nil span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			EndSpanWithError(nil, errors.New("ignored"))
		})
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	t.Run("adds event to recording span", func(t *testing.T) {
		exporter.Reset()

		ctx, span := StartCatalogSpan(context.Background(), "reload", "c.yaml")
		AddSpanEvent(ctx, "template_rejected", attribute.String("template", "bad"))
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		require.Len(t, spans[0].Events, 1)
		assert.Equal(t, "template_rejected", spans[0].Events[0].Name)
		assert.Equal(t, "bad", spanAttr(spans[0].Events[0].Attributes, "template"))
	})

	t.Run("ignores context without span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			AddSpanEvent(context.Background(), "orphan")
		})
	})
}

func TestSpanManager(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	ctx, catalogSpan := sm.StartCatalogSpan(context.Background(), "load", "d.yaml")
	_, snapSpan := sm.StartSnapshotSpan(ctx, "load", "user-path")
	sm.EndSpanWithError(snapSpan, nil)
	sm.AddSpanEvent(ctx, "loaded")
	sm.EndSpanWithError(catalogSpan, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "paramstr.snapshot.load", spans[0].Name)
	assert.Equal(t, "paramstr.catalog.load", spans[1].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID(),
		"snapshot span should be a child of the catalog span")
}
