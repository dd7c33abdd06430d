package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records paramstr metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCompile records a pattern compilation and whether it failed.
	RecordCompile(ctx context.Context, occurrences int, err error)

	// RecordRender records a render, and whether the cached result was reused.
	RecordRender(ctx context.Context, cached bool)

	// RecordParse records a parse with its duration and error status.
	RecordParse(ctx context.Context, duration time.Duration, err error)

	// RecordCatalogLoad records a catalog load.
	RecordCatalogLoad(ctx context.Context, templates int, duration time.Duration, err error)

	// RecordSnapshot records a snapshot store operation.
	RecordSnapshot(ctx context.Context, op string, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	compiles       metric.Int64Counter
	compileErrors  metric.Int64Counter
	renders        metric.Int64Counter
	parses         metric.Int64Counter
	parseLatency   metric.Float64Histogram
	mismatches     metric.Int64Counter
	catalogLoads   metric.Int64Counter
	catalogSize    metric.Int64Histogram
	catalogLatency metric.Float64Histogram
	snapshotOps    metric.Int64Counter
	snapshotSize   metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("paramstr")

	compiles, err := meter.Int64Counter("paramstr.compile.count",
		metric.WithDescription("Number of pattern compilations"),
	)
	if err != nil {
		return nil, err
	}

	compileErrors, err := meter.Int64Counter("paramstr.compile.errors",
		metric.WithDescription("Number of rejected patterns"),
	)
	if err != nil {
		return nil, err
	}

	renders, err := meter.Int64Counter("paramstr.render.count",
		metric.WithDescription("Number of renders"),
	)
	if err != nil {
		return nil, err
	}

	parses, err := meter.Int64Counter("paramstr.parse.count",
		metric.WithDescription("Number of parse calls"),
	)
	if err != nil {
		return nil, err
	}

	parseLatency, err := meter.Float64Histogram("paramstr.parse.latency_ms",
		metric.WithDescription("Parse latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	mismatches, err := meter.Int64Counter("paramstr.parse.mismatches",
		metric.WithDescription("Number of inputs that did not match their pattern"),
	)
	if err != nil {
		return nil, err
	}

	catalogLoads, err := meter.Int64Counter("paramstr.catalog.loads",
		metric.WithDescription("Number of catalog loads"),
	)
	if err != nil {
		return nil, err
	}

	catalogSize, err := meter.Int64Histogram("paramstr.catalog.templates",
		metric.WithDescription("Number of templates per catalog load"),
	)
	if err != nil {
		return nil, err
	}

	catalogLatency, err := meter.Float64Histogram("paramstr.catalog.latency_ms",
		metric.WithDescription("Catalog load latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	snapshotOps, err := meter.Int64Counter("paramstr.snapshot.operations",
		metric.WithDescription("Number of snapshot store operations"),
	)
	if err != nil {
		return nil, err
	}

	snapshotSize, err := meter.Int64Histogram("paramstr.snapshot.size_bytes",
		metric.WithDescription("Snapshot size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		compiles:       compiles,
		compileErrors:  compileErrors,
		renders:        renders,
		parses:         parses,
		parseLatency:   parseLatency,
		mismatches:     mismatches,
		catalogLoads:   catalogLoads,
		catalogSize:    catalogSize,
		catalogLatency: catalogLatency,
		snapshotOps:    snapshotOps,
		snapshotSize:   snapshotSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCompile records a pattern compilation.
func (m *otelMetrics) RecordCompile(ctx context.Context, _ int, err error) {
	m.compiles.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", err == nil)))
	if err != nil {
		m.compileErrors.Add(ctx, 1)
	}
}

// RecordRender records a render.
func (m *otelMetrics) RecordRender(ctx context.Context, cached bool) {
	m.renders.Add(ctx, 1, metric.WithAttributes(attribute.Bool("cached", cached)))
}

// RecordParse records a parse.
func (m *otelMetrics) RecordParse(ctx context.Context, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
	}
	m.parses.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.parseLatency.Record(ctx, Milliseconds(duration), metric.WithAttributes(attrs...))
	if err != nil {
		m.mismatches.Add(ctx, 1)
	}
}

// RecordCatalogLoad records a catalog load.
func (m *otelMetrics) RecordCatalogLoad(ctx context.Context, templates int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
	}
	m.catalogLoads.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.catalogLatency.Record(ctx, Milliseconds(duration), metric.WithAttributes(attrs...))
	if err == nil {
		m.catalogSize.Record(ctx, int64(templates))
	}
}

// RecordSnapshot records a snapshot store operation.
func (m *otelMetrics) RecordSnapshot(ctx context.Context, op string, sizeBytes int64) {
	attrs := []attribute.KeyValue{
		attribute.String("operation", op),
	}
	m.snapshotOps.Add(ctx, 1, metric.WithAttributes(attrs...))
	if sizeBytes > 0 {
		m.snapshotSize.Record(ctx, sizeBytes, metric.WithAttributes(attrs...))
	}
}
