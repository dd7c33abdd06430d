package fill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/paramstr/pkg/paramstr"
	"github.com/randalmurphal/paramstr/pkg/paramstr/observability"
)

// Journal saves and restores pattern values through a Store, recording
// metrics and spans for every operation.
type Journal struct {
	store   Store
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// JournalOption configures a Journal.
type JournalOption func(*Journal)

// WithLogger sets the logger for save and failure messages.
// A nil logger disables logging.
func WithLogger(logger *slog.Logger) JournalOption {
	return func(j *Journal) {
		j.logger = logger
	}
}

// WithMetrics sets the recorder for snapshot operations.
func WithMetrics(m observability.MetricsRecorder) JournalOption {
	return func(j *Journal) {
		if m != nil {
			j.metrics = m
		}
	}
}

// WithSpanManager sets the span manager for snapshot operations.
func WithSpanManager(sm observability.SpanManager) JournalOption {
	return func(j *Journal) {
		if sm != nil {
			j.spans = sm
		}
	}
}

// NewJournal creates a Journal over store.
func NewJournal(store Store, opts ...JournalOption) *Journal {
	j := &Journal{
		store:   store,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Save captures the values of p and stores them under the template name.
func (j *Journal) Save(ctx context.Context, name string, p *paramstr.Pattern) (snap *Snapshot, err error) {
	ctx, span := j.spans.StartSnapshotSpan(ctx, "save", name)
	defer func() { j.finish(span, name, "save", err) }()

	snap = Capture(name, p)
	data, err := snap.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := j.store.Save(ctx, name, snap.ID, data); err != nil {
		return nil, err
	}

	j.metrics.RecordSnapshot(ctx, "save", int64(len(data)))
	observability.LogSnapshotSaved(j.logger, name, snap.ID, len(data))
	return snap, nil
}

// Load returns a stored snapshot.
func (j *Journal) Load(ctx context.Context, name, id string) (snap *Snapshot, err error) {
	ctx, span := j.spans.StartSnapshotSpan(ctx, "load", name)
	defer func() { j.finish(span, name, "load", err) }()

	data, err := j.store.Load(ctx, name, id)
	if err != nil {
		return nil, err
	}
	j.metrics.RecordSnapshot(ctx, "load", int64(len(data)))
	return Unmarshal(data)
}

// Latest returns the most recently saved snapshot of a template.
// Returns ErrNotFound if the template has none.
func (j *Journal) Latest(ctx context.Context, name string) (*Snapshot, error) {
	infos, err := j.List(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("%w: template %q has no snapshots", ErrNotFound, name)
	}
	return j.Load(ctx, name, infos[len(infos)-1].ID)
}

// Restore loads a snapshot and applies its values to p.
func (j *Journal) Restore(ctx context.Context, name, id string, p *paramstr.Pattern) error {
	snap, err := j.Load(ctx, name, id)
	if err != nil {
		return err
	}
	return snap.Restore(p)
}

// List returns the snapshots of a template, oldest first.
func (j *Journal) List(ctx context.Context, name string) ([]Info, error) {
	return j.store.List(ctx, name)
}

// Delete removes a snapshot.
func (j *Journal) Delete(ctx context.Context, name, id string) (err error) {
	ctx, span := j.spans.StartSnapshotSpan(ctx, "delete", name)
	defer func() { j.finish(span, name, "delete", err) }()

	if err := j.store.Delete(ctx, name, id); err != nil {
		return err
	}
	j.metrics.RecordSnapshot(ctx, "delete", 0)
	return nil
}

// Close closes the underlying store.
func (j *Journal) Close() error {
	return j.store.Close()
}

func (j *Journal) finish(span trace.Span, name, op string, err error) {
	j.spans.EndSpanWithError(span, err)
	if err != nil && !errors.Is(err, ErrNotFound) {
		observability.LogSnapshotError(j.logger, name, op, err)
	}
}
