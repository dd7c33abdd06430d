// Package fill persists the values of paramstr patterns as snapshots.
package fill

import (
	"context"
	"errors"
	"time"
)

// Store persists encoded snapshots keyed by template name and snapshot ID.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a snapshot. Overwrites if (template, id) already exists.
	Save(ctx context.Context, template, id string, data []byte) error

	// Load retrieves a snapshot.
	// Returns ErrNotFound if it doesn't exist.
	Load(ctx context.Context, template, id string) ([]byte, error)

	// List returns the snapshots of a template, oldest save first.
	// Returns an empty slice (not error) if the template has none.
	List(ctx context.Context, template string) ([]Info, error)

	// Delete removes a snapshot.
	// Returns nil if it doesn't exist.
	Delete(ctx context.Context, template, id string) error

	// DeleteTemplate removes every snapshot of a template.
	DeleteTemplate(ctx context.Context, template string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info describes a stored snapshot without loading it.
type Info struct {
	Template  string
	ID        string
	Sequence  int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound indicates a snapshot doesn't exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("snapshot store closed")

	// ErrVersionMismatch indicates a snapshot written by another format version.
	ErrVersionMismatch = errors.New("snapshot version mismatch")

	// ErrPatternChanged indicates a snapshot taken from a different pattern.
	ErrPatternChanged = errors.New("snapshot pattern changed")
)
