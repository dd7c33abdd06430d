package fill

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore is an in-memory snapshot store for tests and short-lived
// processes. Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[string]storedSnapshot // template -> id -> snapshot
	seq    int
	closed bool
}

type storedSnapshot struct {
	data      []byte
	sequence  int
	timestamp time.Time
}

// NewMemoryStore creates a new in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]storedSnapshot),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, template, id string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if m.data[template] == nil {
		m.data[template] = make(map[string]storedSnapshot)
	}

	m.seq++
	m.data[template][id] = storedSnapshot{
		data:      slices.Clone(data),
		sequence:  m.seq,
		timestamp: time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(ctx context.Context, template, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	snap, ok := m.data[template][id]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(snap.data), nil
}

// List implements Store.
func (m *MemoryStore) List(ctx context.Context, template string) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	snaps := m.data[template]
	infos := make([]Info, 0, len(snaps))
	for id, snap := range snaps {
		infos = append(infos, Info{
			Template:  template,
			ID:        id,
			Sequence:  snap.sequence,
			Timestamp: snap.timestamp,
			Size:      int64(len(snap.data)),
		})
	}
	slices.SortFunc(infos, func(a, b Info) int {
		return a.Sequence - b.Sequence
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, template, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if snaps, ok := m.data[template]; ok {
		delete(snaps, id)
		if len(snaps) == 0 {
			delete(m.data, template)
		}
	}
	return nil
}

// DeleteTemplate implements Store.
func (m *MemoryStore) DeleteTemplate(ctx context.Context, template string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, template)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of snapshots across all templates.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, snaps := range m.data {
		count += len(snaps)
	}
	return count
}
