package fill

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/paramstr/pkg/paramstr"
)

// Version is the current snapshot format version.
// Increment when making breaking changes to snapshot structure.
const Version = 1

// Snapshot is the persisted set of values of one Pattern.
type Snapshot struct {
	// Metadata
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	Template  string    `json:"template"`
	Timestamp time.Time `json:"timestamp"`

	// Pattern is the pattern text the values belong to. Restore refuses to
	// apply values to a different pattern.
	Pattern string `json:"pattern"`

	// Values holds the textual form of every parameter with a value.
	Values map[string]string `json:"values"`
}

// Capture records the current values of p under the template name.
func Capture(name string, p *paramstr.Pattern) *Snapshot {
	current := p.Values()
	values := make(map[string]string, len(current))
	for k, v := range current {
		values[k] = fmt.Sprint(v)
	}
	return &Snapshot{
		Version:   Version,
		ID:        uuid.NewString(),
		Template:  name,
		Timestamp: time.Now().UTC(),
		Pattern:   p.String(),
		Values:    values,
	}
}

// Restore replaces the values of p with the snapshot values.
// Returns ErrPatternChanged if p was built from a different pattern.
func (s *Snapshot) Restore(p *paramstr.Pattern) error {
	if p.String() != s.Pattern {
		return fmt.Errorf("%w: snapshot of %q cannot be applied to %q", ErrPatternChanged, s.Pattern, p.String())
	}

	values := make(map[string]any, len(s.Values))
	for name, v := range s.Values {
		if _, err := p.Get(name); err != nil {
			return err
		}
		values[name] = v
	}
	p.ClearValues()
	return p.SetAll(values)
}

// Marshal serializes a snapshot to JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal deserializes a snapshot from JSON.
// Returns ErrVersionMismatch for snapshots written by another format version.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, s.Version, Version)
	}
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	return &s, nil
}
