// Package model implements the normalization lookup model: a flat raw→canonical
// map built from confirmed vocabulary, with an atomically swappable holder so
// requests always see either the old or the new model, never a mix.
package model

import (
	"strings"
	"time"
)

// Model is one immutable snapshot of the lookup table. Keys are stored
// lowercased; a Model is never mutated after construction, which is what makes
// the lock-free holder swap safe.
type Model struct {
	lookup  map[string]string
	version string
	builtAt time.Time
}

// New builds a snapshot from a raw→canonical map. Keys are lowercased and
// trimmed; the input map is copied, not retained.
func New(lookup map[string]string, version string, builtAt time.Time) *Model {
	m := &Model{
		lookup:  make(map[string]string, len(lookup)),
		version: version,
		builtAt: builtAt,
	}
	for raw, canonical := range lookup {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			continue
		}
		m.lookup[key] = canonical
	}
	return m
}

// Predict returns the canonical value for a raw input. Lookup is
// case-insensitive with surrounding whitespace ignored. Unknown values fall
// back to the trimmed input unchanged, so prediction never fails.
func (m *Model) Predict(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := m.lookup[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// Version identifies this snapshot.
func (m *Model) Version() string { return m.version }

// BuiltAt is when the snapshot was trained.
func (m *Model) BuiltAt() time.Time { return m.builtAt }

// Size is the number of known raw values.
func (m *Model) Size() int { return len(m.lookup) }

// Entries returns a copy of the lookup table, keys lowercased.
func (m *Model) Entries() map[string]string {
	out := make(map[string]string, len(m.lookup))
	for k, v := range m.lookup {
		out[k] = v
	}
	return out
}
