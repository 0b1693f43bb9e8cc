// Package theme owns the persisted light/dark display preference.
package theme

import (
	"fmt"
	"sync"
)

// Theme is the CSS class applied to the document body.
type Theme string

const (
	Light Theme = "light-theme"
	Dark  Theme = "dark-theme"
)

// StorageKey is the key the preference is persisted under.
const StorageKey = "theme"

// Parse validates a stored value.
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// Other returns the opposite theme.
func (t Theme) Other() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool { return t == Dark }

// HighlightStyle names the chroma style used for code blocks under t.
func (t Theme) HighlightStyle() string {
	if t == Dark {
		return "monokai"
	}
	return "github"
}

// ApplyTo swaps the theme class in a class list: both theme classes are
// removed and t appended, so the result never carries both or neither.
func (t Theme) ApplyTo(classes []string) []string {
	out := make([]string, 0, len(classes)+1)
	for _, c := range classes {
		if c == string(Light) || c == string(Dark) {
			continue
		}
		out = append(out, c)
	}
	return append(out, string(t))
}

// Storage is a string key/value store that survives between sessions.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Preference mirrors the persisted theme in memory.
type Preference struct {
	store Storage

	mu      sync.Mutex
	current Theme
}

// NewPreference returns a preference backed by store. Until Load is called
// it reports Light.
func NewPreference(store Storage) *Preference {
	return &Preference{store: store, current: Light}
}

// Load reads the persisted theme. A missing or unrecognised value is
// replaced with Light, which is written back.
func (p *Preference) Load() (Theme, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, ok, err := p.store.Get(StorageKey)
	if err != nil {
		return p.current, fmt.Errorf("read theme: %w", err)
	}
	if t, valid := Parse(raw); ok && valid {
		p.current = t
		return t, nil
	}

	p.current = Light
	if err := p.store.Set(StorageKey, string(Light)); err != nil {
		return p.current, fmt.Errorf("write default theme: %w", err)
	}
	return p.current, nil
}

// Toggle flips the theme and persists the new value.
func (p *Preference) Toggle() (Theme, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.current.Other()
	if err := p.store.Set(StorageKey, string(next)); err != nil {
		return p.current, fmt.Errorf("write theme: %w", err)
	}
	p.current = next
	return next, nil
}

// Current returns the in-memory theme.
func (p *Preference) Current() Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// MemoryStorage is an in-process Storage.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
