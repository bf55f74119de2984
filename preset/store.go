package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

// Config is the snapshot of build options a preset captures.
type Config struct {
	ShowConsole         bool     `json:"showConsole"`
	IncludePackages     []string `json:"includePackages"`
	ExcludePackages     []string `json:"excludePackages"`
	SelectedDataFolders []string `json:"selectedDataFolders"`
	DemoMode            bool     `json:"demoMode"`
	DemoDuration        int      `json:"demoDuration"`
	IconPath            *string  `json:"iconPath"`
}

// Preset is a named, persisted configuration snapshot.
type Preset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Config    Config    `json:"config"`
}

var (
	// ErrInvalidName is returned when a preset name is empty after trimming.
	ErrInvalidName = errors.New("preset name must not be empty")
	// ErrDuplicateName is returned when a preset with the same trimmed name
	// already exists. Rename by deleting the old preset first.
	ErrDuplicateName = errors.New("a preset with this name already exists")
	// ErrCorrupted signals that the stored collection could not be parsed.
	// It is recoverable: the store behaves as if the collection were empty.
	ErrCorrupted = errors.New("preset storage corrupted")
)

// Store owns the persisted preset collection. It outlives any single wizard
// session; every mutation rewrites the whole collection through the port.
type Store struct {
	port Port
	now  func() time.Time
}

// NewStore creates a preset store on top of a persistence port.
func NewStore(port Port) *Store {
	return &Store{port: port, now: time.Now}
}

// Load reads the full preset collection in append order. A missing, empty or
// unparseable slot yields an empty collection; corruption is reported through
// the returned error (wrapping ErrCorrupted) but is never fatal — the presets
// slice is always usable.
func (s *Store) Load() ([]Preset, error) {
	data, err := s.port.Read()
	if err != nil {
		return []Preset{}, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if len(data) == 0 {
		return []Preset{}, nil
	}

	var presets []Preset
	if err := json.Unmarshal(data, &presets); err != nil {
		return []Preset{}, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return presets, nil
}

// List returns the presets in the order they were saved.
func (s *Store) List() []Preset {
	presets, _ := s.Load()
	return presets
}

// Save appends a new named preset and rewrites the collection. The name is
// trimmed; an empty result fails with ErrInvalidName and a clash with an
// existing trimmed name fails with ErrDuplicateName.
func (s *Store) Save(name string, config Config) (Preset, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Preset{}, ErrInvalidName
	}

	presets, _ := s.Load()
	for _, existing := range presets {
		if existing.Name == trimmed {
			return Preset{}, fmt.Errorf("%w: %q", ErrDuplicateName, trimmed)
		}
	}

	createdAt := s.now()
	created := Preset{
		ID:        newID(trimmed, createdAt),
		Name:      trimmed,
		CreatedAt: createdAt,
		Config:    config,
	}

	presets = append(presets, created)
	if err := s.writeAll(presets); err != nil {
		return Preset{}, err
	}
	return created, nil
}

// Delete removes the preset with the given id and reports whether it existed.
func (s *Store) Delete(id string) (bool, error) {
	presets, _ := s.Load()

	kept := presets[:0]
	removed := false
	for _, p := range presets {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return false, nil
	}

	if err := s.writeAll(kept); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) writeAll(presets []Preset) error {
	data, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	if err := s.port.Write(data); err != nil {
		return fmt.Errorf("failed to persist presets: %w", err)
	}
	return nil
}

// newID builds a monotonic-ish unique id from the creation time and a short
// hash of the name.
func newID(name string, createdAt time.Time) string {
	return fmt.Sprintf("%d-%04x", createdAt.UnixMilli(), xxh3.HashString(name)&0xffff)
}
