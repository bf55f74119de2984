package preset

import (
	"errors"
	"os"
	"path/filepath"
)

// Port is the persistence slot behind the preset store: one named blob,
// always read and replaced whole. Read returns (nil, nil) when the slot has
// never been written.
type Port interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// FilePort persists the preset collection in a single JSON file.
type FilePort struct {
	path string
}

// NewFilePort creates a file-backed persistence port at the given path.
func NewFilePort(path string) *FilePort {
	return &FilePort{path: path}
}

func (p *FilePort) Read() ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write replaces the slot atomically: the blob goes to a temp file first and
// is renamed over the old one, so a crash mid-write leaves either the old
// collection or the new one, never a mixture.
func (p *FilePort) Write(data []byte) error {
	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

// MemoryPort is an in-memory Port for tests.
type MemoryPort struct {
	data []byte
}

func (p *MemoryPort) Read() ([]byte, error) { return p.data, nil }

func (p *MemoryPort) Write(data []byte) error {
	p.data = append([]byte(nil), data...)
	return nil
}
