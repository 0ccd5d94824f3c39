package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"compass/internal/fsutil"
)

// ErrNotExist is returned by a Backend when the named file is absent.
var ErrNotExist = errors.New("file does not exist")

// Backend is the byte-level store under Storage. Names are slash-separated
// paths relative to the data directory ("data/insights.json").
type Backend interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	Append(name string, data []byte) error
	Remove(name string) error
}

// DirBackend stores files under a directory on disk.
type DirBackend struct {
	Dir string
}

func (b DirBackend) path(name string) string {
	return filepath.Join(b.Dir, filepath.FromSlash(name))
}

func (b DirBackend) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(b.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotExist)
	}
	return data, err
}

func (b DirBackend) Write(name string, data []byte) error {
	return fsutil.WriteFileAtomic(b.path(name), data, dataFilePerm)
}

func (b DirBackend) Append(name string, data []byte) error {
	return fsutil.AppendFileSync(b.path(name), data, dataFilePerm)
}

func (b DirBackend) Remove(name string) error {
	err := os.Remove(b.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", name, ErrNotExist)
	}
	return err
}

// MemBackend keeps files in memory. WriteErr, when set, makes every Write
// and Append fail with it.
type MemBackend struct {
	mu       sync.Mutex
	files    map[string][]byte
	WriteErr error
}

// NewMemBackend returns an empty in-memory backend.
func NewMemBackend() *MemBackend {
	return &MemBackend{files: make(map[string][]byte)}
}

func (m *MemBackend) Read(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemBackend) Write(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = append([]byte(nil), data...)
	return nil
}

func (m *MemBackend) Append(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = append(m.files[name], data...)
	return nil
}

func (m *MemBackend) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[name]; !ok {
		return fmt.Errorf("%s: %w", name, ErrNotExist)
	}
	delete(m.files, name)
	return nil
}

// Names returns the stored file names, sorted.
func (m *MemBackend) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
