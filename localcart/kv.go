package localcart

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// KV is the string key-value backend a Store persists into. A failed or
// missing read surfaces as ok=false and is treated as an empty cart upstream;
// write failures are returned as-is. Implementations must be safe for use
// from concurrent requests.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryKV keeps records in a mutex-guarded map. Used in tests and as a
// fallback when no cart directory is configured.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FileKV keeps one file per key under a directory, so guest carts survive a
// server restart.
type FileKV struct {
	dir string
}

func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	// Keys are guest ids (hex), but never trust them as path components.
	key = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, key)
	return filepath.Join(f.dir, key+".json")
}

func (f *FileKV) Get(key string) (string, bool) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func (f *FileKV) Set(key, value string) error {
	return os.WriteFile(f.path(key), []byte(value), 0644)
}

func (f *FileKV) Delete(key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
