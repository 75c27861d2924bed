package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps all keys in a single JSON object on disk. The file is read
// once when the store opens and rewritten atomically on every change.
type FileStore struct {
	path string

	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewFileStore opens (or prepares to create) the JSON file at path.
func NewFileStore(path string) (*FileStore, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(data) > 0 {
			if err := json.Unmarshal(data, &values); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &FileStore{path: path, values: values}, nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Get returns the value stored under key.
func (f *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return "", false, ErrStoreClosed{}
	}
	v, ok := f.values[key]
	return v, ok, nil
}

// Set stores value under key and flushes the file.
func (f *FileStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrStoreClosed{}
	}

	prev, had := f.values[key]
	f.values[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

// Delete removes key and flushes the file.
func (f *FileStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrStoreClosed{}
	}

	prev, had := f.values[key]
	if !had {
		return nil
	}
	delete(f.values, key)
	if err := f.flush(); err != nil {
		f.values[key] = prev
		return err
	}
	return nil
}

// Close marks the store as closed. The file is left in place.
func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// flush writes the map to a temp file and renames it over the target.
// Callers must hold f.mu.
func (f *FileStore) flush() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}
