// Package secrets resolves named credentials from the process environment
// and from a YAML secrets file.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Store looks up a secret by name.
type Store interface {
	Lookup(name string) (string, bool)
}

// EnvStore reads secrets from environment variables.
type EnvStore struct{}

func (EnvStore) Lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// FileStore holds secrets parsed from a flat YAML mapping, e.g.
//
//	OPENAI_API_KEY: sk-...
type FileStore struct {
	values map[string]string
}

// NewFileStore loads secrets from path. A missing file yields an empty store;
// an unreadable or malformed file is an error.
func NewFileStore(path string) (*FileStore, error) {
	store := &FileStore{values: map[string]string{}}
	if path == "" {
		return store, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read secrets file: %w", err)
	}
	if err := yaml.Unmarshal(data, &store.values); err != nil {
		return nil, fmt.Errorf("parse secrets file %s: %w", path, err)
	}
	if store.values == nil {
		store.values = map[string]string{}
	}
	return store, nil
}

func (f *FileStore) Lookup(name string) (string, bool) {
	if f == nil {
		return "", false
	}
	v, ok := f.values[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Chain consults each store in order and returns the first hit.
type Chain []Store

func (c Chain) Lookup(name string) (string, bool) {
	for _, s := range c {
		if v, ok := s.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}
