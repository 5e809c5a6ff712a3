// Package jsonfile stores the key-value surface in a single JSON file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bnema/newtab/internal/domain/repository"
	"github.com/bnema/newtab/internal/logging"
)

const fileVersion = 1

type document struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

// Store keeps every key in one file, rewritten atomically on each change.
type Store struct {
	path string

	mu      sync.Mutex
	entries map[string]string
	loaded  bool
}

var _ repository.KeyValueRepository = (*Store)(nil)

// NewStore creates a store backed by path. The file is read on first use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return "", false, err
	}
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}
	prev, had := s.entries[key]
	s.entries[key] = value
	if err := s.save(); err != nil {
		if had {
			s.entries[key] = prev
		} else {
			delete(s.entries, key)
		}
		return err
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}
	prev, had := s.entries[key]
	if !had {
		return nil
	}
	delete(s.entries, key)
	if err := s.save(); err != nil {
		s.entries[key] = prev
		return err
	}
	return nil
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; every change is already on disk.
func (s *Store) Close() error {
	return nil
}

func (s *Store) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.entries = make(map[string]string)
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse storage %s: %w", s.path, err)
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]string)
	}
	s.entries = doc.Entries
	s.loaded = true

	logging.FromContext(ctx).Debug().
		Str("path", s.path).
		Int("keys", len(s.entries)).
		Msg("json storage loaded")
	return nil
}

// save writes to a temp file in the same directory and renames it over the
// target so readers never see a partial document.
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	data, err := json.MarshalIndent(document{Version: fileVersion, Entries: s.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".newtab-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to chmod storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}
