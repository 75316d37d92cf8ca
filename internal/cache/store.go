// Package cache memoizes fetched conjugation pages on disk, one file per URL.
// Entries never expire; they are trusted as-is until removed.
package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/darkstorm/cooljigate/internal/textutil"
)

// Store is a directory of cached pages keyed by sanitized URL.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. An empty dir selects the host's
// temporary directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Store{dir: dir}
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Key returns the file name used for url.
func Key(url string) string {
	return textutil.SafeName(url)
}

// Path returns the cache file path for url.
func (s *Store) Path(url string) string {
	return filepath.Join(s.dir, Key(url))
}

// Get returns the cached text for url. A missing entry is not an error.
func (s *Store) Get(url string) (string, bool, error) {
	data, err := os.ReadFile(s.Path(url))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading cache entry: %w", err)
	}
	return string(data), true, nil
}

// Put stores text for url, replacing any previous entry.
func (s *Store) Put(url, text string) error {
	if err := os.WriteFile(s.Path(url), []byte(text), 0644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Remove deletes the entry for url. Removing a missing entry is a no-op.
func (s *Store) Remove(url string) (bool, error) {
	err := os.Remove(s.Path(url))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("removing cache entry: %w", err)
	}
	return true, nil
}

// Clear removes every entry whose URL starts with prefix and returns how many
// files were deleted.
func (s *Store) Clear(prefix string) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("listing cache dir: %w", err)
	}

	keyPrefix := Key(prefix)
	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasPrefix(e.Name(), keyPrefix) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return removed, fmt.Errorf("removing %s: %w", e.Name(), err)
		}
		removed++
	}

	return removed, nil
}
