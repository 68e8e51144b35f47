// Package storage persists the pool collection as a single JSON array
// file. The store's one obligation to downstream readers is shape: the
// file is always a syntactically valid array of pool records, never
// anything else.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klabast/schwimmzeiten/pkg/schedule"
)

var (
	// ErrNotFound means the collection file does not exist yet; readers
	// surface this as "temporarily unavailable".
	ErrNotFound = errors.New("collection not found")

	// ErrCorrupted means the file exists but is not a valid array of
	// pool records.
	ErrCorrupted = errors.New("collection corrupted")
)

// Store reads and writes one collection file.
type Store struct {
	path string
}

// New creates a store for the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the collection file path.
func (s *Store) Path() string {
	return s.path
}

// Save writes the full collection atomically: the array is written to
// a temp file in the same directory and renamed into place, so readers
// never observe a half-written file.
func (s *Store) Save(recs []schedule.Record) error {
	if recs == nil {
		recs = []schedule.Record{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".pools-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write collection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace collection: %w", err)
	}
	return nil
}

// Load reads the collection, verifying array shape. A missing file
// yields ErrNotFound; anything unparseable or non-array yields
// ErrCorrupted.
func (s *Store) Load() ([]schedule.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read collection: %w", err)
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: not a JSON array", ErrCorrupted)
	}

	var recs []schedule.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return recs, nil
}

// Size returns the collection file size in bytes, or 0 when absent.
func (s *Store) Size() int64 {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0
	}
	return info.Size()
}
