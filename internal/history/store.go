// Package history persists the ordered list of processed-image records as a
// JSON document on disk.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/kishore3106/image-location-finder/internal/models"
)

// ErrNotFound is returned by Remove when no structurally-equal record exists.
var ErrNotFound = errors.New("record not found in history")

const documentPerm = 0o644

// Store owns the in-memory record sequence and its persistence path. All
// mutations are serialized by a mutex and written through to disk, so the
// on-disk document always reflects the in-memory sequence after a successful
// operation. Insertion order is chronological and duplicates are allowed.
type Store struct {
	mu      sync.Mutex
	path    string
	records []models.Record
	log     *slog.Logger
}

// Open creates a store backed by the JSON document at path and loads the
// persisted records. A missing or malformed document is absorbed and yields
// an empty history.
func Open(path string, log *slog.Logger) *Store {
	store := &Store{
		path:    path,
		records: []models.Record{},
		log:     log,
	}
	store.load()

	return store
}

// load reads the persisted document into memory. Failure is not surfaced:
// a fresh or corrupt document simply starts an empty history.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read history document, starting empty", "path", s.path, "error", err)
		}
		return
	}

	var records []models.Record
	if err = json.Unmarshal(data, &records); err != nil {
		s.log.Warn("history document is malformed, starting empty", "path", s.path, "error", err)
		return
	}

	if records != nil {
		s.records = records
	}
	s.log.Debug("loaded history", "path", s.path, "entries", len(s.records))
}

// Records returns a copy of the current record sequence in insertion order.
func (s *Store) Records() []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Record, len(s.records))
	copy(out, s.records)

	return out
}

// Len returns the number of records in the history.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Append adds the record to the end of the sequence and persists the full
// sequence.
func (s *Store) Append(record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	if err := s.persistLocked(); err != nil {
		// Keep memory and disk in sync: roll back the append on write failure.
		s.records = s.records[:len(s.records)-1]
		return err
	}

	return nil
}

// Remove deletes the first structurally-equal match and persists the updated
// sequence. If no match exists it returns ErrNotFound and leaves storage
// untouched.
func (s *Store) Remove(record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.records {
		if existing == record {
			updated := make([]models.Record, 0, len(s.records)-1)
			updated = append(updated, s.records[:i]...)
			updated = append(updated, s.records[i+1:]...)

			previous := s.records
			s.records = updated
			if err := s.persistLocked(); err != nil {
				s.records = previous
				return err
			}

			return nil
		}
	}

	return ErrNotFound
}

// Persist serializes the full sequence to the document. Output is stable, so
// persisting an unchanged sequence produces a byte-identical document.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persistLocked()
}

// persistLocked writes the document via a temp file and rename, so a crash
// mid-write cannot corrupt the previous valid content. Callers must hold mu.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp history document: %w", err)
	}

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write history document: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close history document: %w", err)
	}

	if err = os.Chmod(tmp.Name(), documentPerm); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to set history document permissions: %w", err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace history document: %w", err)
	}

	s.log.Debug("persisted history", "path", s.path, "entries", len(s.records))

	return nil
}
