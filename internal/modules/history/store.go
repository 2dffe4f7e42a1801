// README: History store backed by a single JSON log file with serialized mutations.
package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store is the persistence contract for the append-only history log.
type Store interface {
	Append(ctx context.Context, e *Entry) error
	All(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id string) (*Entry, error)
	Delete(ctx context.Context, id string) error
}

// FileStore persists the whole log as one JSON document. Every mutation is
// a read-modify-write of the entire collection, so all mutations serialize
// behind the mutex; without it two interleaved appends could drop one
// another's write. A missing or unreadable file degrades to an empty log
// rather than failing reads.
type FileStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Append(ctx context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	entries = append(entries, *e)
	return s.save(entries)
}

func (s *FileStore) All(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.load() {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	for i, e := range entries {
		if e.ID == id {
			return s.save(append(entries[:i], entries[i+1:]...))
		}
	}
	return ErrNotFound
}

// load must be called with the mutex held.
func (s *FileStore) load() []Entry {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("history file unreadable, treating as empty", "path", s.path, "err", err)
		}
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn("history file corrupt, treating as empty", "path", s.path, "err", err)
		return nil
	}
	return entries
}

// save writes the full log atomically: temp file in the same directory,
// then rename over the old document.
func (s *FileStore) save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
