package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a Repository persisted as a JSON array of problems. The whole
// file is rewritten on every mutation via a temp file and rename, so readers
// of the file never observe a partial write.
type FileStore struct {
	path string

	// writeMu serializes mutation+persist pairs. Reads only take the
	// memory store's read lock.
	writeMu sync.Mutex
	mem     *MemoryStore
}

var (
	_ Repository = (*FileStore)(nil)
	_ Counter    = (*FileStore)(nil)
)

// OpenFileStore loads the catalog at path, creating an empty one if the
// file does not exist.
func OpenFileStore(path string) (*FileStore, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	s := &FileStore{path: abs, mem: &MemoryStore{byID: make(map[string]Problem)}}

	if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return nil, fmt.Errorf("create catalog dir: %w", err)
		}
		if err := writeProblems(abs, nil); err != nil {
			return nil, err
		}
	}

	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) ListByTopic(ctx context.Context, topic string, difficulty int) ([]Problem, error) {
	return s.mem.ListByTopic(ctx, topic, difficulty)
}

func (s *FileStore) List(ctx context.Context, f Filter) ([]Problem, error) {
	return s.mem.List(ctx, f)
}

func (s *FileStore) Count(ctx context.Context) (int, error) {
	return s.mem.Count(ctx)
}

func (s *FileStore) Get(ctx context.Context, id string) (Problem, error) {
	return s.mem.Get(ctx, id)
}

func (s *FileStore) Create(ctx context.Context, p Problem) error {
	return s.mutate(func() error { return s.mem.Create(ctx, p) })
}

func (s *FileStore) Update(ctx context.Context, id string, p Problem) error {
	return s.mutate(func() error { return s.mem.Update(ctx, id, p) })
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	return s.mutate(func() error { return s.mem.Delete(ctx, id) })
}

// mutate applies fn to the in-memory state and persists the result. If the
// write fails the in-memory state is restored from the last good file.
func (s *FileStore) mutate(fn func() error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := fn(); err != nil {
		return err
	}
	if err := writeProblems(s.path, s.mem.snapshot()); err != nil {
		if rerr := s.reload(); rerr != nil {
			return &UnavailableError{Op: "persist", Err: errors.Join(err, rerr)}
		}
		return &UnavailableError{Op: "persist", Err: err}
	}
	return nil
}

// reload replaces the in-memory state with the file contents.
func (s *FileStore) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return &UnavailableError{Op: "load", Err: err}
	}

	var problems []Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		return fmt.Errorf("parse catalog %s: %w", s.path, err)
	}

	if err := s.mem.reset(problems); err != nil {
		return fmt.Errorf("load catalog %s: %w", s.path, err)
	}
	return nil
}

// writeProblems atomically replaces path with the JSON encoding of problems.
func writeProblems(path string, problems []Problem) error {
	if problems == nil {
		problems = []Problem{}
	}
	data, err := json.MarshalIndent(problems, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".catalog-*.json")
	if err != nil {
		return &UnavailableError{Op: "persist", Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return &UnavailableError{Op: "persist", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &UnavailableError{Op: "persist", Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &UnavailableError{Op: "persist", Err: err}
	}
	return nil
}
