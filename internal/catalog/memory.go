package catalog

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Repository. Problems are kept in insertion
// order so repeated queries return identical sequences.
type MemoryStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Problem
}

var (
	_ Repository = (*MemoryStore)(nil)
	_ Counter    = (*MemoryStore)(nil)
)

// NewMemoryStore creates a store seeded with problems. Seeds are validated
// and must have distinct IDs.
func NewMemoryStore(problems ...Problem) (*MemoryStore, error) {
	s := &MemoryStore{byID: make(map[string]Problem, len(problems))}
	for _, p := range problems {
		if err := s.insert(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *MemoryStore) ListByTopic(ctx context.Context, topic string, difficulty int) ([]Problem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Problem
	for _, id := range s.order {
		p := s.byID[id]
		if p.Topic != topic {
			continue
		}
		if difficulty != 0 && p.Difficulty != difficulty {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *MemoryStore) List(ctx context.Context, f Filter) ([]Problem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Problem, 0, len(s.order))
	for _, id := range s.order {
		if p := s.byID[id]; f.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Problem, error) {
	if err := ctx.Err(); err != nil {
		return Problem{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return Problem{}, &NotFoundError{ID: id}
	}
	return p, nil
}

func (s *MemoryStore) Create(ctx context.Context, p Problem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(p)
}

func (s *MemoryStore) Update(ctx context.Context, id string, p Problem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := NormalizeUpdate(id, p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return &NotFoundError{ID: id}
	}
	s.byID[id] = p
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored problems.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

// snapshot returns all problems in insertion order. Caller holds no lock.
func (s *MemoryStore) snapshot() []Problem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Problem, len(s.order))
	for i, id := range s.order {
		out[i] = s.byID[id]
	}
	return out
}

// reset replaces the whole contents. On error the store is unchanged.
func (s *MemoryStore) reset(problems []Problem) error {
	fresh, err := NewMemoryStore(problems...)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order, s.byID = fresh.order, fresh.byID
	return nil
}

// insert adds p. Caller holds the write lock (or owns s exclusively).
func (s *MemoryStore) insert(p Problem) error {
	if err := Validate(p); err != nil {
		return err
	}
	if _, exists := s.byID[p.ID]; exists {
		return &ConflictError{ID: p.ID}
	}
	s.byID[p.ID] = p
	s.order = append(s.order, p.ID)
	return nil
}
