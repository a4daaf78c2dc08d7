package plans

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string]*Plan
}

// NewMemoryStore creates an empty in-memory plan store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]*Plan)}
}

func (s *MemoryStore) Create(ctx context.Context, plan *Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	clone := *plan
	s.plans[plan.ID] = &clone
	return nil
}

func (s *MemoryStore) ByID(ctx context.Context, id string) (*Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *plan
	return &clone, nil
}

func (s *MemoryStore) Update(ctx context.Context, plan *Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.plans[plan.ID]
	if !ok {
		return ErrNotFound
	}

	plan.CreatedAt = current.CreatedAt
	plan.UpdatedAt = time.Now()

	clone := *plan
	s.plans[plan.ID] = &clone
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[id]; !ok {
		return ErrNotFound
	}
	delete(s.plans, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Plan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
