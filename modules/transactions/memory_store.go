package transactions

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu  sync.RWMutex
	txs map[string]*Transaction
}

// NewMemoryStore creates an empty in-memory transaction store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{txs: make(map[string]*Transaction)}
}

func (s *MemoryStore) Create(ctx context.Context, tx *Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	clone := *tx
	s.txs[tx.ID] = &clone
	return nil
}

func (s *MemoryStore) ByID(ctx context.Context, id string) (*Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.txs[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *tx
	return &clone, nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.txs[id]
	if !ok {
		return ErrNotFound
	}
	tx.Status = status
	tx.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.txs[id]; !ok {
		return ErrNotFound
	}
	delete(s.txs, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Transaction, 0, len(s.txs))
	for _, tx := range s.txs {
		out = append(out, *tx)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) ForUser(ctx context.Context, userID string) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Transaction
	for _, tx := range s.txs {
		if tx.UserID == userID {
			out = append(out, *tx)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) ForUserWithStatus(ctx context.Context, userID string, status Status) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Transaction
	for _, tx := range s.txs {
		if tx.UserID == userID && tx.Status == status {
			out = append(out, *tx)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(txs []Transaction) {
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}
