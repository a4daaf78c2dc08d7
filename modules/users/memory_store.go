package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User // keyed by ID
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*User)}
}

func (s *MemoryStore) Create(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, u := range s.users {
		if strings.ToLower(u.Email) == email {
			return ErrEmailTaken
		}
		if u.LoginID == user.LoginID {
			return ErrLoginIDTaken
		}
	}

	now := time.Now()
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *MemoryStore) ByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *MemoryStore) ByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range s.users {
		if strings.ToLower(u.Email) == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ByLoginID(ctx context.Context, loginID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.LoginID == loginID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Update(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return ErrNotFound
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *MemoryStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) RecordLogin(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = &at
	u.IsActive = true
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *MemoryStore) ByEnrolledPlan(ctx context.Context, planID string) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []User
	for _, u := range s.users {
		for _, id := range u.EnrolledPlans {
			if id == planID {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}
