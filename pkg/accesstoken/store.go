package accesstoken

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// tokenBytes is the amount of randomness per token. 32 bytes makes collisions
// with a currently-valid token negligible without an explicit uniqueness check.
const tokenBytes = 32

type entry struct {
	expiresAt time.Time
	consumed  bool
}

// Store is an in-memory registry of short-lived opaque access tokens.
// Tokens are valid until their TTL elapses; expiry is checked lazily on
// Validate and evicted entries are removed at that point. All methods are
// safe for concurrent use.
//
// The store is an injectable component rather than a package-level global so
// tests can construct isolated instances with a controllable clock.
type Store struct {
	mu     sync.Mutex
	tokens map[string]entry
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides the default token lifetime.
func WithTTL(ttl time.Duration) Option {
	if ttl <= 0 {
		panic("WithTTL: ttl must be > 0")
	}
	return func(s *Store) { s.ttl = ttl }
}

// WithClock injects a custom time source. Tests use this to simulate expiry
// without sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a token store with a default TTL of one hour.
func New(opts ...Option) *Store {
	s := &Store{
		tokens: make(map[string]entry),
		ttl:    time.Hour,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig creates a token store from env-based configuration.
func NewFromConfig(cfg Config, opts ...Option) *Store {
	all := make([]Option, 0, len(opts)+1)
	if cfg.TTL > 0 {
		all = append(all, WithTTL(cfg.TTL))
	}
	all = append(all, opts...)
	return New(all...)
}

// Issue generates a cryptographically unguessable token, registers it with
// the configured TTL, and returns the token string.
func (s *Store) Issue() string {
	buf := make([]byte, tokenBytes)
	// rand.Read never fails on supported platforms; it panics internally
	// if the kernel entropy source is broken.
	_, _ = rand.Read(buf)
	token := base64.RawURLEncoding.EncodeToString(buf)

	s.mu.Lock()
	s.tokens[token] = entry{expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return token
}

// TTL returns the lifetime applied to newly issued tokens.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Validate reports whether the token is currently usable.
// Unknown or consumed tokens yield ErrInvalidToken; tokens past their TTL
// yield ErrTokenExpired and are evicted as a side effect. Validation does
// not consume the token: a still-valid token may be used repeatedly.
func (s *Store) Validate(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked(token)
}

// Consume atomically validates the token and marks it used, for callers that
// want single-use semantics. Subsequent Validate or Consume calls for the
// same token return ErrInvalidToken.
func (s *Store) Consume(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateLocked(token); err != nil {
		return err
	}

	e := s.tokens[token]
	e.consumed = true
	s.tokens[token] = e
	return nil
}

func (s *Store) validateLocked(token string) error {
	e, ok := s.tokens[token]
	if !ok || e.consumed {
		return ErrInvalidToken
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.tokens, token)
		return ErrTokenExpired
	}
	return nil
}

// Len returns the number of entries currently held, including expired ones
// that have not yet been looked up.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// StartSweeper evicts expired and consumed entries at the given interval
// until the context is cancelled. Eviction on Validate already keeps the
// store correct; the sweeper only bounds memory for tokens that are issued
// but never looked up again.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for token, e := range s.tokens {
		if e.consumed || !now.Before(e.expiresAt) {
			delete(s.tokens, token)
		}
	}
}
