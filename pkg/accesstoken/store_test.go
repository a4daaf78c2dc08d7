package accesstoken_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/pkg/accesstoken"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestIssueAndValidate(t *testing.T) {
	t.Parallel()

	store := accesstoken.New()
	token := store.Issue()

	require.NotEmpty(t, token)
	require.NoError(t, store.Validate(token))

	// Multi-use-until-expiry: repeated validation succeeds.
	require.NoError(t, store.Validate(token))
}

func TestValidateUnknownToken(t *testing.T) {
	t.Parallel()

	store := accesstoken.New()
	err := store.Validate("no-such-token")
	require.ErrorIs(t, err, accesstoken.ErrInvalidToken)
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := accesstoken.New(
		accesstoken.WithTTL(time.Hour),
		accesstoken.WithClock(clock.Now),
	)

	token := store.Issue()
	require.NoError(t, store.Validate(token))

	clock.Advance(time.Hour)

	err := store.Validate(token)
	require.ErrorIs(t, err, accesstoken.ErrTokenExpired)

	// The expired entry was evicted, so a second lookup reports invalid.
	err = store.Validate(token)
	require.ErrorIs(t, err, accesstoken.ErrInvalidToken)
}

func TestConsumeSingleUse(t *testing.T) {
	t.Parallel()

	store := accesstoken.New()
	token := store.Issue()

	require.NoError(t, store.Consume(token))
	require.ErrorIs(t, store.Validate(token), accesstoken.ErrInvalidToken)
	require.ErrorIs(t, store.Consume(token), accesstoken.ErrInvalidToken)
}

func TestTokensAreUnique(t *testing.T) {
	t.Parallel()

	store := accesstoken.New()
	seen := make(map[string]bool)
	for range 100 {
		token := store.Issue()
		require.False(t, seen[token], "token reused")
		seen[token] = true
	}
}

func TestConcurrentIssueAndValidate(t *testing.T) {
	t.Parallel()

	store := accesstoken.New()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token := store.Issue()
			assert.NoError(t, store.Validate(token))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, store.Len())
}

func TestSweeperEvictsExpired(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := accesstoken.New(
		accesstoken.WithTTL(time.Minute),
		accesstoken.WithClock(clock.Now),
	)

	for range 10 {
		store.Issue()
	}
	clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.StartSweeper(ctx, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond)
}
