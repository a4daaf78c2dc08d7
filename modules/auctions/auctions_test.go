package auctions_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/modules/auctions"
)

type fakePublisher struct {
	mu     sync.Mutex
	rooms  []string
	global int
}

func (f *fakePublisher) Publish(_ context.Context, room string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = append(f.rooms, room)
	return nil
}

func (f *fakePublisher) PublishGlobal(_ context.Context, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.global++
	return nil
}

func TestService_PlaceBid(t *testing.T) {
	t.Parallel()

	t.Run("broadcasts to auction room and global", func(t *testing.T) {
		t.Parallel()

		publisher := &fakePublisher{}
		svc := auctions.NewService(publisher)

		bid, err := svc.PlaceBid(context.Background(), "a1", "u1", 5000)
		require.NoError(t, err)

		assert.Equal(t, 5000.0, bid.Amount)
		assert.Equal(t, []string{"auction:a1"}, publisher.rooms)
		assert.Equal(t, 1, publisher.global)
	})

	t.Run("lower bid rejected", func(t *testing.T) {
		t.Parallel()

		svc := auctions.NewService(&fakePublisher{})

		_, err := svc.PlaceBid(context.Background(), "a1", "u1", 5000)
		require.NoError(t, err)

		_, err = svc.PlaceBid(context.Background(), "a1", "u2", 4000)
		require.ErrorIs(t, err, auctions.ErrBidTooLow)

		_, err = svc.PlaceBid(context.Background(), "a1", "u2", 5000) // tie loses
		require.ErrorIs(t, err, auctions.ErrBidTooLow)

		highest, ok := svc.HighestBid("a1")
		require.True(t, ok)
		assert.Equal(t, "u1", highest.UserID)
	})

	t.Run("auctions are independent", func(t *testing.T) {
		t.Parallel()

		svc := auctions.NewService(&fakePublisher{})

		_, err := svc.PlaceBid(context.Background(), "a1", "u1", 9000)
		require.NoError(t, err)

		_, err = svc.PlaceBid(context.Background(), "a2", "u2", 100)
		require.NoError(t, err)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		t.Parallel()

		svc := auctions.NewService(&fakePublisher{})
		_, err := svc.PlaceBid(context.Background(), "", "", 0)
		require.Error(t, err)

		_, ok := svc.HighestBid("")
		assert.False(t, ok)
	})

	t.Run("concurrent bids keep the maximum", func(t *testing.T) {
		t.Parallel()

		svc := auctions.NewService(&fakePublisher{})

		var wg sync.WaitGroup
		for i := 1; i <= 50; i++ {
			wg.Add(1)
			go func(amount float64) {
				defer wg.Done()
				_, _ = svc.PlaceBid(context.Background(), "a1", "u", amount)
			}(float64(i * 100))
		}
		wg.Wait()

		highest, ok := svc.HighestBid("a1")
		require.True(t, ok)
		assert.Equal(t, 5000.0, highest.Amount)
	})
}
