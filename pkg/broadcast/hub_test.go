package broadcast

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, conn *ChanConn[string]) Event[string] {
	t.Helper()
	select {
	case ev := <-conn.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event[string]{}
	}
}

func TestJoinAndPublish(t *testing.T) {
	t.Parallel()

	hub := NewHub[string]()
	defer hub.Close()

	a := NewChanConn[string](4)
	b := NewChanConn[string](4)
	hub.Join("plan:42", a)
	hub.Join("plan:42", b)

	require.NoError(t, hub.Publish(context.Background(), "plan:42", "updated"))

	assert.Equal(t, "updated", recv(t, a).Payload)
	assert.Equal(t, "updated", recv(t, b).Payload)
}

func TestJoinIdempotent(t *testing.T) {
	t.Parallel()

	hub := NewHub[string]()
	defer hub.Close()

	conn := NewChanConn[string](4)
	hub.Join("plan:1", conn)
	hub.Join("plan:1", conn)

	assert.Equal(t, 1, hub.MemberCount("plan:1"))

	require.NoError(t, hub.Publish(context.Background(), "plan:1", "once"))
	assert.Equal(t, "once", recv(t, conn).Payload)

	// A second event would only be buffered if the member were registered twice.
	select {
	case ev := <-conn.Events():
		t.Fatalf("unexpected duplicate delivery: %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLeaveIdempotent(t *testing.T) {
	t.Parallel()

	hub := NewHub[string]()
	defer hub.Close()

	conn := NewChanConn[string](1)
	hub.Join("room", conn)
	hub.Leave("room", conn)
	hub.Leave("room", conn)

	assert.Zero(t, hub.MemberCount("room"))
	assert.Empty(t, hub.Rooms(), "empty room should be forgotten")
}

func TestRoomScoping(t *testing.T) {
	t.Parallel()

	hub := NewHub[string]()
	defer hub.Close()

	planConn := NewChanConn[string](4)
	auctionConn := NewChanConn[string](4)
	hub.Join("plan:1", planConn)
	hub.Join("auction:9", auctionConn)

	require.NoError(t, hub.Publish(context.Background(), "auction:9", "bid"))

	assert.Equal(t, "bid", recv(t, auctionConn).Payload)
	select {
	case ev := <-planConn.Events():
		t.Fatalf("plan room member received auction event: %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishGlobal(t *testing.T) {
	t.Parallel()

	hub := NewHub[string]()
	defer hub.Close()

	global := NewChanConn[string](4)
	scoped := NewChanConn[string](4)
	hub.Join(GlobalRoom, global)
	hub.Join("auction:1", scoped)

	require.NoError(t, hub.PublishGlobal(context.Background(), "announcement"))

	assert.Equal(t, "announcement", recv(t, global).Payload)
	select {
	case <-scoped.Events():
		t.Fatal("scoped member received global event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeadConnectionPruned(t *testing.T) {
	t.Parallel()

	hub := NewHub[string]()
	defer hub.Close()

	live1 := NewChanConn[string](4)
	live2 := NewChanConn[string](4)
	ghost := NewChanConn[string](4)
	require.NoError(t, ghost.Close())

	hub.Join("plan:42", live1)
	hub.Join("plan:42", live2)
	hub.Join("plan:42", ghost)

	require.NoError(t, hub.Publish(context.Background(), "plan:42", "event"))

	assert.Equal(t, "event", recv(t, live1).Payload)
	assert.Equal(t, "event", recv(t, live2).Payload)
	assert.Equal(t, 2, hub.MemberCount("plan:42"), "ghost should be pruned")
}

func TestSlowConsumerDoesNotBlock(t *testing.T) {
	t.Parallel()

	hub := NewHub[string]()
	defer hub.Close()

	slow := NewChanConn[string](1)
	hub.Join("room", slow)

	// Fill the buffer and keep publishing; none of these may block.
	done := make(chan struct{})
	go func() {
		for range 10 {
			_ = hub.Publish(context.Background(), "room", "flood")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow consumer")
	}
	assert.Equal(t, 1, hub.MemberCount("room"), "slow member stays joined")
}

func TestPublishOrderPerRoom(t *testing.T) {
	t.Parallel()

	hub := NewHub[string]()
	defer hub.Close()

	conn := NewChanConn[string](16)
	hub.Join("room", conn)

	payloads := []string{"a", "b", "c", "d"}
	for _, p := range payloads {
		require.NoError(t, hub.Publish(context.Background(), "room", p))
	}

	for _, want := range payloads {
		assert.Equal(t, want, recv(t, conn).Payload)
	}
}

func TestSubscribeAutoLeaveOnCancel(t *testing.T) {
	t.Parallel()

	hub := NewHub[string]()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	conn := hub.Subscribe(ctx, "plan:7", 4)
	require.Equal(t, 1, hub.MemberCount("plan:7"))

	cancel()
	require.Eventually(t, func() bool {
		return hub.MemberCount("plan:7") == 0
	}, time.Second, 10*time.Millisecond)

	_, open := <-conn.Events()
	assert.False(t, open, "connection channel should be closed")
}

func TestConcurrentJoinLeavePublish(t *testing.T) {
	t.Parallel()

	hub := NewHub[int]()
	defer hub.Close()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn := NewChanConn[int](8)
			hub.Join("room", conn)
			_ = hub.Publish(context.Background(), "room", 1)
			hub.Leave("room", conn)
		}()
	}
	wg.Wait()

	assert.Zero(t, hub.MemberCount("room"))
}

func TestPublishAfterClose(t *testing.T) {
	t.Parallel()

	hub := NewHub[string]()
	require.NoError(t, hub.Close())
	require.NoError(t, hub.Close(), "close is idempotent")

	err := hub.Publish(context.Background(), "room", "late")
	require.ErrorIs(t, err, ErrHubClosed)
}
