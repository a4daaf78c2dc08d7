package broadcast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one room-scoped message.
type Event[T any] struct {
	ID        string    `json:"id"`
	Room      string    `json:"room"`
	Payload   T         `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Conn is the delivery capability of one connected listener. The hub knows
// nothing about the underlying transport: anything that can accept an event
// or report itself disconnected can join rooms.
//
// Implementations must be safe for concurrent use.
type Conn[T any] interface {
	// ID identifies the connection; joining a room twice with the same ID
	// is a no-op.
	ID() string

	// Deliver hands the event to the listener without blocking.
	// Returning ErrDisconnected causes the hub to prune the connection
	// from the room.
	Deliver(Event[T]) error
}

// ChanConn is a channel-backed Conn. Delivery is non-blocking: when the
// buffer is full the event is dropped rather than stalling the publisher,
// and a closed connection reports ErrDisconnected so the hub prunes it.
type ChanConn[T any] struct {
	id     string
	ch     chan Event[T]
	mu     sync.RWMutex
	closed bool
}

// NewChanConn creates a channel-backed connection. A minimum buffer size of
// 1 is enforced; a zero buffer would make every send blocking and defeat the
// fire-and-forget design.
func NewChanConn[T any](bufferSize int) *ChanConn[T] {
	return &ChanConn[T]{
		id: uuid.New().String(),
		ch: make(chan Event[T], max(bufferSize, 1)),
	}
}

func (c *ChanConn[T]) ID() string { return c.id }

// Events returns the receive side of the connection.
// The channel is closed when the connection is closed.
func (c *ChanConn[T]) Events() <-chan Event[T] {
	return c.ch
}

// Deliver sends the event without blocking. A full buffer drops the event
// silently; only a closed connection is reported as ErrDisconnected.
func (c *ChanConn[T]) Deliver(ev Event[T]) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrDisconnected
	}

	select {
	case c.ch <- ev:
	default:
		// Slow consumer: drop rather than block the publish path.
	}
	return nil
}

// Close closes the connection. It is idempotent.
func (c *ChanConn[T]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		close(c.ch)
		c.closed = true
	}
	return nil
}
