package broadcast

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// GlobalRoom is the reserved room receiving PublishGlobal events regardless
// of per-plan or per-auction membership.
const GlobalRoom = "all"

// Hub maintains room membership and fans out events to room members.
// Rooms are created implicitly on first join and are cheap; an empty room is
// forgotten when its last member leaves. All methods are safe for concurrent
// use.
type Hub[T any] struct {
	rooms  map[string]map[string]Conn[T]
	mu     sync.RWMutex
	closed bool
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		rooms: make(map[string]map[string]Conn[T]),
	}
}

// Join adds the connection to the room's member set. Joining a room the
// connection already belongs to is a no-op, so a member set never holds the
// same connection twice.
func (h *Hub[T]) Join(room string, conn Conn[T]) {
	if room == "" || conn == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]Conn[T])
		h.rooms[room] = members
	}
	members[conn.ID()] = conn
}

// Leave removes the connection from the room. Leaving a room the connection
// is not in is a no-op. The room itself is forgotten once empty.
func (h *Hub[T]) Leave(room string, conn Conn[T]) {
	if room == "" || conn == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, conn.ID())
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Subscribe creates a channel-backed connection, joins it to the room, and
// removes it again when the context is cancelled. This is the common path
// for transport handlers that hold one connection per client.
func (h *Hub[T]) Subscribe(ctx context.Context, room string, bufferSize int) *ChanConn[T] {
	conn := NewChanConn[T](bufferSize)
	h.Join(room, conn)

	go func() {
		<-ctx.Done()
		h.Leave(room, conn)
		_ = conn.Close()
	}()

	return conn
}

// Publish delivers the payload to every member currently in the room.
// Delivery is fire-and-forget per member: a slow member has the event
// dropped by its Conn, and a disconnected member is pruned without
// affecting delivery to the others. Within one room, delivery order equals
// publish call order.
func (h *Hub[T]) Publish(ctx context.Context, room string, payload T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ev := Event[T]{
		ID:        uuid.New().String(),
		Room:      room,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return ErrHubClosed
	}
	members := h.rooms[room]
	conns := make([]Conn[T], 0, len(members))
	for _, conn := range members {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	var dead []Conn[T]
	for _, conn := range conns {
		if err := conn.Deliver(ev); err != nil {
			dead = append(dead, conn)
		}
	}
	for _, conn := range dead {
		h.Leave(room, conn)
	}

	return nil
}

// PublishGlobal delivers the payload to the reserved global room.
func (h *Hub[T]) PublishGlobal(ctx context.Context, payload T) error {
	return h.Publish(ctx, GlobalRoom, payload)
}

// Rooms returns the names of rooms with at least one member.
func (h *Hub[T]) Rooms() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rooms := make([]string, 0, len(h.rooms))
	for name := range h.rooms {
		rooms = append(rooms, name)
	}
	return rooms
}

// MemberCount returns the number of members in a room.
func (h *Hub[T]) MemberCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Close empties all rooms and rejects further joins and publishes.
// Channel-backed members are closed so their readers unblock.
func (h *Hub[T]) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	for _, members := range h.rooms {
		for _, conn := range members {
			if c, ok := conn.(*ChanConn[T]); ok {
				_ = c.Close()
			}
		}
	}
	clear(h.rooms)

	return nil
}
