// Package broadcast implements room-scoped fan-out of state-change events to
// connected listeners: plan rooms for subscription updates, auction rooms for
// bids, and a reserved global room for subscribe-all clients.
//
// The hub is decoupled from any transport. A listener is anything satisfying
// Conn; ChanConn is the channel-backed implementation used by the SSE
// endpoint. Delivery is fire-and-forget per member: slow consumers have
// events dropped and dead connections are pruned, so one bad client never
// blocks delivery to the rest of the room.
//
// No ordering is guaranteed between members of different rooms. Within one
// room, delivery order equals publish call order.
package broadcast
