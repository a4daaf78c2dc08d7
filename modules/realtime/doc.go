// Package realtime exposes the broadcast hub over Server-Sent Events.
// Clients subscribe to a plan room, an auction room, or the global room
// and receive every event published there for as long as the request is
// open.
package realtime
