// Package plans manages the chit schemes members enroll in: CRUD, the
// plan's promotional image, and the list of enrolled members. Plan changes
// are broadcast to the plan's live room and the global room.
package plans
