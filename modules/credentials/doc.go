// Package credentials issues member login credentials: a USR#### identifier
// drawn from a small digit space with bounded retry on collision, and a
// random secret that is bcrypt-hashed before persistence.
//
// The account is always persisted before any delivery attempt. Delivery then
// fans out over email and WhatsApp independently; failures are reported in
// the per-channel delivery map rather than failing the issuance, and the
// clear-text secret is returned once so an admin can hand it over manually
// when both channels are down.
package credentials
