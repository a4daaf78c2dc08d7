// Package notification fans business messages out to delivery channels.
//
// A Message carries content for every channel it targets; each Channel
// (email, WhatsApp) picks out the parts it understands. The Dispatcher sends
// through all applicable channels concurrently and reports a per-channel
// Outcome instead of an error: delivery is best effort, and the operation
// that triggered a notification never fails because a provider was down.
//
// Message builders (CredentialsMessage, TransactionMessage,
// BrochureLinkMessage) render the canonical HTML bodies and WhatsApp
// template parameters used across the service.
package notification
