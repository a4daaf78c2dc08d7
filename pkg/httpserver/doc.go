// Package httpserver wraps net/http's Server with graceful shutdown,
// functional options, env-based configuration, and probe handlers.
//
// Run blocks until the context is cancelled, an interrupt signal arrives,
// or the listener fails; Shutdown drains in-flight requests within the
// configured timeout.
package httpserver
