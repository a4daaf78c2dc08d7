// Package async provides a minimal Future abstraction used to run a set of
// independent side effects concurrently and join them with a bounded wait.
//
// The notification dispatcher uses it to attempt delivery over multiple
// channels in parallel: a slow channel is timed out via AwaitWithTimeout
// without affecting the others.
package async
