package broadcast

import "errors"

var (
	// ErrDisconnected is returned by a Conn whose listener is gone; the hub
	// prunes such connections on the next publish.
	ErrDisconnected = errors.New("broadcast: connection closed")
	// ErrHubClosed is returned by Publish after the hub has been closed.
	ErrHubClosed = errors.New("broadcast: hub closed")
)
