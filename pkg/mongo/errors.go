package mongo

import "errors"

var (
	// ErrFailedToConnect wraps the last dial or ping error once the retry
	// budget in New is exhausted.
	ErrFailedToConnect = errors.New("mongo: failed to connect")
	// ErrHealthcheckFailed marks a ping failure from the Healthcheck probe.
	ErrHealthcheckFailed = errors.New("mongo: healthcheck failed")
)
