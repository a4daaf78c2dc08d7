package accesstoken

import "errors"

var (
	// ErrInvalidToken is returned for tokens the store has never issued,
	// or that were consumed.
	ErrInvalidToken = errors.New("invalid access token")
	// ErrTokenExpired is returned for known tokens past their TTL. It is a
	// distinct condition so callers can message the end user accurately.
	ErrTokenExpired = errors.New("access token expired")
)
