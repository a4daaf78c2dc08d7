package credentials

import "errors"

var (
	// ErrUserExists indicates a member with this email already has credentials.
	ErrUserExists = errors.New("user already exists")
	// ErrIdentifierExhausted indicates repeated USR#### collisions; the
	// identifier space is too dense to allocate from.
	ErrIdentifierExhausted = errors.New("could not allocate a unique user id")
)
