package transactions

import "errors"

var (
	ErrNotFound          = errors.New("transaction not found")
	ErrInvalidStatus     = errors.New("unknown transaction status")
	ErrInvalidTransition = errors.New("invalid status transition")
)
