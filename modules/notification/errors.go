package notification

import "errors"

var (
	// ErrMissingRecipient indicates the recipient lacks the contact detail
	// a channel needs (email address or phone number).
	ErrMissingRecipient = errors.New("missing recipient contact detail")
)
