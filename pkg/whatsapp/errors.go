package whatsapp

import "errors"

var (
	ErrFailedToSendMessage = errors.New("whatsapp.errors.failed_to_send_message")
	ErrInvalidConfig       = errors.New("whatsapp.errors.invalid_config")
	ErrInvalidParams       = errors.New("whatsapp.errors.invalid_params")
)
