package plans

import "errors"

var (
	ErrNotFound     = errors.New("plan not found")
	ErrInvalidImage = errors.New("plan image must be a png or jpeg")
)
