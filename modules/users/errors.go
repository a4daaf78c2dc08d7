package users

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrLoginIDTaken       = errors.New("user id already taken")
	ErrInvalidCredentials = errors.New("invalid user id or password")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrWrongPassword      = errors.New("current password is incorrect")
)
