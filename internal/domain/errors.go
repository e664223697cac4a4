package domain

import "errors"

var (
	ErrNotAuthenticated   = errors.New("you must be signed in")
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEventNotFound      = errors.New("event not found")
	ErrPermissionDenied   = errors.New("you can only delete events that you created")
	ErrInvalidEvent       = errors.New("invalid event")
	ErrInvalidTheme       = errors.New("invalid theme")
	ErrInvalidPassword    = errors.New("password must be at most 72 bytes")
)
