package common

import "errors"

var (
	// ErrInvalidToken is returned when an empty or malformed token is saved.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnknownBackend is returned for an unsupported credential store name.
	ErrUnknownBackend = errors.New("unknown store backend")
)
