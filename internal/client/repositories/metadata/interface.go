package metadata

import (
	"context"
	"errors"
)

// ErrEmptyKey is returned for an empty or blank key.
var ErrEmptyKey = errors.New("metadata key is empty")

// Repository keeps named session values, such as the auth token, in the
// local database. Errors name the key but never echo the value.
type Repository interface {
	// Lookup returns the value stored under key; ok is false when the key is
	// absent or holds an empty value.
	Lookup(ctx context.Context, key string) (value string, ok bool, err error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
