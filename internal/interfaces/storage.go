// Package interfaces defines service contracts for WealthFlow
package interfaces

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KeyValueStore.Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// KeyValueStore is the durable store behind the snapshot gateway.
type KeyValueStore interface {
	// Get returns the value for key, or an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error

	Close() error
}
