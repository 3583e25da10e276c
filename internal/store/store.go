// Package store persists the dashboard's curation state as JSON values under
// distinct string keys.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get and Delete when the requested key does not exist.
var ErrNotFound = errors.New("key not found")

// KV defines the interface for local key-value persistence.
// Values are opaque byte slices, in practice JSON documents.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key returns ErrNotFound.
	Delete(ctx context.Context, key string) error

	// Keys lists all stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// Close cleans up resources.
	Close() error
}
