// Package store persists named collections as JSON blobs.
//
// A collection is always read and written whole. Writes go through a Batch so
// that every collection touched by one operation is committed together.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotExist is returned by Get when the key has never been written.
	ErrNotExist = errors.New("store: key does not exist")
	// ErrCorrupt wraps a value that could not be decoded.
	ErrCorrupt = errors.New("store: corrupt value")
)

// Store is a key-value map of serialized collections.
type Store interface {
	// Get returns the raw value for key or ErrNotExist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes every entry or none of them.
	Put(ctx context.Context, entries map[string][]byte) error
	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// Keys lists keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
