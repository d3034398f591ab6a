package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// KeyValueStore is the durable string store behind the persistence gateway.
// Get returns ErrNotFound when the key has never been written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
