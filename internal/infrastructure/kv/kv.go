// Package kv abstracts the durable key-value byte store the application
// persists into. The legacy browser client used local storage; every
// backend here keeps the same contract: string keys, opaque byte values,
// whole values written atomically, last writer wins across processes.
package kv

import (
	"context"
	"errors"
)

// Fixed keys used by the entity store and the session manager.
const (
	KeyUsers       = "users"
	KeyBooks       = "books"
	KeyCurrentUser = "currentUser"
)

// ErrKeyNotFound is returned by Get for absent keys.
var ErrKeyNotFound = errors.New("kv: key not found")

// Store is a minimal durable byte store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
