// Package storage provides the local key-value persistence layer the task
// store writes its snapshot through. Values are opaque JSON documents
// addressed by string keys; every Set is a full-value overwrite.
package storage

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrClosed = errors.New("storage: kv store is closed")

// KV is a synchronous, origin-local key-value store. Get returns (nil, nil)
// when the key has never been set or has been removed.
type KV interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	Remove(ctx context.Context, key string) error
	Close() error
}
