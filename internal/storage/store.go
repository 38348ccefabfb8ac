package storage

import (
	"context"
	"errors"
)

// Fixed keys of the persisted collections.
const (
	KeyTransactions = "transactions"
	KeyCategories   = "categories"
	KeyTags         = "tags"
	KeySettings     = "settings"
	KeyInitialized  = "initialized"
)

var ErrClosed = errors.New("store closed")

// Store is a key-value store of JSON documents. Get reports ok=false for an
// absent key; Set overwrites the whole value.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
