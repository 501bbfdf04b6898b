// Package db defines the key-value store contract used for persisted state
// (currently the embedding cache) and its error taxonomy.
package db

import "context"

// KV provides simple key-value operations.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store is the full database facade: KV plus lifecycle.
type Store interface {
	KV
	Ping(ctx context.Context) error
	Close()
}
