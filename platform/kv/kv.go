// Package kv provides the key-value persistence contract used for profile
// durability. Values are opaque JSON documents; the store never inspects them.
// This is part of the platform layer and contains no business logic.
package kv

import "context"

// Store is a two-operation JSON key-value persistence contract.
// Read returns (nil, nil) when the key has never been written.
type Store interface {
	// Read returns the JSON document stored under key, or nil when absent.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write stores the JSON document under key, replacing any prior value.
	Write(ctx context.Context, key string, value []byte) error
}
