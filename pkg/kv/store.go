// Package kv provides the keyed JSON-document storage that backs every
// master-data dataset. A Store holds one opaque document per key; all
// higher-level versioning and validation lives in pkg/datastore.
package kv

import "context"

// Store is a minimal durable key -> document mapping. Implementations
// must make Set atomic per key: readers never observe a torn document.
type Store interface {
	// Get returns the document stored under key. The second return is
	// false when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
