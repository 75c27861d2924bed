// Package kv provides the persistent key-value stores the app store keeps
// user preferences in.
//
// Every backend implements Store:
//
//	store := kv.NewMemoryStore()
//	_ = store.Set(ctx, "lang", "en")
//	v, ok, err := store.Get(ctx, "lang")
//
// Available backends:
//   - MemoryStore: process memory, the default
//   - FileStore: a JSON file, the closest thing to browser local storage
//   - SQLStore: any database/sql driver (SQLite via modernc.org/sqlite)
//   - RedisStore: any go-redis compatible client
//   - S3Store: one object per key in an S3 bucket
package kv

import "context"

// Store defines the interface for key-value persistence backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key.
	// ok is false (with a nil error) if the key does not exist.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// ErrStoreClosed is returned when operations are attempted on a closed store.
type ErrStoreClosed struct{}

func (e ErrStoreClosed) Error() string {
	return "kv store is closed"
}
