package storage

import "errors"

// ErrKeyNotFound is returned by Get when no value has been stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is a synchronous, same-process store of JSON-serializable
// values under string keys. Values survive process restarts when the backing
// implementation is durable.
type KeyValueStore interface {
	// Get decodes the value stored under key into v. Returns ErrKeyNotFound
	// when the key has never been set.
	Get(key string, v any) error

	// Set encodes v as JSON and stores it under key, replacing any previous value.
	Set(key string, v any) error

	// Close releases any resources held by the store.
	Close() error
}
