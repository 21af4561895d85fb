package storage

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var dataBucket = []byte("invomaster")

// BoltStore is a file-backed KeyValueStore. All values live in a single
// bucket; each Set is its own write transaction.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(dataBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create data bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Get decodes the value stored under key into v.
func (s *BoltStore) Get(key string, v any) error {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(dataBucket).Get([]byte(key))
		if data == nil {
			return ErrKeyNotFound
		}
		// The slice is only valid inside the transaction.
		raw = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode value for key %q: %w", key, err)
	}
	return nil
}

// Set encodes v and stores it under key.
func (s *BoltStore) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %q: %w", key, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(dataBucket).Put([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to store value for key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
