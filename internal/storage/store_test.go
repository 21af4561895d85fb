package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func stores(t *testing.T) map[string]KeyValueStore {
	t.Helper()

	boltStore, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open bolt store: %v", err)
	}
	t.Cleanup(func() { boltStore.Close() })

	return map[string]KeyValueStore{
		"bolt":   boltStore,
		"memory": NewMemoryStore(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			in := payload{Name: "widget", Count: 3}
			if err := store.Set("k", in); err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			var out payload
			if err := store.Get("k", &out); err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if out != in {
				t.Errorf("Round trip mismatch: got %+v, want %+v", out, in)
			}
		})
	}
}

func TestStoreMissingKey(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var out payload
			err := store.Get("absent", &out)
			if !errors.Is(err, ErrKeyNotFound) {
				t.Errorf("Expected ErrKeyNotFound, got %v", err)
			}
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Set("k", payload{Name: "first"}); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := store.Set("k", payload{Name: "second"}); err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			var out payload
			if err := store.Get("k", &out); err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if out.Name != "second" {
				t.Errorf("Expected overwritten value, got %q", out.Name)
			}
		})
	}
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	store, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("Failed to open bolt store: %v", err)
	}
	if err := store.Set("k", payload{Name: "durable", Count: 7}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("Failed to reopen bolt store: %v", err)
	}
	defer reopened.Close()

	var out payload
	if err := reopened.Get("k", &out); err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if out.Name != "durable" || out.Count != 7 {
		t.Errorf("Value did not survive reopen: %+v", out)
	}
}
