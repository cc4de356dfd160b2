package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gallery-go/internal/database"
	"gallery-go/internal/gallery"
	"gallery-go/internal/kv"
)

// ErrInjected is returned by FailingKVStore.
var ErrInjected = errors.New("injected storage failure")

// NewTestKVStore creates a new in-memory KVStore for testing.
func NewTestKVStore() *kv.MemoryStore {
	return kv.NewMemoryStore()
}

// NewTestSQLiteStore creates an in-memory SQLite KVStore with migrations applied.
// The store is automatically closed when the test completes.
func NewTestSQLiteStore(t *testing.T) gallery.KVStore {
	t.Helper()

	store, err := database.NewSQLiteStore(":memory:", FixedClock())
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// FailingKVStore wraps a MemoryStore and fails reads or writes on demand.
type FailingKVStore struct {
	*kv.MemoryStore

	mu      sync.Mutex
	failGet bool
	failPut bool
	puts    int
}

var _ gallery.KVStore = (*FailingKVStore)(nil)

func NewFailingKVStore() *FailingKVStore {
	return &FailingKVStore{MemoryStore: kv.NewMemoryStore()}
}

// FailGets makes every subsequent Get return ErrInjected.
func (s *FailingKVStore) FailGets(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGet = fail
}

// FailPuts makes every subsequent Put return ErrInjected.
func (s *FailingKVStore) FailPuts(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPut = fail
}

// Puts reports how many Put calls were attempted, failed ones included.
func (s *FailingKVStore) Puts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

func (s *FailingKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	fail := s.failGet
	s.mu.Unlock()
	if fail {
		return nil, ErrInjected
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *FailingKVStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.puts++
	fail := s.failPut
	s.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return s.MemoryStore.Put(ctx, key, value)
}
