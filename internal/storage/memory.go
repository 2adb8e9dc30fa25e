package storage

import (
	"context"
	"sync"

	"github.com/leafwall/leafwall/internal/domain/leaf"
)

// MemoryStore holds the collection in process memory only. State lives for
// the lifetime of the store instance and is lost on restart. Intended for
// ephemeral deployments and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	leaves []leaf.Leaf
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{leaves: []leaf.Leaf{}}
}

// Load returns a copy of the current collection.
func (s *MemoryStore) Load(_ context.Context) ([]leaf.Leaf, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLeaves(s.leaves), nil
}

// Save replaces the collection.
func (s *MemoryStore) Save(_ context.Context, leaves []leaf.Leaf) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves = cloneLeaves(leaves)
	return nil
}

// Writable always succeeds for the in-memory store.
func (s *MemoryStore) Writable(_ context.Context) error { return nil }

// Mode reports the persistence strategy.
func (s *MemoryStore) Mode() string { return "memory" }

var _ LeafStore = (*MemoryStore)(nil)
