// Package storage persists the ordered collection of leaf records.
package storage

import (
	"context"

	"github.com/leafwall/leafwall/internal/domain/leaf"
)

// LeafStore reads and writes the full leaf collection. Implementations are
// safe for concurrent use; Save replaces any prior state.
type LeafStore interface {
	// Load returns the current collection. An absent or unreadable backing
	// document degrades to an empty collection rather than failing the caller.
	Load(ctx context.Context) ([]leaf.Leaf, error)

	// Save persists the full collection, replacing prior state.
	Save(ctx context.Context, leaves []leaf.Leaf) error

	// Writable reports whether the store can currently accept writes.
	Writable(ctx context.Context) error

	// Mode identifies the persistence strategy ("file" or "memory").
	Mode() string
}

func cloneLeaves(src []leaf.Leaf) []leaf.Leaf {
	out := make([]leaf.Leaf, len(src))
	copy(out, src)
	return out
}
