// Package leaves implements the leaf-collection resource operations.
package leaves

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/leafwall/leafwall/internal/domain/leaf"
	"github.com/leafwall/leafwall/internal/metrics"
	"github.com/leafwall/leafwall/internal/storage"
	"github.com/leafwall/leafwall/pkg/logger"
)

// ErrInvalidIndex marks validation failures on the caller-supplied index.
var ErrInvalidIndex = errors.New("index must be a non-negative integer")

const recentLeafCount = 5

// CreateInput carries the optional fields accepted by Create.
type CreateInput struct {
	Index    *int
	Position *leaf.Position
	Source   string
}

// Stats summarizes the current collection.
type Stats struct {
	TotalLeaves  int            `json:"totalLeaves"`
	Sources      map[string]int `json:"sources"`
	RecentLeaves []leaf.Leaf    `json:"recentLeaves"`
	OldestLeaf   *leaf.Leaf     `json:"oldestLeaf"`
	NewestLeaf   *leaf.Leaf     `json:"newestLeaf"`
}

// Service owns validation and index assignment for the leaf collection.
// Mutating operations are serialized through a mutex so the store's
// read-modify-write cycle cannot lose concurrent updates.
type Service struct {
	mu    sync.Mutex
	store storage.LeafStore
	log   *logger.Logger
}

// New constructs a leaf service backed by the given store.
func New(store storage.LeafStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("leaves")
	}
	return &Service{store: store, log: log}
}

// List returns the current collection in insertion order.
func (s *Service) List(ctx context.Context) ([]leaf.Leaf, error) {
	return s.store.Load(ctx)
}

// Create appends a leaf record. When in.Index names an existing record the
// call is a no-op and the existing record is returned with created=false.
func (s *Service) Create(ctx context.Context, in CreateInput) (leaf.Leaf, bool, error) {
	if in.Index != nil && *in.Index < 0 {
		return leaf.Leaf{}, false, ErrInvalidIndex
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	leaves, err := s.store.Load(ctx)
	if err != nil {
		return leaf.Leaf{}, false, err
	}

	index := 0
	if in.Index != nil {
		index = *in.Index
		for _, existing := range leaves {
			if existing.Index == index {
				return existing, false, nil
			}
		}
	} else {
		index = leaf.NextIndex(leaves)
	}

	record := leaf.New(index, in.Position, in.Source)
	leaves = append(leaves, record)

	if err := s.store.Save(ctx, leaves); err != nil {
		s.log.WithError(err).WithField("index", index).Error("persist leaf")
		return leaf.Leaf{}, false, err
	}

	metrics.RecordLeafCreated(record.Source)
	metrics.SetLeafCount(len(leaves))
	s.log.WithField("index", index).WithField("source", record.Source).Info("leaf created")
	return record, true, nil
}

// Clear persists an empty collection.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, []leaf.Leaf{}); err != nil {
		s.log.WithError(err).Error("clear leaves")
		return err
	}
	metrics.SetLeafCount(0)
	s.log.Info("leaves cleared")
	return nil
}

// Count returns the current collection size.
func (s *Service) Count(ctx context.Context) (int, error) {
	leaves, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(leaves), nil
}

// Stats computes collection statistics. Records tied on timestamp keep their
// insertion order, so the first-seen record wins oldest/newest.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	leaves, err := s.store.Load(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalLeaves:  len(leaves),
		Sources:      make(map[string]int, 4),
		RecentLeaves: []leaf.Leaf{},
	}

	for i := range leaves {
		stats.Sources[leaves[i].Source]++

		if stats.OldestLeaf == nil || leaves[i].Timestamp < stats.OldestLeaf.Timestamp {
			oldest := leaves[i]
			stats.OldestLeaf = &oldest
		}
		if stats.NewestLeaf == nil || leaves[i].Timestamp > stats.NewestLeaf.Timestamp {
			newest := leaves[i]
			stats.NewestLeaf = &newest
		}
	}

	recent := make([]leaf.Leaf, len(leaves))
	copy(recent, leaves)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp > recent[j].Timestamp
	})
	if len(recent) > recentLeafCount {
		recent = recent[:recentLeafCount]
	}
	stats.RecentLeaves = recent

	return stats, nil
}
