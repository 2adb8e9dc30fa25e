package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/leafwall/leafwall/internal/domain/leaf"
	"github.com/leafwall/leafwall/pkg/logger"
)

const leavesFileName = "leaves.json"

// FileStore persists the collection as a pretty-printed JSON document under
// the configured data directory. Writes replace the whole file; there is no
// atomic rename, so a failed write can leave a partial document behind. A
// document that fails to parse is logged and treated as empty.
type FileStore struct {
	mu   sync.RWMutex
	path string
	dir  string
	log  *logger.Logger
}

// NewFileStore creates a file-backed store rooted at dataDir.
func NewFileStore(dataDir string, log *logger.Logger) *FileStore {
	if log == nil {
		log = logger.NewDefault("storage")
	}
	return &FileStore{
		path: filepath.Join(dataDir, leavesFileName),
		dir:  dataDir,
		log:  log,
	}
}

// Load reads the persisted collection. A missing file yields an empty
// collection; a corrupt file is logged at error level and also yields an
// empty collection so a bad document never takes down read paths.
func (s *FileStore) Load(_ context.Context) ([]leaf.Leaf, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []leaf.Leaf{}, nil
	}
	if err != nil {
		s.log.WithError(err).WithField("path", s.path).Error("read leaves file; degrading to empty collection")
		return []leaf.Leaf{}, nil
	}

	var leaves []leaf.Leaf
	if err := json.Unmarshal(data, &leaves); err != nil {
		s.log.WithError(err).WithField("path", s.path).Error("parse leaves file; degrading to empty collection")
		return []leaf.Leaf{}, nil
	}
	if leaves == nil {
		leaves = []leaf.Leaf{}
	}
	return leaves, nil
}

// Save overwrites the persisted collection.
func (s *FileStore) Save(_ context.Context, leaves []leaf.Leaf) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	if leaves == nil {
		leaves = []leaf.Leaf{}
	}
	data, err := json.MarshalIndent(leaves, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal leaves: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write leaves file: %w", err)
	}
	return nil
}

// Writable probes that the data directory exists (creating it if needed) and
// accepts writes.
func (s *FileStore) Writable(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	probe, err := os.CreateTemp(s.dir, ".writable-*")
	if err != nil {
		return fmt.Errorf("data dir not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	if err := os.Remove(name); err != nil {
		s.log.WithError(err).WithField("path", name).Warn("remove writability probe")
	}
	return nil
}

// Mode reports the persistence strategy.
func (s *FileStore) Mode() string { return "file" }

// Path returns the location of the backing document.
func (s *FileStore) Path() string { return s.path }

var _ LeafStore = (*FileStore)(nil)
