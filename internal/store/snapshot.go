package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/nickers/quickshop/internal/logger"
	"github.com/nickers/quickshop/models"
)

// FileSnapshotStore persists per-collection item snapshots in a single JSON
// file. Loads are served from memory; every Save rewrites the file.
type FileSnapshotStore struct {
	mu     sync.RWMutex
	path   string
	state  map[string][]models.Item
	logger *logger.Logger
}

// NewFileSnapshotStore reads the snapshot file at path, if present, and
// returns a store over it. An unreadable or malformed file is logged and
// treated as empty rather than failing startup.
func NewFileSnapshotStore(path string, log *logger.Logger) *FileSnapshotStore {
	s := &FileSnapshotStore{
		path:   path,
		state:  make(map[string][]models.Item),
		logger: log,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Err(err).Str("func", "NewFileSnapshotStore").Str("path", path).Msg("error reading snapshot file")
		}
		return s
	}

	if err = json.Unmarshal(data, &s.state); err != nil {
		log.Err(err).Str("func", "NewFileSnapshotStore").Str("path", path).Msg("discarding malformed snapshot file")
		s.state = make(map[string][]models.Item)
	}

	return s
}

func (s *FileSnapshotStore) Load(collectionID string) ([]models.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.state[collectionID]
	if !ok {
		return nil, false
	}

	out := make([]models.Item, len(items))
	copy(out, items)
	return out, true
}

func (s *FileSnapshotStore) Save(collectionID string, items []models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]models.Item, len(items))
	copy(stored, items)
	s.state[collectionID] = stored

	return s.persist()
}

// persist writes the whole state map. Callers must hold the write lock.
func (s *FileSnapshotStore) persist() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		s.logger.Err(err).Str("func", "persist").Msg("error marshalling snapshot state")
		return fmt.Errorf("error marshalling snapshot state: %w", err)
	}

	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Err(err).Str("func", "persist").Str("path", s.path).Msg("error writing snapshot file")
		return fmt.Errorf("error writing snapshot file: %w", err)
	}

	return nil
}
