package store

import (
	"context"
	"fmt"
	"sync"

	"conflux/internal/project/models"
	id "conflux/pkg/domain"
	"conflux/pkg/platform/sentinel"
)

// InMemoryStore keeps snapshots in a map. Used in tests and single-node
// development setups.
type InMemoryStore struct {
	mu       sync.RWMutex
	projects map[id.ProjectID]*models.ProjectSnapshot
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{projects: make(map[id.ProjectID]*models.ProjectSnapshot)}
}

// Put seeds or replaces a snapshot.
func (s *InMemoryStore) Put(_ context.Context, snapshot *models.ProjectSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[snapshot.ID] = snapshot
	return nil
}

func (s *InMemoryStore) GetSnapshot(_ context.Context, projectID id.ProjectID) (*models.ProjectSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, sentinel.ErrNotFound)
	}

	// Shallow copy with a detached linkage record so callers can't mutate the
	// stored one through the snapshot.
	out := *snapshot
	if snapshot.RAiD != nil {
		r := *snapshot.RAiD
		out.RAiD = &r
	}
	return &out, nil
}

func (s *InMemoryStore) ListMinted(_ context.Context) ([]id.ProjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []id.ProjectID
	for pid, snapshot := range s.projects {
		if snapshot.RAiD != nil {
			out = append(out, pid)
		}
	}
	return out, nil
}

func (s *InMemoryStore) SaveRAiDInfo(_ context.Context, projectID id.ProjectID, info *models.RAiDInfo) error {
	if info == nil {
		return fmt.Errorf("raid info is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, sentinel.ErrNotFound)
	}
	r := *info
	snapshot.RAiD = &r
	return nil
}
