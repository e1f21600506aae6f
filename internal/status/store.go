// Package status holds generation run state behind an injected store
// interface so the pipeline shares no process-global mutable state and works
// across multiple server instances.
package status

import (
	"context"
	"sync"

	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
)

// Store persists transient generation run records keyed by episode id
type Store interface {
	Get(ctx context.Context, episodeID string) (*models.GenerationRun, error)
	Set(ctx context.Context, run *models.GenerationRun) error
	Delete(ctx context.Context, episodeID string) error
}

// MemoryStore is a mutex-guarded in-process store, used in tests and
// single-instance development deployments
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*models.GenerationRun
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*models.GenerationRun)}
}

// Get returns the run for the episode, or nil when none exists
func (s *MemoryStore) Get(ctx context.Context, episodeID string) (*models.GenerationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[episodeID]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

// Set stores the run, overwriting any previous record for the episode
func (s *MemoryStore) Set(ctx context.Context, run *models.GenerationRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *run
	s.runs[run.EpisodeID] = &copied
	return nil
}

// Delete removes the run record for the episode
func (s *MemoryStore) Delete(ctx context.Context, episodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.runs, episodeID)
	return nil
}
