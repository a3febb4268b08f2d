// Package store persists per-actor session state between requests. The core
// engine is stateless; handlers load an actor's assessment and stats from
// here, mutate them synchronously, and save them back.
package store

import (
	"context"
	"errors"
	"sync"

	"assessment-service/internal/models"
)

// ErrNotFound is returned when an actor has no stored value for a key.
var ErrNotFound = errors.New("store: not found")

// Store is the caller-owned key-value session storage, keyed by actor token.
type Store interface {
	Assessment(ctx context.Context, actor string) (*models.Assessment, error)
	SaveAssessment(ctx context.Context, actor string, assessment *models.Assessment) error
	DeleteAssessment(ctx context.Context, actor string) error

	Stats(ctx context.Context, actor string) (*models.UserStats, error)
	SaveStats(ctx context.Context, actor string, stats *models.UserStats) error

	// Clear removes everything stored for the actor.
	Clear(ctx context.Context, actor string) error
}

// MemoryStore is the default single-process backend.
type MemoryStore struct {
	mu          sync.RWMutex
	assessments map[string]*models.Assessment
	stats       map[string]*models.UserStats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assessments: make(map[string]*models.Assessment),
		stats:       make(map[string]*models.UserStats),
	}
}

func (s *MemoryStore) Assessment(_ context.Context, actor string) (*models.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assessment, ok := s.assessments[actor]
	if !ok {
		return nil, ErrNotFound
	}
	return assessment, nil
}

func (s *MemoryStore) SaveAssessment(_ context.Context, actor string, assessment *models.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[actor] = assessment
	return nil
}

func (s *MemoryStore) DeleteAssessment(_ context.Context, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assessments, actor)
	return nil
}

func (s *MemoryStore) Stats(_ context.Context, actor string) (*models.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[actor]
	if !ok {
		return nil, ErrNotFound
	}
	return stats, nil
}

func (s *MemoryStore) SaveStats(_ context.Context, actor string, stats *models.UserStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[actor] = stats
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assessments, actor)
	delete(s.stats, actor)
	return nil
}
