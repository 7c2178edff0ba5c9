package memory

import (
	"context"
	"sync"

	"github.com/aretw0/sfsweb/pkg/domain"
)

// Store implements ports.StatusStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Board
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Board),
	}
}

// Save persists a copy of the board.
func (s *Store) Save(ctx context.Context, key string, board *domain.Board) error {
	copied := board.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load returns a copy so callers can't mutate the stored board by pointer.
func (s *Store) Load(ctx context.Context, key string) (*domain.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board, ok := s.data[key]
	if !ok {
		return nil, domain.ErrBoardNotFound
	}
	return board.Clone(), nil
}

// Delete removes the board.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
