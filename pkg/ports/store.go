package ports

import (
	"context"

	"github.com/aretw0/sfsweb/pkg/domain"
)

// StatusStore persists status board snapshots.
// This lets a later CLI invocation (or the monitor) show the last known state.
type StatusStore interface {
	// Save persists the board under key.
	Save(ctx context.Context, key string, board *domain.Board) error

	// Load retrieves the board for key.
	// Returns domain.ErrBoardNotFound if nothing was saved.
	Load(ctx context.Context, key string) (*domain.Board, error)

	// Delete removes the board for key.
	Delete(ctx context.Context, key string) error
}
