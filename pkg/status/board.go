// Package status owns the user-visible status indicators.
//
// Board is the only writer of the busy indicators, the status message, the
// alert slot, the page location and the online/offline indicator. Every other
// component reports through it, so each resolved request lands as exactly one
// write instead of scattered partial updates.
package status

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/sfsweb/internal/logging"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/ports"
)

// Board holds the current domain.Board and fans writes out to sinks.
type Board struct {
	mu    sync.Mutex
	state *domain.Board

	store ports.StatusStore
	key   string

	// saveMu orders persistence; saved is the newest revision written.
	saveMu sync.Mutex
	saved  uint64

	sinks  []ports.Presenter
	logger *slog.Logger
	now    func() time.Time
}

var (
	_ ports.Presenter            = (*Board)(nil)
	_ ports.ConnectivityReporter = (*Board)(nil)
)

// Option configures the Board.
type Option func(*Board)

// WithStore persists every write under key.
func WithStore(store ports.StatusStore, key string) Option {
	return func(b *Board) {
		b.store = store
		b.key = key
	}
}

// WithSink forwards every write to p (e.g. a terminal renderer).
func WithSink(p ports.Presenter) Option {
	return func(b *Board) {
		b.sinks = append(b.sinks, p)
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Board) {
		b.logger = logger
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// New creates an idle board located at the home page.
func New(opts ...Option) *Board {
	b := &Board{
		state:  domain.NewBoard(),
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Restore replaces the current state with the persisted snapshot, if any.
// Busy indicators are never restored: a previous process can't still be in flight.
func (b *Board) Restore(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	saved, err := b.store.Load(ctx, b.key)
	if errors.Is(err, domain.ErrBoardNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore status board: %w", err)
	}
	saved.Busy = []string{}

	b.saveMu.Lock()
	b.saved = saved.Revision
	b.saveMu.Unlock()

	b.mu.Lock()
	b.state = saved
	b.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current state.
func (b *Board) Snapshot() *domain.Board {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Clone()
}

// SetBusy shows or hides a busy indicator.
func (b *Board) SetBusy(ctx context.Context, id string, visible bool) error {
	return b.write(ctx, func(s *domain.Board) bool {
		return s.SetBusy(id, visible)
	}, func(p ports.Presenter) error {
		return p.SetBusy(ctx, id, visible)
	})
}

// Present applies the effect of a resolved request.
func (b *Board) Present(ctx context.Context, action string, effect domain.Effect) error {
	return b.write(ctx, func(s *domain.Board) bool {
		return s.Apply(effect)
	}, func(p ports.Presenter) error {
		return p.Present(ctx, action, effect)
	})
}

// SetConnectivity updates the online/offline indicator.
func (b *Board) SetConnectivity(ctx context.Context, c domain.Connectivity) error {
	return b.write(ctx, func(s *domain.Board) bool {
		if s.Connectivity == c {
			return false
		}
		s.Connectivity = c
		return true
	}, func(p ports.Presenter) error {
		if r, ok := p.(ports.ConnectivityReporter); ok {
			return r.SetConnectivity(ctx, c)
		}
		return nil
	})
}

// persist saves snapshot unless a newer revision was already saved.
func (b *Board) persist(ctx context.Context, snapshot *domain.Board) error {
	b.saveMu.Lock()
	defer b.saveMu.Unlock()
	if snapshot.Revision <= b.saved {
		return nil
	}
	if err := b.store.Save(ctx, b.key, snapshot); err != nil {
		b.logger.Warn("Failed to persist status board", "key", b.key, "err", err)
		return fmt.Errorf("failed to persist status board: %w", err)
	}
	b.saved = snapshot.Revision
	return nil
}

// write mutates the state under the lock, then persists and forwards outside of it.
func (b *Board) write(ctx context.Context, mutate func(*domain.Board) bool, forward func(ports.Presenter) error) error {
	b.mu.Lock()
	changed := mutate(b.state)
	var snapshot *domain.Board
	if changed {
		b.state.Revision++
		b.state.UpdatedAt = b.now()
		snapshot = b.state.Clone()
	}
	b.mu.Unlock()

	var firstErr error
	if changed && b.store != nil {
		firstErr = b.persist(ctx, snapshot)
	}

	for _, sink := range b.sinks {
		if err := forward(sink); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
