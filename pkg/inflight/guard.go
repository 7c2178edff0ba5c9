package inflight

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/sfsweb/internal/logging"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/ports"
)

// DefaultTTL bounds how long a distributed entry survives a crashed holder.
const DefaultTTL = 2 * time.Minute

// ReleaseFunc frees a key taken with Acquire. Calling it more than once is a no-op.
type ReleaseFunc func()

// Guard tracks in-flight action keys.
type Guard struct {
	mu   sync.Mutex
	held map[string]struct{}

	locker ports.Locker
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures the Guard.
type Option func(*Guard)

// WithLocker extends the guard across processes.
func WithLocker(locker ports.Locker) Option {
	return func(g *Guard) {
		g.locker = locker
	}
}

// WithTTL sets the expiry of distributed entries.
func WithTTL(ttl time.Duration) Option {
	return func(g *Guard) {
		g.ttl = ttl
	}
}

// WithLogger configures a logger for release failures.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

// New creates an empty Guard.
func New(opts ...Option) *Guard {
	g := &Guard{
		held:   make(map[string]struct{}),
		ttl:    DefaultTTL,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Acquire marks key as in flight. It returns domain.ErrInFlight if the key is
// already held, locally or by another process.
func (g *Guard) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	g.mu.Lock()
	if _, busy := g.held[key]; busy {
		g.mu.Unlock()
		return nil, domain.ErrInFlight
	}
	g.held[key] = struct{}{}
	g.mu.Unlock()

	var unlock ports.UnlockFunc
	if g.locker != nil {
		var ok bool
		var err error
		unlock, ok, err = g.locker.TryLock(ctx, key, g.ttl)
		if err != nil {
			g.drop(key)
			return nil, fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		if !ok {
			g.drop(key)
			return nil, domain.ErrInFlight
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if unlock != nil {
				// the request context may already be done
				if err := unlock(context.Background()); err != nil {
					g.logger.Warn("Failed to release distributed lock (will expire via TTL)",
						"action", key,
						"err", err,
					)
				}
			}
			g.drop(key)
		})
	}, nil
}

// Held reports whether key is currently in flight in this process.
func (g *Guard) Held(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.held[key]
	return ok
}

func (g *Guard) drop(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
}
