package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a Locker.
type UnlockFunc func(ctx context.Context) error

// Locker provides a non-blocking lock keyed by action.
// It backs the in-flight guard when several processes share one backend.
type Locker interface {
	// TryLock attempts to take the lock for key without waiting.
	// ok is false when another holder owns it. The ttl bounds how long a
	// crashed holder can keep the key.
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock UnlockFunc, ok bool, err error)
}
