package submitter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/inflight"
	"github.com/aretw0/sfsweb/pkg/ports"
)

// DefaultTimeout bounds a round trip when no client is supplied.
const DefaultTimeout = 30 * time.Second

// DefaultMaxBodyBytes caps how much of a response body is read for parsing.
const DefaultMaxBodyBytes = 1 << 20

// Option defines a functional option for configuring the Submitter.
type Option func(*Submitter)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Submitter) {
		s.client = client
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(s *Submitter) {
		s.timeout = d
	}
}

// WithPresenter configures where busy toggles and effects are written.
func WithPresenter(p ports.Presenter) Option {
	return func(s *Submitter) {
		s.presenter = p
	}
}

// WithGuard enables the in-flight guard.
func WithGuard(g *inflight.Guard) Option {
	return func(s *Submitter) {
		s.guard = g
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Submitter) {
		s.hooks = hooks
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Submitter) {
		s.logger = logger
	}
}

// WithMaxBodyBytes caps how much of a response body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Submitter) {
		s.maxBody = n
	}
}
