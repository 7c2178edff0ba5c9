// Package cli wires the configuration into a ready-to-use client for the commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/sfsweb"
	"github.com/aretw0/sfsweb/internal/config"
	"github.com/aretw0/sfsweb/internal/logging"
	"github.com/aretw0/sfsweb/pkg/adapters/memory"
	"github.com/aretw0/sfsweb/pkg/adapters/redis"
	"github.com/aretw0/sfsweb/pkg/adapters/terminal"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/inflight"
	"github.com/aretw0/sfsweb/pkg/metrics"
	"github.com/aretw0/sfsweb/pkg/persistence/middleware"
	"github.com/aretw0/sfsweb/pkg/poller"
	"github.com/aretw0/sfsweb/pkg/ports"
)

// LockPrefix namespaces the distributed in-flight locks.
const LockPrefix = "sfsweb:"

// Options are the per-invocation choices that are not part of the config file.
type Options struct {
	// Out receives the terminal rendering of status writes. Nil disables it.
	Out io.Writer

	// LogOut receives the logs. Nil means stderr.
	LogOut io.Writer

	// Confirmer approves destructive actions. Nil declines them.
	Confirmer ports.Confirmer

	// Sinks receive every status write in addition to Out.
	Sinks []ports.Presenter
}

// Runtime is everything a command needs.
type Runtime struct {
	Config   *config.Config
	Logger   *slog.Logger
	Client   *sfsweb.Client
	Registry *prometheus.Registry
	Store    ports.StatusStore

	closers []io.Closer
}

// Close releases the backing store connections.
func (r *Runtime) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Build creates the client described by cfg and restores the persisted board.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)
	if opts.LogOut != nil {
		logger = logging.NewWithWriter(opts.LogOut, level)
	}

	rt := &Runtime{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}

	guardOpts := []inflight.Option{inflight.WithLogger(logger)}
	switch cfg.Store {
	case config.StoreRedis:
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		rt.Store = store
		rt.closers = append(rt.closers, store)
		guardOpts = append(guardOpts, inflight.WithLocker(redis.NewLocker(store.Client(), LockPrefix)))
	default:
		rt.Store = memory.NewStore()
	}

	mws, err := cfg.StoreMiddleware()
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.Store = middleware.Chain(rt.Store, mws...)

	schedule, err := poller.ParseInterval(cfg.PollInterval)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("invalid poll_interval: %w", err)
	}

	collector := metrics.New(rt.Registry)
	hooks := collector.Hooks().Merge(DebugHooks(logger))

	clientOpts := []sfsweb.Option{
		sfsweb.WithLogger(logger),
		sfsweb.WithLifecycleHooks(hooks),
		sfsweb.WithGuard(inflight.New(guardOpts...)),
		sfsweb.WithStore(rt.Store, cfg.BoardKey),
		sfsweb.WithHealthURL(cfg.HealthURL),
		sfsweb.WithPollSchedule(schedule),
	}
	if cfg.Timeout > 0 {
		clientOpts = append(clientOpts, sfsweb.WithTimeout(cfg.Timeout))
	}
	if opts.Out != nil {
		clientOpts = append(clientOpts, sfsweb.WithSink(terminal.NewPresenter(opts.Out)))
	}
	for _, sink := range opts.Sinks {
		clientOpts = append(clientOpts, sfsweb.WithSink(sink))
	}
	if opts.Confirmer != nil {
		clientOpts = append(clientOpts, sfsweb.WithConfirmer(opts.Confirmer))
	}

	client, err := sfsweb.New(cfg.BaseURL, clientOpts...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("error initializing client: %w", err)
	}
	rt.Client = client

	if err := client.Restore(ctx); err != nil {
		logger.Warn("Starting with a fresh status board", "err", err)
	}
	return rt, nil
}

// DebugHooks logs every submission and check at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.Debug("Submit", "action", e.Action, "method", e.Method, "endpoint", e.Endpoint)
		},
		OnSettle: func(ctx context.Context, e *domain.SettleEvent) {
			logger.Debug("Settle", "action", e.Action, "outcome", e.Outcome, "status", e.Status, "effect", e.Effect)
		},
		OnConnectivity: func(ctx context.Context, e *domain.ConnectivityEvent) {
			logger.Debug("Check", "url", e.URL, "connectivity", e.Connectivity, "changed", e.Changed)
		},
	}
}
