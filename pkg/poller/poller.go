// Package poller keeps the online/offline indicator in sync with the backend.
//
// Each check is a plain GET against the health URL through the same submitter
// used for user actions. One failure flips the indicator to offline and one
// success flips it back. There is no backoff, jitter or failure counter.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aretw0/sfsweb/internal/logging"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/ports"
)

// ActionName keys checks in logs, metrics and the in-flight guard.
const ActionName = "status"

// DefaultInterval is used when no schedule is configured.
const DefaultInterval = 5 * time.Second

// ParseInterval accepts a Go duration ("5s") or a cron spec ("@every 5s", "*/1 * * * *").
// Durations below one second are rounded up by the scheduler.
func ParseInterval(s string) (cron.Schedule, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty poll interval")
	}
	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return nil, fmt.Errorf("poll interval must be positive, got %s", d)
		}
		return cron.Every(d), nil
	}
	sched, err := cron.ParseStandard(s)
	if err != nil {
		return nil, fmt.Errorf("invalid poll interval %q: %w", s, err)
	}
	return sched, nil
}

// Poller checks a health URL on a schedule.
type Poller struct {
	submitter ports.Submitter
	url       string
	schedule  cron.Schedule
	reporter  ports.ConnectivityReporter
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	mu   sync.Mutex
	last domain.Connectivity
}

// Option configures the Poller.
type Option func(*Poller)

// WithSchedule sets when checks run after the first one.
func WithSchedule(s cron.Schedule) Option {
	return func(p *Poller) {
		p.schedule = s
	}
}

// WithReporter sets where the indicator is written.
func WithReporter(r ports.ConnectivityReporter) Option {
	return func(p *Poller) {
		p.reporter = r
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Poller) {
		p.hooks = hooks
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		p.logger = logger
	}
}

// New creates a Poller for healthURL. An empty URL always reports offline.
func New(sub ports.Submitter, healthURL string, opts ...Option) *Poller {
	p := &Poller{
		submitter: sub,
		url:       healthURL,
		schedule:  cron.Every(DefaultInterval),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Connectivity returns the result of the last completed check.
func (p *Poller) Connectivity() domain.Connectivity {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Check polls once and writes the indicator.
func (p *Poller) Check(ctx context.Context) domain.Connectivity {
	var next domain.Connectivity
	if p.url == "" {
		next = domain.ConnectivityOffline
	} else {
		out := p.submitter.Submit(ctx, domain.Request{
			Action:    ActionName,
			Endpoint:  p.url,
			Method:    domain.MethodGet,
			OnSuccess: domain.Stay(),
			OnFailure: domain.LogOnly(),
		})
		if out.Kind == domain.OutcomeSuppressed {
			return p.Connectivity()
		}
		next = domain.ConnectivityOffline
		if out.OK() {
			next = domain.ConnectivityOnline
		}
	}

	p.mu.Lock()
	changed := p.last != next
	p.last = next
	p.mu.Unlock()

	if changed {
		p.logger.Info("Connectivity changed", "url", p.url, "connectivity", next)
	}
	if p.reporter != nil {
		if err := p.reporter.SetConnectivity(ctx, next); err != nil {
			p.logger.Warn("Failed to report connectivity", "err", err)
		}
	}
	if p.hooks.OnConnectivity != nil {
		p.hooks.OnConnectivity(ctx, &domain.ConnectivityEvent{
			EventBase:    domain.EventBase{Timestamp: time.Now(), Type: domain.EventConnectivity},
			URL:          p.url,
			Connectivity: next,
			Changed:      changed,
		})
	}
	return next
}

// Run checks immediately and then on every tick until ctx is cancelled.
// A tick that fires while the previous check is still running is skipped.
func (p *Poller) Run(ctx context.Context) error {
	p.Check(ctx)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(p.schedule, cron.FuncJob(func() {
		if ctx.Err() != nil {
			return
		}
		p.Check(ctx)
	}))
	c.Start()
	p.logger.Debug("Poller started", "url", p.url)

	<-ctx.Done()
	<-c.Stop().Done()
	p.logger.Debug("Poller stopped", "url", p.url)
	return nil
}
