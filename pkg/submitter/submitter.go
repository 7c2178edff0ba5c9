package submitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/aretw0/sfsweb/internal/logging"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/inflight"
	"github.com/aretw0/sfsweb/pkg/ports"
)

// Submitter issues domain.Requests against one backend.
type Submitter struct {
	base      *url.URL
	client    *http.Client
	timeout   time.Duration
	presenter ports.Presenter
	guard     *inflight.Guard
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	maxBody   int64
}

var _ ports.Submitter = (*Submitter)(nil)

// New creates a Submitter that resolves relative endpoints against baseURL.
func New(baseURL string, opts ...Option) (*Submitter, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be absolute", baseURL)
	}

	s := &Submitter{
		base:      base,
		timeout:   DefaultTimeout,
		presenter: nopPresenter{},
		logger:    logging.NewNop(),
		maxBody:   DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	return s, nil
}

// BaseURL returns the backend the submitter talks to.
func (s *Submitter) BaseURL() string {
	return s.base.String()
}

// Submit runs req through the pipeline and returns its classified outcome.
// It issues at most one HTTP call and writes at most one effect.
func (s *Submitter) Submit(ctx context.Context, req domain.Request) domain.Outcome {
	start := time.Now()
	log := s.logger.With("action", req.Action, "method", req.Method, "endpoint", req.Endpoint)

	if s.guard != nil {
		release, err := s.guard.Acquire(ctx, req.Key())
		if err != nil {
			if errors.Is(err, domain.ErrInFlight) {
				log.Debug("Trigger suppressed: action already in flight")
				out := domain.Outcome{
					Action: req.Action,
					Kind:   domain.OutcomeSuppressed,
					Err:    err,
					Effect: domain.NoEffect(),
				}
				s.settle(ctx, out)
				return out
			}
			// A locker failure fails the trigger.
			out := domain.Outcome{
				Action: req.Action,
				Kind:   domain.OutcomeTransportError,
				Err:    &domain.TransportError{Endpoint: req.Endpoint, Err: err},
			}
			return s.finish(ctx, log, req, out, start)
		}
		defer release()
	}

	hideBusy := s.showBusy(ctx, log, req.Busy)
	defer hideBusy()

	httpReq, err := s.buildRequest(ctx, req)
	if err != nil {
		out := domain.Outcome{
			Action: req.Action,
			Kind:   domain.OutcomeTransportError,
			Err:    &domain.TransportError{Endpoint: req.Endpoint, Err: err},
		}
		hideBusy()
		return s.finish(ctx, log, req, out, start)
	}

	if s.hooks.OnSubmit != nil {
		s.hooks.OnSubmit(ctx, &domain.SubmitEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSubmit},
			Action:    req.Action,
			Method:    req.Method,
			Endpoint:  httpReq.URL.String(),
		})
	}

	log.Debug("Submitting", "request_id", httpReq.Header.Get(RequestIDHeader), "payload", req.Payload.Kind.String())
	resp, err := s.client.Do(httpReq)
	out := s.classify(req, resp, err)
	hideBusy()

	return s.finish(ctx, log, req, out, start)
}

// finish applies the effect, logs and notifies hooks.
func (s *Submitter) finish(ctx context.Context, log *slog.Logger, req domain.Request, out domain.Outcome, start time.Time) domain.Outcome {
	out.Duration = time.Since(start)
	out.Effect = ResolveEffect(req, out)

	if err := s.presenter.Present(ctx, req.Action, out.Effect); err != nil {
		log.Warn("Failed to present outcome", "err", err)
	}

	attrs := []any{"outcome", out.Kind, "status", out.Status, "effect", out.Effect.Kind, "duration", out.Duration}
	switch out.Kind {
	case domain.OutcomeSuccess:
		log.Info("Submission succeeded", attrs...)
	case domain.OutcomeServerError:
		log.Warn("Submission rejected by server", attrs...)
	default:
		log.Error("Submission failed", append(attrs, "err", out.Err)...)
	}

	s.settle(ctx, out)
	return out
}

func (s *Submitter) settle(ctx context.Context, out domain.Outcome) {
	if s.hooks.OnSettle == nil {
		return
	}
	s.hooks.OnSettle(ctx, &domain.SettleEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSettle},
		Action:    out.Action,
		Outcome:   out.Kind,
		Status:    out.Status,
		Effect:    out.Effect.Kind,
		Duration:  out.Duration,
	})
}

// showBusy shows the indicator and returns an idempotent func that hides it.
func (s *Submitter) showBusy(ctx context.Context, log *slog.Logger, id string) func() {
	if id == "" {
		return func() {}
	}
	if err := s.presenter.SetBusy(ctx, id, true); err != nil {
		log.Warn("Failed to show busy indicator", "busy", id, "err", err)
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			if err := s.presenter.SetBusy(ctx, id, false); err != nil {
				log.Warn("Failed to hide busy indicator", "busy", id, "err", err)
			}
		})
	}
}

type nopPresenter struct{}

func (nopPresenter) SetBusy(context.Context, string, bool) error          { return nil }
func (nopPresenter) Present(context.Context, string, domain.Effect) error { return nil }
