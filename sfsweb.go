package sfsweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aretw0/sfsweb/internal/logging"
	"github.com/aretw0/sfsweb/pkg/actions"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/inflight"
	"github.com/aretw0/sfsweb/pkg/poller"
	"github.com/aretw0/sfsweb/pkg/ports"
	"github.com/aretw0/sfsweb/pkg/status"
	"github.com/aretw0/sfsweb/pkg/submitter"
)

// Client is the high-level entry point for the SFS web actions.
// It wires the submitter, the status board and the poller together.
type Client struct {
	submitter *submitter.Submitter
	board     *status.Board
	poller    *poller.Poller
	confirmer ports.Confirmer

	httpClient *http.Client
	timeout    time.Duration
	guard      *inflight.Guard
	store      ports.StatusStore
	storeKey   string
	sinks      []ports.Presenter
	healthURL  string
	schedule   cron.Schedule
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Client) {
		c.hooks = hooks
	}
}

// WithHTTPClient replaces the HTTP client used for every call.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout bounds each round trip of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithGuard replaces the default in-process in-flight guard.
func WithGuard(g *inflight.Guard) Option {
	return func(c *Client) {
		c.guard = g
	}
}

// WithStore persists the status board under key.
func WithStore(store ports.StatusStore, key string) Option {
	return func(c *Client) {
		c.store = store
		c.storeKey = key
	}
}

// WithSink forwards every status write to p.
func WithSink(p ports.Presenter) Option {
	return func(c *Client) {
		c.sinks = append(c.sinks, p)
	}
}

// WithConfirmer sets who approves destructive actions.
// Without one, destructive actions are declined.
func WithConfirmer(confirmer ports.Confirmer) Option {
	return func(c *Client) {
		c.confirmer = confirmer
	}
}

// WithHealthURL sets the URL polled by the status poller.
func WithHealthURL(url string) Option {
	return func(c *Client) {
		c.healthURL = url
	}
}

// WithPollSchedule sets how often Monitor checks the health URL.
func WithPollSchedule(s cron.Schedule) Option {
	return func(c *Client) {
		c.schedule = s
	}
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		timeout: submitter.DefaultTimeout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.guard == nil {
		c.guard = inflight.New(inflight.WithLogger(c.logger))
	}

	boardOpts := []status.Option{status.WithLogger(c.logger)}
	if c.store != nil {
		boardOpts = append(boardOpts, status.WithStore(c.store, c.storeKey))
	}
	for _, sink := range c.sinks {
		boardOpts = append(boardOpts, status.WithSink(sink))
	}
	c.board = status.New(boardOpts...)

	subOpts := []submitter.Option{
		submitter.WithPresenter(c.board),
		submitter.WithGuard(c.guard),
		submitter.WithLifecycleHooks(c.hooks),
		submitter.WithLogger(c.logger),
		submitter.WithTimeout(c.timeout),
	}
	if c.httpClient != nil {
		subOpts = append(subOpts, submitter.WithHTTPClient(c.httpClient))
	}
	sub, err := submitter.New(baseURL, subOpts...)
	if err != nil {
		return nil, err
	}
	c.submitter = sub

	pollOpts := []poller.Option{
		poller.WithReporter(c.board),
		poller.WithLifecycleHooks(c.hooks),
		poller.WithLogger(c.logger),
	}
	if c.schedule != nil {
		pollOpts = append(pollOpts, poller.WithSchedule(c.schedule))
	}
	c.poller = poller.New(sub, c.healthURL, pollOpts...)
	return c, nil
}

// Board returns the status board every action writes to.
func (c *Client) Board() *status.Board {
	return c.board
}

// Restore loads the persisted status board, if a store is configured.
func (c *Client) Restore(ctx context.Context) error {
	return c.board.Restore(ctx)
}

// Submit runs an arbitrary request through the pipeline.
func (c *Client) Submit(ctx context.Context, req domain.Request) domain.Outcome {
	return c.submitter.Submit(ctx, req)
}

// run submits req, or shows the validation message when building it failed.
func (c *Client) run(ctx context.Context, action string, req domain.Request, err error) (domain.Outcome, error) {
	if err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			return domain.Outcome{Action: action}, err
		}
		effect := domain.Message(verr.Message, domain.ToneError)
		if perr := c.board.Present(ctx, action, effect); perr != nil {
			c.logger.Warn("Failed to present validation message", "action", action, "err", perr)
		}
		c.logger.Debug("Validation failed", "action", action, "field", verr.Field)
		return domain.Outcome{Action: action, Effect: effect}, err
	}
	return c.submitter.Submit(ctx, req), nil
}

// Upload stores a file in a destination folder.
func (c *Client) Upload(ctx context.Context, in actions.UploadInput) (domain.Outcome, error) {
	req, err := actions.Upload(in)
	return c.run(ctx, actions.ActionUpload, req, err)
}

// AddNew registers an existing file or folder.
func (c *Client) AddNew(ctx context.Context, path string) (domain.Outcome, error) {
	req, err := actions.AddNew(path)
	return c.run(ctx, actions.ActionAddNew, req, err)
}

// Discover scans a folder and adds its contents.
func (c *Client) Discover(ctx context.Context, path string) (domain.Outcome, error) {
	req, err := actions.Discover(path)
	return c.run(ctx, actions.ActionDiscover, req, err)
}

// UploadProfilePicture replaces the profile picture. On success the outcome
// body is an actions.PictureResult when the backend reported the new URL.
func (c *Client) UploadProfilePicture(ctx context.Context, in actions.PictureInput) (domain.Outcome, error) {
	req, err := actions.UploadProfilePicture(in)
	out, err := c.run(ctx, actions.ActionUploadPFP, req, err)
	if res, ok := actions.DecodePicture(out.Body); ok {
		out.Body = res
	}
	return out, err
}

// ClearProfilePicture resets the profile picture.
func (c *Client) ClearProfilePicture(ctx context.Context) domain.Outcome {
	return c.submitter.Submit(ctx, actions.ClearProfilePicture())
}

// EditProfile updates the profile fields.
func (c *Client) EditProfile(ctx context.Context, in actions.ProfileInput) domain.Outcome {
	return c.submitter.Submit(ctx, actions.EditProfile(in))
}

// Search runs a query and navigates to its results page.
func (c *Client) Search(ctx context.Context, query string) (domain.Outcome, error) {
	req, err := actions.Search(query)
	return c.run(ctx, actions.ActionSearch, req, err)
}

// UpdateSettings persists the client settings.
func (c *Client) UpdateSettings(ctx context.Context, in actions.SettingsInput) (domain.Outcome, error) {
	req, err := actions.UpdateSettings(in)
	return c.run(ctx, actions.ActionSettings, req, err)
}

// DeleteFile removes a file.
func (c *Client) DeleteFile(ctx context.Context, id string) (domain.Outcome, error) {
	req, err := actions.DeleteFile(id)
	return c.run(ctx, actions.ActionDeleteFile, req, err)
}

// OpenLocation reveals a file on the machine running the SFS client.
func (c *Client) OpenLocation(ctx context.Context, id string) (domain.Outcome, error) {
	req, err := actions.OpenLocation(id)
	return c.run(ctx, actions.ActionOpenLocation, req, err)
}

// EmptyRecycleBin asks for confirmation and then empties the recycle bin.
// A declined confirmation returns domain.ErrDeclined, issues no call and
// navigates home.
func (c *Client) EmptyRecycleBin(ctx context.Context) (domain.Outcome, error) {
	ok := false
	if c.confirmer != nil {
		var err error
		ok, err = c.confirmer.Confirm(ctx, actions.EmptyBinPrompt)
		if err != nil {
			return domain.Outcome{Action: actions.ActionEmptyBin}, fmt.Errorf("confirmation failed: %w", err)
		}
	}
	if !ok {
		effect := domain.Navigate(domain.HomeLocation)
		if err := c.board.Present(ctx, actions.ActionEmptyBin, effect); err != nil {
			c.logger.Warn("Failed to present outcome", "action", actions.ActionEmptyBin, "err", err)
		}
		c.logger.Info("Emptying the recycle bin was declined")
		return domain.Outcome{Action: actions.ActionEmptyBin, Effect: effect}, domain.ErrDeclined
	}
	return c.submitter.Submit(ctx, actions.EmptyRecycleBin()), nil
}

// CheckStatus checks the health URL once and updates the indicator.
func (c *Client) CheckStatus(ctx context.Context) domain.Connectivity {
	return c.poller.Check(ctx)
}

// Monitor keeps the indicator up to date until ctx is cancelled.
func (c *Client) Monitor(ctx context.Context) error {
	return c.poller.Run(ctx)
}
