// Package terminal renders the status board on a terminal and asks for confirmations on stdin.
package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/muesli/termenv"

	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/ports"
)

const (
	colorSuccess = "#22c55e"
	colorError   = "#ef4444"
	colorMuted   = "#94a3b8"
	colorLink    = "#818cf8"
)

// Presenter prints every status write as one line.
type Presenter struct {
	mu  sync.Mutex
	out *termenv.Output
}

var (
	_ ports.Presenter            = (*Presenter)(nil)
	_ ports.ConnectivityReporter = (*Presenter)(nil)
)

// Option configures the Presenter.
type Option func(*presenterConfig)

type presenterConfig struct {
	profile *termenv.Profile
}

// WithProfile forces a color profile. termenv.Ascii disables colors.
func WithProfile(p termenv.Profile) Option {
	return func(c *presenterConfig) {
		c.profile = &p
	}
}

// NewPresenter writes to w, detecting the color profile unless one is forced.
func NewPresenter(w io.Writer, opts ...Option) *Presenter {
	var cfg presenterConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var outOpts []termenv.OutputOption
	if cfg.profile != nil {
		outOpts = append(outOpts, termenv.WithProfile(*cfg.profile))
	}
	return &Presenter{out: termenv.NewOutput(w, outOpts...)}
}

// SetBusy prints a line when an indicator appears. Hiding is silent.
func (p *Presenter) SetBusy(_ context.Context, id string, visible bool) error {
	if !visible {
		return nil
	}
	return p.println(p.out.String("… working (" + id + ")").Foreground(p.out.Color(colorMuted)).Faint())
}

// Present prints the effect of a resolved request.
func (p *Presenter) Present(_ context.Context, action string, effect domain.Effect) error {
	switch effect.Kind {
	case domain.EffectMessage:
		if effect.Tone == domain.ToneError {
			return p.println(p.out.String("✘ " + effect.Text).Foreground(p.out.Color(colorError)))
		}
		return p.println(p.out.String("✔ " + effect.Text).Foreground(p.out.Color(colorSuccess)))
	case domain.EffectAlert:
		return p.println(p.out.String("ALERT [" + action + "]: " + effect.Text).Foreground(p.out.Color(colorError)).Bold())
	case domain.EffectNavigate:
		return p.println(p.out.String("→ " + effect.Location).Foreground(p.out.Color(colorLink)))
	}
	return nil
}

// SetConnectivity prints the online/offline indicator.
func (p *Presenter) SetConnectivity(_ context.Context, c domain.Connectivity) error {
	color := colorError
	if c == domain.ConnectivityOnline {
		color = colorSuccess
	}
	return p.println(p.out.String("● " + string(c)).Foreground(p.out.Color(color)))
}

// Board prints a full snapshot.
func (p *Presenter) Board(b *domain.Board) error {
	lines := []termenv.Style{
		p.out.String(fmt.Sprintf("location:     %s", b.Location)),
	}
	if b.Connectivity != domain.ConnectivityUnknown {
		lines = append(lines, p.out.String(fmt.Sprintf("connectivity: %s", b.Connectivity)))
	}
	if b.Notice != nil {
		color := colorSuccess
		if b.Notice.Tone == domain.ToneError {
			color = colorError
		}
		lines = append(lines, p.out.String("message:      "+b.Notice.Text).Foreground(p.out.Color(color)))
	}
	if b.Alert != "" {
		lines = append(lines, p.out.String("alert:        "+b.Alert).Foreground(p.out.Color(colorError)).Bold())
	}
	for _, id := range b.Busy {
		lines = append(lines, p.out.String("busy:         "+id).Faint())
	}
	lines = append(lines, p.out.String(fmt.Sprintf("revision:     %d", b.Revision)).Foreground(p.out.Color(colorMuted)))
	for _, l := range lines {
		if err := p.println(l); err != nil {
			return err
		}
	}
	return nil
}

func (p *Presenter) println(s termenv.Style) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.out, s.String())
	return err
}
