package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/aretw0/sfsweb/pkg/ports"
)

// Confirmer asks a yes/no question on a terminal.
type Confirmer struct {
	in          *bufio.Reader
	out         io.Writer
	assumeYes   bool
	interactive bool
}

var _ ports.Confirmer = (*Confirmer)(nil)

// ConfirmOption configures the Confirmer.
type ConfirmOption func(*Confirmer)

// AssumeYes approves every prompt without reading input.
func AssumeYes(yes bool) ConfirmOption {
	return func(c *Confirmer) {
		c.assumeYes = yes
	}
}

// NewConfirmer reads answers from in and writes prompts to out.
// When in is a file that is not a terminal, every prompt is declined.
func NewConfirmer(in io.Reader, out io.Writer, opts ...ConfirmOption) *Confirmer {
	c := &Confirmer{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: IsInteractive(in),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsInteractive reports whether r can answer prompts.
// Only files are checked; other readers are assumed to be scripted answers.
func IsInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd()))
}

// Confirm prints prompt and waits for "y" or "yes". Anything else declines.
func (c *Confirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if c.assumeYes {
		return true, nil
	}
	if !c.interactive {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if _, err := fmt.Fprintf(c.out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	answer := strings.TrimSpace(strings.ToLower(line))
	return answer == "y" || answer == "yes", nil
}
