package ports

import (
	"context"

	"github.com/aretw0/sfsweb/pkg/domain"
)

// Presenter is the only writer of user-visible status indicators.
type Presenter interface {
	// SetBusy shows or hides a busy indicator.
	SetBusy(ctx context.Context, id string, visible bool) error

	// Present applies the effect of a resolved request.
	Present(ctx context.Context, action string, effect domain.Effect) error
}

// ConnectivityReporter receives the online/offline indicator from the poller.
type ConnectivityReporter interface {
	SetConnectivity(ctx context.Context, c domain.Connectivity) error
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}
