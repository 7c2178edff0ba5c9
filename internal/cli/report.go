package cli

import (
	"errors"
	"fmt"

	"github.com/aretw0/sfsweb/pkg/domain"
)

// ErrActionFailed marks a command whose action did not succeed.
// The board already shows why, so commands exit non-zero without printing it again.
var ErrActionFailed = errors.New("action failed")

// Result maps an action result to the command error.
// A declined confirmation is not a failure.
func Result(out domain.Outcome, err error) error {
	switch {
	case errors.Is(err, domain.ErrDeclined):
		return nil
	case err != nil:
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s", ErrActionFailed, verr.Message)
		}
		return err
	case out.OK():
		return nil
	case out.Kind == domain.OutcomeSuppressed:
		return fmt.Errorf("%w: %s is already running", ErrActionFailed, out.Action)
	}
	return fmt.Errorf("%w: %s %s", ErrActionFailed, out.Action, out.Kind)
}
