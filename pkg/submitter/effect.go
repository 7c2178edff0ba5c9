package submitter

import (
	"errors"

	"github.com/aretw0/sfsweb/pkg/domain"
)

// ResolveEffect picks the single status write for an outcome.
func ResolveEffect(req domain.Request, out domain.Outcome) domain.Effect {
	switch out.Kind {
	case domain.OutcomeSuccess:
		switch req.OnSuccess.Kind {
		case domain.SuccessMessage:
			return domain.Message(req.OnSuccess.Message, domain.ToneSuccess)
		case domain.SuccessRedirect:
			return domain.Navigate(req.OnSuccess.Location)
		}
		return domain.NoEffect()
	case domain.OutcomeSuppressed:
		return domain.NoEffect()
	}

	text := FailureText(req.OnFailure.Prefix, out)
	switch req.OnFailure.Kind {
	case domain.FailureMessage:
		return domain.Message(text, domain.ToneError)
	case domain.FailureAlert:
		return domain.Alert(text)
	}
	return domain.NoEffect()
}

// FailureText renders "<prefix>: <detail>". Server errors use the status line,
// transport errors the underlying error.
func FailureText(prefix string, out domain.Outcome) string {
	detail := failureDetail(out)
	switch {
	case prefix == "":
		return detail
	case detail == "":
		return prefix
	}
	return prefix + ": " + detail
}

func failureDetail(out domain.Outcome) string {
	var serverErr *domain.ServerError
	if errors.As(out.Err, &serverErr) {
		return domain.StatusLine(serverErr.Status)
	}
	var transportErr *domain.TransportError
	if errors.As(out.Err, &transportErr) && transportErr.Err != nil {
		return transportErr.Err.Error()
	}
	if out.Err != nil {
		return out.Err.Error()
	}
	if out.Status != 0 {
		return domain.StatusLine(out.Status)
	}
	return ""
}
