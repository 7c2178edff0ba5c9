package domain

// SuccessKind is the UI consequence of a successful call.
type SuccessKind string

const (
	SuccessNone     SuccessKind = "none"
	SuccessMessage  SuccessKind = "message"
	SuccessRedirect SuccessKind = "redirect"
)

// SuccessTransition describes what happens when the backend reports success.
type SuccessTransition struct {
	Kind     SuccessKind
	Message  string
	Location string
}

// FailureKind is the UI consequence of a failed call.
type FailureKind string

const (
	FailureLogOnly FailureKind = "log"
	FailureMessage FailureKind = "message"
	FailureAlert   FailureKind = "alert"
)

// FailureTransition describes what happens when the call fails.
// Prefix is prepended to the failure detail ("<prefix>: <detail>").
type FailureTransition struct {
	Kind   FailureKind
	Prefix string
}

// ShowMessage writes msg into the status area with a success tone.
func ShowMessage(msg string) SuccessTransition {
	return SuccessTransition{Kind: SuccessMessage, Message: msg}
}

// RedirectTo replaces the current location with loc.
func RedirectTo(loc string) SuccessTransition {
	return SuccessTransition{Kind: SuccessRedirect, Location: loc}
}

// Stay leaves the UI untouched on success.
func Stay() SuccessTransition {
	return SuccessTransition{Kind: SuccessNone}
}

// InlineError writes the failure into the status area with an error tone.
func InlineError(prefix string) FailureTransition {
	return FailureTransition{Kind: FailureMessage, Prefix: prefix}
}

// AlertError raises a disruptive alert. Reserved for destructive actions.
func AlertError(prefix string) FailureTransition {
	return FailureTransition{Kind: FailureAlert, Prefix: prefix}
}

// LogOnly records the failure in the log and nothing else.
func LogOnly() FailureTransition {
	return FailureTransition{Kind: FailureLogOnly}
}
