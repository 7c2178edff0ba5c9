package domain

import "time"

// OutcomeKind classifies the result of a submission.
type OutcomeKind string

const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomeTransportError OutcomeKind = "transport_error"
	OutcomeServerError    OutcomeKind = "server_error"
	// OutcomeSuppressed marks a trigger refused by the in-flight guard. No call was made.
	OutcomeSuppressed OutcomeKind = "suppressed"
)

// Outcome is the classified result of one Request.
type Outcome struct {
	Action string
	Kind   OutcomeKind

	// Status is the HTTP status code, zero when no response was received.
	Status int

	// Body is the opportunistically parsed JSON body of a successful response, or nil.
	Body any

	// Err is set for every kind except OutcomeSuccess.
	Err error

	// Effect is the status write that was applied for this outcome.
	Effect Effect

	Duration time.Duration
}

// OK reports whether the backend reported success.
func (o Outcome) OK() bool { return o.Kind == OutcomeSuccess }
