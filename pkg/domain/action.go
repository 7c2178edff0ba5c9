package domain

// Method is the HTTP verb used by a Request.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodDelete Method = "DELETE"
)

// Valid reports whether m is one of the verbs the backend accepts.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodDelete:
		return true
	}
	return false
}

// Request describes a single user-triggered network call.
// It is built fresh for every trigger and discarded once its Outcome is applied.
type Request struct {
	// Action is the catalog name of the request (e.g. "upload", "settings").
	// It keys logging, metrics and the in-flight guard.
	Action string

	// Endpoint is the concrete path (or absolute URL) to call.
	Endpoint string

	// Route is the path template as declared by the backend contract
	// (e.g. "/files/i/{fileID}/open-loc"). Empty means Endpoint.
	Route string

	Method  Method
	Payload Payload

	// Busy is the id of the busy indicator shown while the call is in flight.
	// Empty means no indicator.
	Busy string

	OnSuccess SuccessTransition
	OnFailure FailureTransition
}

// Key returns the identity used to detect overlapping triggers.
func (r Request) Key() string {
	if r.Action != "" {
		return r.Action
	}
	return string(r.Method) + " " + r.Endpoint
}

// RouteTemplate returns Route, falling back to Endpoint.
func (r Request) RouteTemplate() string {
	if r.Route != "" {
		return r.Route
	}
	return r.Endpoint
}
