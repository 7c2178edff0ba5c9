package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSubmit       EventType = "submit"
	EventSettle       EventType = "settle"
	EventConnectivity EventType = "connectivity"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SubmitEvent is emitted right before the network call.
type SubmitEvent struct {
	EventBase
	Action   string `json:"action"`
	Method   Method `json:"method"`
	Endpoint string `json:"endpoint"`
}

// SettleEvent is emitted once the outcome is known and applied.
type SettleEvent struct {
	EventBase
	Action   string        `json:"action"`
	Outcome  OutcomeKind   `json:"outcome"`
	Status   int           `json:"status,omitempty"`
	Effect   EffectKind    `json:"effect"`
	Duration time.Duration `json:"duration"`
}

// ConnectivityEvent is emitted by the poller after every check.
type ConnectivityEvent struct {
	EventBase
	URL          string       `json:"url"`
	Connectivity Connectivity `json:"connectivity"`
	Changed      bool         `json:"changed"`
}

// LifecycleHooks defines callbacks for submission observability.
type LifecycleHooks struct {
	OnSubmit       func(context.Context, *SubmitEvent)
	OnSettle       func(context.Context, *SettleEvent)
	OnConnectivity func(context.Context, *ConnectivityEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSubmit: func(ctx context.Context, e *SubmitEvent) {
			if h.OnSubmit != nil {
				h.OnSubmit(ctx, e)
			}
			if other.OnSubmit != nil {
				other.OnSubmit(ctx, e)
			}
		},
		OnSettle: func(ctx context.Context, e *SettleEvent) {
			if h.OnSettle != nil {
				h.OnSettle(ctx, e)
			}
			if other.OnSettle != nil {
				other.OnSettle(ctx, e)
			}
		},
		OnConnectivity: func(ctx context.Context, e *ConnectivityEvent) {
			if h.OnConnectivity != nil {
				h.OnConnectivity(ctx, e)
			}
			if other.OnConnectivity != nil {
				other.OnConnectivity(ctx, e)
			}
		},
	}
}
