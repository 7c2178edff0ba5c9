package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/sfsweb/internal/logging"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/ports"
)

// StreamEvent is one status write sent to SSE subscribers.
type StreamEvent struct {
	Type         string              `json:"type"`
	Action       string              `json:"action,omitempty"`
	Busy         string              `json:"busy,omitempty"`
	Visible      bool                `json:"visible,omitempty"`
	Effect       *domain.Effect      `json:"effect,omitempty"`
	Connectivity domain.Connectivity `json:"connectivity,omitempty"`
}

// StreamManager handles active SSE connections.
// It is a status board sink: every write is broadcast to all subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
	logger      *slog.Logger
}

var (
	_ ports.Presenter            = (*StreamManager)(nil)
	_ ports.ConnectivityReporter = (*StreamManager)(nil)
)

// NewStreamManager creates a manager with no subscribers.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[chan string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a new subscriber. The returned func unsubscribes it.
func (sm *StreamManager) Subscribe() (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if _, ok := sm.subscribers[ch]; ok {
				delete(sm.subscribers, ch)
				close(ch)
			}
		})
	}
}

// Close ends every open stream. Subscribers see their channel closed.
func (sm *StreamManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for ch := range sm.subscribers {
		delete(sm.subscribers, ch)
		close(ch)
	}
}

// Subscribers returns the number of active subscribers.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// Broadcast sends msg to every subscriber, dropping it for slow ones.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message")
		}
	}
}

func (sm *StreamManager) send(e StreamEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	sm.Broadcast(string(data))
	return nil
}

// SetBusy implements ports.Presenter.
func (sm *StreamManager) SetBusy(_ context.Context, id string, visible bool) error {
	return sm.send(StreamEvent{Type: "busy", Busy: id, Visible: visible})
}

// Present implements ports.Presenter.
func (sm *StreamManager) Present(_ context.Context, action string, effect domain.Effect) error {
	if effect.Kind == domain.EffectNone {
		return nil
	}
	return sm.send(StreamEvent{Type: "effect", Action: action, Effect: &effect})
}

// SetConnectivity implements ports.ConnectivityReporter.
func (sm *StreamManager) SetConnectivity(_ context.Context, c domain.Connectivity) error {
	return sm.send(StreamEvent{Type: "connectivity", Connectivity: c})
}
