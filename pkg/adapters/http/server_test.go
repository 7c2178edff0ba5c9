package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/metrics"
	"github.com/aretw0/sfsweb/pkg/status"
)

func TestGetStatus(t *testing.T) {
	board := status.New()
	require.NoError(t, board.Present(context.Background(), "search", domain.Navigate("/search?searchQuery=x")))
	require.NoError(t, board.SetConnectivity(context.Background(), domain.ConnectivityOnline))

	handler := NewHandler(board)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var got domain.Board
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "/search?searchQuery=x", got.Location)
	assert.Equal(t, domain.ConnectivityOnline, got.Connectivity)
	assert.Equal(t, uint64(2), got.Revision)
}

func TestGetHealthAndInfo(t *testing.T) {
	handler := NewHandler(status.New())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"app":"sfsweb-monitor"`)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)
	collector.Hooks().OnSettle(context.Background(), &domain.SettleEvent{
		Action:   "upload",
		Outcome:  domain.OutcomeSuccess,
		Duration: time.Millisecond,
	})

	handler := NewHandler(status.New(), WithGatherer(reg))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `sfsweb_submissions_total{action="upload",outcome="success"} 1`)
}

func TestEventsDisabledByDefault(t *testing.T) {
	handler := NewHandler(status.New())
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscribeEvents(t *testing.T) {
	streams := NewStreamManager(nil)
	board := status.New(status.WithSink(streams))
	srv := httptest.NewServer(NewHandler(board, WithStreams(streams)))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readData := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "data: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
			}
		}
	}

	first := readData()
	assert.Contains(t, first, `"location":"/"`)

	require.Eventually(t, func() bool { return streams.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, board.Present(context.Background(), "upload", domain.Message("File(s) uploaded successfully.", domain.ToneSuccess)))

	var event StreamEvent
	require.NoError(t, json.Unmarshal([]byte(readData()), &event))
	assert.Equal(t, "effect", event.Type)
	assert.Equal(t, "upload", event.Action)
	require.NotNil(t, event.Effect)
	assert.Equal(t, "File(s) uploaded successfully.", event.Effect.Text)
}

func TestStreamManager_Unsubscribe(t *testing.T) {
	sm := NewStreamManager(nil)
	ch, cancel := sm.Subscribe()
	assert.Equal(t, 1, sm.Subscribers())

	sm.Broadcast("hello")
	assert.Equal(t, "hello", <-ch)

	cancel()
	cancel()
	assert.Zero(t, sm.Subscribers())
	_, ok := <-ch
	assert.False(t, ok)
}

func TestServeListener_ShutdownWithOpenStream(t *testing.T) {
	streams := NewStreamManager(nil)
	handler := NewHandler(status.New(), WithStreams(streams))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- ServeListener(ctx, ln, handler, nil) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: board\n", line)
	require.Eventually(t, func() bool { return streams.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ServeListener did not return after cancel while an event stream was open")
	}
	assert.Zero(t, streams.Subscribers())
}

func TestStreamManager_Close(t *testing.T) {
	sm := NewStreamManager(nil)
	ch, unsubscribe := sm.Subscribe()

	sm.Close()
	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")
	assert.Zero(t, sm.Subscribers())

	assert.NotPanics(t, unsubscribe)
	assert.NotPanics(t, func() { sm.Broadcast("after close") })
}
