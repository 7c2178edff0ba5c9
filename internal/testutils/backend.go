// Package testutils provides a fake SFS backend for tests.
package testutils

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// Routes lists every method and route template the fake backend serves.
var Routes = []struct{ Method, Pattern string }{
	{http.MethodPost, "/upload"},
	{http.MethodPost, "/add/new"},
	{http.MethodPost, "/add/discover"},
	{http.MethodPost, "/user/upload-pfp"},
	{http.MethodPost, "/user/clear-pfp"},
	{http.MethodPost, "/user/edit"},
	{http.MethodPost, "/search"},
	{http.MethodPost, "/settings"},
	{http.MethodDelete, "/files/delete"},
	{http.MethodGet, "/files/i/{fileID}/open-loc"},
	{http.MethodDelete, "/empty"},
	{http.MethodGet, "/health"},
}

// RecordedFile is one uploaded file part.
type RecordedFile struct {
	Filename string
	Content  string
}

// RecordedRequest is what the backend saw for one call.
type RecordedRequest struct {
	Method      string
	Path        string
	Route       string
	ContentType string
	RequestID   string
	Body        string
	Fields      map[string]string
	Files       map[string]RecordedFile
	FieldOrder  []string
}

type reply struct {
	status int
	body   string
}

// Backend is an httptest server routed with chi that records every request.
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
	replies  map[string]reply
	holds    map[string]chan struct{}
	entered  chan string
}

// NewBackend starts a backend that answers 200 with an empty body on every route.
// It is closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		replies: make(map[string]reply),
		holds:   make(map[string]chan struct{}),
		entered: make(chan string, 16),
	}

	r := chi.NewRouter()
	for _, route := range Routes {
		r.MethodFunc(route.Method, route.Pattern, b.handle(t, route.Method, route.Pattern))
	}
	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Close)
	return b
}

// Respond sets the status and body returned for method and route.
func (b *Backend) Respond(method, route string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[method+" "+route] = reply{status: status, body: body}
}

// Hold makes calls to method and route block until the returned func is called.
// Entered reports each blocked call as it arrives.
func (b *Backend) Hold(method, route string) (release func()) {
	ch := make(chan struct{})
	b.mu.Lock()
	b.holds[method+" "+route] = ch
	b.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Entered receives the route of every held call once it reaches the handler.
func (b *Backend) Entered() <-chan string {
	return b.entered
}

// Requests returns a copy of the recorded requests.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// Count returns the number of recorded requests.
func (b *Backend) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

// Last returns the most recent request. It fails the test if there is none.
func (b *Backend) Last(t *testing.T) RecordedRequest {
	t.Helper()
	reqs := b.Requests()
	require.NotEmpty(t, reqs, "backend received no requests")
	return reqs[len(reqs)-1]
}

func (b *Backend) handle(t *testing.T, method, route string) http.HandlerFunc {
	key := method + " " + route
	return func(w http.ResponseWriter, r *http.Request) {
		rec := RecordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Route:       route,
			ContentType: r.Header.Get("Content-Type"),
			RequestID:   r.Header.Get("X-Request-Id"),
		}
		if err := readBody(r, &rec); err != nil {
			t.Errorf("fake backend: reading %s: %v", key, err)
		}

		b.mu.Lock()
		b.requests = append(b.requests, rec)
		hold := b.holds[key]
		rep, ok := b.replies[key]
		b.mu.Unlock()

		if hold != nil {
			b.entered <- route
			<-hold
		}
		if !ok {
			rep = reply{status: http.StatusOK}
		}
		if strings.HasPrefix(strings.TrimSpace(rep.body), "{") {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(rep.status)
		_, _ = io.WriteString(w, rep.body)
	}
}

func readBody(r *http.Request, rec *RecordedRequest) error {
	mediaType, params, _ := mime.ParseMediaType(rec.ContentType)
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		rec.Body = string(data)
		return err
	}

	rec.Fields = make(map[string]string)
	rec.Files = make(map[string]RecordedFile)
	mr := multipart.NewReader(r.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return err
		}
		name := part.FormName()
		rec.FieldOrder = append(rec.FieldOrder, name)
		if part.FileName() != "" {
			rec.Files[name] = RecordedFile{Filename: part.FileName(), Content: string(data)}
			continue
		}
		rec.Fields[name] = string(data)
	}
}
