package guide

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tripnavi/tripnavi/internal/cache"
)

// providerServer is a fake upstream that counts requests per path and serves
// canned JSON bodies.
type providerServer struct {
	server *httptest.Server
	calls  atomic.Int64
	// handler decides the response; replace per test.
	handler func(w http.ResponseWriter, r *http.Request)
}

func newProviderServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *providerServer {
	t.Helper()
	ps := &providerServer{handler: handler}
	ps.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.calls.Add(1)
		ps.handler(w, r)
	}))
	t.Cleanup(ps.server.Close)
	return ps
}

func (ps *providerServer) URL() string {
	return ps.server.URL
}

func (ps *providerServer) Calls() int64 {
	return ps.calls.Load()
}

func jsonResponse(body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

// newTestService wires every provider at the same fake upstream with a high
// request budget so the limiter never stalls a test.
func newTestService(t *testing.T, upstream string) (*Service, *cache.MemoryBackend) {
	t.Helper()
	backend := cache.NewMemoryBackend()
	service := NewService(backend, Config{
		DirectionsBaseURL: upstream,
		PlacesBaseURL:     upstream,
		PhotosBaseURL:     upstream,
		WeatherBaseURL:    upstream,
		CurrencyBaseURL:   upstream,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 1000,
	})
	return service, backend
}
