package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading metrics: %v", err)
	}
	return string(body)
}

func TestObserve(t *testing.T) {
	m := New()

	m.ObserveRequest("GET /orders", 200, 10*time.Millisecond)
	m.ObserveRequest("GET /orders", 200, 20*time.Millisecond)
	m.ObserveBackend("PATCH", "/api/orders/1/status", 204, time.Millisecond)
	m.ObserveBackend("GET", "/api/orders", 0, time.Millisecond)
	m.ObserveTransition("order", 2)

	body := scrape(t, m)
	for _, want := range []string{
		`konzola_http_requests_total{code="200",route="GET /orders"} 2`,
		`konzola_http_request_duration_seconds_count{route="GET /orders"} 2`,
		`konzola_backend_requests_total{code="0",method="GET"} 1`,
		`konzola_backend_requests_total{code="204",method="PATCH"} 1`,
		`konzola_status_transitions_total{entity="order",target="2"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in exposition", want)
		}
	}
}

func TestBackendPathNotLabelled(t *testing.T) {
	m := New()
	m.ObserveBackend("GET", "/api/orders/123", 200, time.Millisecond)

	if body := scrape(t, m); strings.Contains(body, "/api/orders/123") {
		t.Error("backend path leaked into labels")
	}
}
