package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHandlerExposesObservations(t *testing.T) {
	m := New()
	m.ObserveProcess("ok")
	m.ObserveProcess("ok")
	m.ObserveProcess("engine_unavailable")
	m.ObserveEngine(250 * time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rr.Body)
	out := string(body)

	for _, want := range []string{
		`pixelgate_process_requests_total{outcome="ok"} 2`,
		`pixelgate_process_requests_total{outcome="engine_unavailable"} 1`,
		`pixelgate_engine_duration_seconds_count 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected metrics output to contain %q", want)
		}
	}
}

func TestNewUsesSeparateRegistries(t *testing.T) {
	// registering twice on a shared registry would panic
	a := New()
	b := New()
	a.ObserveProcess("ok")

	rr := httptest.NewRecorder()
	b.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	if strings.Contains(rr.Body.String(), `outcome="ok"`) {
		t.Error("Expected registries to be independent")
	}
}
