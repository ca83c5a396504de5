package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLivenessHandler(t *testing.T) {
	h := NewHealthChecker()

	rec := httptest.NewRecorder()
	h.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Status != healthStatusOK {
		t.Errorf("status field = %q, want ok", resp.Status)
	}
}

func TestReadinessHandler(t *testing.T) {
	h := NewHealthChecker()

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ready: status = %d, want 200", rec.Code)
	}

	h.SetReady(false)
	rec = httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("not ready: status = %d, want 503", rec.Code)
	}

	h.SetReady(true)
	if !h.IsReady() {
		t.Error("IsReady() = false after SetReady(true)")
	}
}

func TestMetricsServerRequiresProvider(t *testing.T) {
	_, err := NewMetricsServer(MetricsServerConfig{Addr: ":0"})
	if err == nil {
		t.Error("NewMetricsServer without provider should fail")
	}
}
