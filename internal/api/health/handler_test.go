package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubChecker struct {
	err error
}

func (c *stubChecker) Check(ctx context.Context) error {
	return c.err
}

func TestHealth_OK(t *testing.T) {
	h := NewHandler("production", &stubChecker{})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Store != "connected" {
		t.Errorf("store = %q, want connected", resp.Store)
	}
	if resp.Environment != "production" {
		t.Errorf("environment = %q", resp.Environment)
	}
	if resp.Timestamp == "" {
		t.Error("timestamp missing")
	}
}

func TestHealth_StoreFailure(t *testing.T) {
	h := NewHandler("test", &stubChecker{err: errors.New("database is closed")})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	// Health stays 200; degradation is reported in the body.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "degraded" {
		t.Errorf("status = %q, want degraded", resp.Status)
	}
	if resp.Store != "error: database is closed" {
		t.Errorf("store = %q", resp.Store)
	}
}

func TestHealth_NoStoreConfigured(t *testing.T) {
	h := NewHandler("test", nil)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Store != "not configured" {
		t.Errorf("store = %q", resp.Store)
	}
}
