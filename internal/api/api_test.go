package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/good-yellow-bee/chatter/internal/docstore"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(&Config{Environment: "test"}, docstore.NewMemoryStore())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func TestNew_RequiresStore(t *testing.T) {
	if _, err := New(&Config{}, nil); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := New(nil, docstore.NewMemoryStore()); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)
	router := srv.setupRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"status", "timestamp", "store", "environment"} {
		if _, ok := resp[field]; !ok {
			t.Errorf("health response missing %q", field)
		}
	}
	if resp["environment"] != "test" {
		t.Errorf("environment = %v", resp["environment"])
	}
}

func TestRouter_UnmatchedRoute(t *testing.T) {
	srv := newTestServer(t)
	router := srv.setupRouter()

	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp struct {
		Error              string   `json:"error"`
		Method             string   `json:"method"`
		URL                string   `json:"url"`
		AvailableEndpoints []string `json:"availableEndpoints"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == "" || resp.Method != "GET" || resp.URL != "/nope" {
		t.Errorf("404 body = %+v", resp)
	}
	if len(resp.AvailableEndpoints) == 0 {
		t.Error("availableEndpoints missing")
	}
}

func TestRouter_EndToEndSendAndList(t *testing.T) {
	srv := newTestServer(t)
	router := srv.setupRouter()

	req := httptest.NewRequest("POST", "/projects/p1/messages",
		strings.NewReader(`{"senderId":"alice","content":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("send status = %d, body %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/projects/p1/messages", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var msgs []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&msgs); err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0]["content"] != "hello" {
		t.Errorf("messages = %v", msgs)
	}

	req = httptest.NewRequest("GET", "/projects/p1/participants", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var roster struct {
		Participants []string `json:"participants"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&roster); err != nil {
		t.Fatal(err)
	}
	if len(roster.Participants) != 1 || roster.Participants[0] != "alice" {
		t.Errorf("participants = %v, want [alice]", roster.Participants)
	}
}
