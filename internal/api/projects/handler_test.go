package projects

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/chatter/internal/chat"
	"github.com/good-yellow-bee/chatter/internal/docstore"
)

func newTestHandler() (*Handler, *chat.Service) {
	svc := chat.NewService(docstore.NewMemoryStore())
	return NewHandler(svc), svc
}

// withURLParams injects chi route parameters into the request context.
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetParticipants_UnknownProjectIsEmpty(t *testing.T) {
	h, _ := newTestHandler()

	req := httptest.NewRequest("GET", "/projects/ghost/participants", nil)
	req = withURLParams(req, map[string]string{"projectID": "ghost"})
	rec := httptest.NewRecorder()

	h.GetParticipants(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp ParticipantsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Participants) != 0 {
		t.Errorf("participants = %v, want empty", resp.Participants)
	}
}

func TestGetParticipants_AfterSends(t *testing.T) {
	h, svc := newTestHandler()
	ctx := context.Background()

	for _, sender := range []string{"alice", "bob", "alice"} {
		if _, err := svc.SendMessage(ctx, "p1", sender, "hi"); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest("GET", "/projects/p1/participants", nil)
	req = withURLParams(req, map[string]string{"projectID": "p1"})
	rec := httptest.NewRecorder()

	h.GetParticipants(rec, req)

	var resp ParticipantsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Participants) != 2 || resp.Participants[0] != "alice" || resp.Participants[1] != "bob" {
		t.Errorf("participants = %v, want [alice bob]", resp.Participants)
	}
}

func TestInit_ExplicitRosterReplacesPrior(t *testing.T) {
	h, svc := newTestHandler()
	ctx := context.Background()

	if _, err := svc.SendMessage(ctx, "p1", "carol", "hi"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/projects/p1/init",
		strings.NewReader(`{"participants":["a","b"]}`))
	req = withURLParams(req, map[string]string{"projectID": "p1"})
	rec := httptest.NewRecorder()

	h.Init(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp InitResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.ProjectID != "p1" {
		t.Errorf("projectId = %q", resp.ProjectID)
	}
	if len(resp.Participants) != 2 || resp.Participants[0] != "a" || resp.Participants[1] != "b" {
		t.Errorf("participants = %v, want [a b]", resp.Participants)
	}

	// carol must be gone from subsequent reads
	roster, err := svc.GetParticipants(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range roster {
		if p == "carol" {
			t.Error("prior participant survived init")
		}
	}
}

func TestInit_NoBodyUsesDefaultRoster(t *testing.T) {
	h, _ := newTestHandler()

	req := httptest.NewRequest("POST", "/projects/p1/init", nil)
	req = withURLParams(req, map[string]string{"projectID": "p1"})
	rec := httptest.NewRecorder()

	h.Init(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp InitResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Participants) != len(chat.DefaultParticipants) {
		t.Errorf("participants = %v, want default roster", resp.Participants)
	}
}

func TestInit_InvalidBody(t *testing.T) {
	h, _ := newTestHandler()

	req := httptest.NewRequest("POST", "/projects/p1/init", strings.NewReader("{oops"))
	req = withURLParams(req, map[string]string{"projectID": "p1"})
	rec := httptest.NewRecorder()

	h.Init(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetParticipants_BlankID(t *testing.T) {
	h, _ := newTestHandler()

	req := httptest.NewRequest("GET", "/projects/%20/participants", nil)
	req = withURLParams(req, map[string]string{"projectID": " "})
	rec := httptest.NewRecorder()

	h.GetParticipants(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
