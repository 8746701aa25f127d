// Package projects provides the HTTP handlers for project roster operations.
package projects

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/chatter/internal/api/respond"
	"github.com/good-yellow-bee/chatter/internal/chat"
)

// Handler serves the participant roster endpoints.
type Handler struct {
	svc *chat.Service
}

// NewHandler creates a new projects handler.
func NewHandler(svc *chat.Service) *Handler {
	return &Handler{svc: svc}
}

// InitRequest carries the optional explicit roster for an init.
type InitRequest struct {
	Participants []string `json:"participants"`
}

// ParticipantsResponse wraps the roster list.
type ParticipantsResponse struct {
	Participants []string `json:"participants"`
}

// InitResponse acknowledges a project initialization.
type InitResponse struct {
	Message      string   `json:"message"`
	ProjectID    string   `json:"projectId"`
	Participants []string `json:"participants"`
}

// GetParticipants returns the project's roster. An unknown project yields an
// empty roster, not a 404.
func (h *Handler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	participants, err := h.svc.GetParticipants(r.Context(), projectID)
	if err != nil {
		respond.ServiceError(w, r, err)
		return
	}
	respond.OK(w, ParticipantsResponse{Participants: participants})
}

// Init overwrites the project document with the supplied roster, or the
// default roster when none is given. Destroys any prior roster state.
func (h *Handler) Init(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var req InitRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	project, err := h.svc.InitProject(r.Context(), projectID, req.Participants)
	if err != nil {
		respond.ServiceError(w, r, err)
		return
	}

	log.Printf("project initialized: %s participants=%d", project.ID, len(project.Participants))
	respond.OK(w, InitResponse{
		Message:      "project initialized successfully",
		ProjectID:    project.ID,
		Participants: project.Participants,
	})
}
