// Package messages provides the HTTP handlers for message operations.
package messages

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/chatter/internal/api/respond"
	"github.com/good-yellow-bee/chatter/internal/chat"
)

// Handler serves the message endpoints of a project.
type Handler struct {
	svc *chat.Service
}

// NewHandler creates a new messages handler.
func NewHandler(svc *chat.Service) *Handler {
	return &Handler{svc: svc}
}

// Request types
type SendRequest struct {
	SenderID string `json:"senderId"`
	Content  string `json:"content"`
}

type EditRequest struct {
	SenderID string `json:"senderId"`
	Content  string `json:"content"`
}

// DeleteResponse acknowledges a successful delete.
type DeleteResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

// List returns all messages in a project ordered by timestamp. An unknown
// project yields an empty array, not a 404.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	msgs, err := h.svc.ListMessages(r.Context(), projectID)
	if err != nil {
		respond.ServiceError(w, r, err)
		return
	}
	respond.OK(w, msgs)
}

// Send creates a new message, creating the project and updating its roster
// as needed.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.svc.SendMessage(r.Context(), projectID, req.SenderID, req.Content)
	if err != nil {
		respond.ServiceError(w, r, err)
		return
	}

	log.Printf("message sent: project=%s sender=%s id=%s", projectID, msg.SenderID, msg.ID)
	respond.OK(w, msg)
}

// Edit replaces a message's content on behalf of its original sender.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	messageID := chi.URLParam(r, "messageID")

	var req EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.svc.EditMessage(r.Context(), projectID, messageID, req.SenderID, req.Content)
	if err != nil {
		respond.ServiceError(w, r, err)
		return
	}

	log.Printf("message edited: project=%s id=%s", projectID, messageID)
	respond.OK(w, msg)
}

// Delete removes a message on behalf of its original sender. The sender id
// comes from the query string.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	messageID := chi.URLParam(r, "messageID")
	senderID := r.URL.Query().Get("senderId")

	deletedID, err := h.svc.DeleteMessage(r.Context(), projectID, messageID, senderID)
	if err != nil {
		respond.ServiceError(w, r, err)
		return
	}

	log.Printf("message deleted: project=%s id=%s", projectID, deletedID)
	respond.OK(w, DeleteResponse{
		Message:   "message deleted successfully",
		MessageID: deletedID,
	})
}
