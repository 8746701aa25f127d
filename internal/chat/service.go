// Package chat implements the message and participant consistency rules:
// how projects and their rosters come into existence, how messages are
// appended and rendered with a canonical timestamp shape, and how edit and
// delete enforce sender ownership.
package chat

import (
	"strings"

	"github.com/good-yellow-bee/chatter/internal/docstore"
	"github.com/good-yellow-bee/chatter/internal/models"
)

const projectsCollection = "projects"

// DefaultParticipants is the roster written by an explicit init when the
// caller supplies none.
var DefaultParticipants = []string{"user1", "user2", "user3"}

// Service coordinates project roster maintenance and message operations
// against an injected document store.
type Service struct {
	store docstore.Store
}

// NewService creates a Service backed by the given store.
func NewService(store docstore.Store) *Service {
	return &Service{store: store}
}

func messagesCollection(projectID string) string {
	return projectsCollection + "/" + projectID + "/messages"
}

// requireField trims the value and fails with a ValidationError when it
// comes up empty. Callers validate every input this way before touching
// the store.
func requireField(name, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &ValidationError{Field: name}
	}
	return trimmed, nil
}

// docToMessage shapes a stored message document for callers, normalizing
// the timestamp fields whatever representation the store handed back.
func docToMessage(doc docstore.Document) models.Message {
	msg := models.Message{
		Timestamp: models.NormalizeTimestamp(doc["timestamp"]),
	}
	if id, ok := doc["id"].(string); ok {
		msg.ID = id
	}
	if sender, ok := doc["senderId"].(string); ok {
		msg.SenderID = sender
	}
	if content, ok := doc["content"].(string); ok {
		msg.Content = content
	}
	if edited, ok := doc["edited"].(bool); ok && edited {
		msg.Edited = true
		msg.EditedAt = models.NormalizeTimestamp(doc["editedAt"])
	}
	return msg
}
