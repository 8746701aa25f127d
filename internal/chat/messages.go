package chat

import (
	"context"
	"errors"

	"github.com/good-yellow-bee/chatter/internal/docstore"
	"github.com/good-yellow-bee/chatter/internal/metrics"
	"github.com/good-yellow-bee/chatter/internal/models"
)

// ListMessages returns all messages under a project ordered ascending by
// timestamp, each with a normalized timestamp. A missing project is not an
// error; it yields an empty list.
func (s *Service) ListMessages(ctx context.Context, projectID string) ([]models.Message, error) {
	projectID, err := requireField("projectId", projectID)
	if err != nil {
		return nil, err
	}

	_, err = s.store.Get(ctx, projectsCollection, projectID)
	if errors.Is(err, docstore.ErrNotFound) {
		return []models.Message{}, nil
	}
	if err != nil {
		return nil, storeErr("get project", err)
	}

	docs, err := s.store.OrderedScan(ctx, messagesCollection(projectID), "timestamp")
	if err != nil {
		return nil, storeErr("list messages", err)
	}

	messages := make([]models.Message, len(docs))
	for i, doc := range docs {
		messages[i] = docToMessage(doc)
	}
	return messages, nil
}

// SendMessage appends a message to a project, creating the project and
// updating its roster first. The store assigns the id and the creation
// timestamp; the record is re-read after the write so the returned timestamp
// representation is exactly what a subsequent list would show.
func (s *Service) SendMessage(ctx context.Context, projectID, senderID, content string) (*models.Message, error) {
	projectID, err := requireField("projectId", projectID)
	if err != nil {
		return nil, err
	}
	senderID, err = requireField("senderId", senderID)
	if err != nil {
		return nil, err
	}
	content, err = requireField("content", content)
	if err != nil {
		return nil, err
	}

	if _, err := s.EnsureProjectForSender(ctx, projectID, senderID); err != nil {
		return nil, err
	}

	coll := messagesCollection(projectID)
	id, err := s.store.Add(ctx, coll, docstore.Document{
		"senderId":  senderID,
		"content":   content,
		"timestamp": docstore.ServerTimestamp{},
	})
	if err != nil {
		return nil, storeErr("add message", err)
	}

	// Read back the stored record: the write call and a later read can
	// disagree on timestamp shape, and the read is authoritative.
	doc, err := s.store.Get(ctx, coll, id)
	if err != nil {
		return nil, storeErr("read back message", err)
	}

	metrics.MessagesSentTotal.Inc()
	msg := docToMessage(doc)
	return &msg, nil
}

// EditMessage replaces a message's content on behalf of its original sender,
// marking it edited. The sender id and original timestamp are untouched.
func (s *Service) EditMessage(ctx context.Context, projectID, messageID, senderID, content string) (*models.Message, error) {
	projectID, err := requireField("projectId", projectID)
	if err != nil {
		return nil, err
	}
	messageID, err = requireField("messageId", messageID)
	if err != nil {
		return nil, err
	}
	senderID, err = requireField("senderId", senderID)
	if err != nil {
		return nil, err
	}
	content, err = requireField("content", content)
	if err != nil {
		return nil, err
	}

	coll := messagesCollection(projectID)
	doc, err := s.store.Get(ctx, coll, messageID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, &NotFoundError{Resource: "message"}
	}
	if err != nil {
		return nil, storeErr("get message", err)
	}
	if owner, _ := doc["senderId"].(string); owner != senderID {
		return nil, &ForbiddenError{Action: "edit"}
	}

	err = s.store.Update(ctx, coll, messageID, docstore.Document{
		"content":  content,
		"edited":   true,
		"editedAt": docstore.ServerTimestamp{},
	})
	if err != nil {
		return nil, storeErr("update message", err)
	}

	updated, err := s.store.Get(ctx, coll, messageID)
	if err != nil {
		return nil, storeErr("read back message", err)
	}

	metrics.MessagesEditedTotal.Inc()
	msg := docToMessage(updated)
	return &msg, nil
}

// DeleteMessage removes a message on behalf of its original sender and
// returns the deleted id. Deleting an already-deleted id yields NotFound.
func (s *Service) DeleteMessage(ctx context.Context, projectID, messageID, senderID string) (string, error) {
	projectID, err := requireField("projectId", projectID)
	if err != nil {
		return "", err
	}
	messageID, err = requireField("messageId", messageID)
	if err != nil {
		return "", err
	}
	senderID, err = requireField("senderId", senderID)
	if err != nil {
		return "", err
	}

	coll := messagesCollection(projectID)
	doc, err := s.store.Get(ctx, coll, messageID)
	if errors.Is(err, docstore.ErrNotFound) {
		return "", &NotFoundError{Resource: "message"}
	}
	if err != nil {
		return "", storeErr("get message", err)
	}
	if owner, _ := doc["senderId"].(string); owner != senderID {
		return "", &ForbiddenError{Action: "delete"}
	}

	if err := s.store.Delete(ctx, coll, messageID); err != nil {
		return "", storeErr("delete message", err)
	}

	metrics.MessagesDeletedTotal.Inc()
	return messageID, nil
}
