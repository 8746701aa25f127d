package chat

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"

	"github.com/good-yellow-bee/chatter/internal/docstore"
	"github.com/good-yellow-bee/chatter/internal/models"
)

// EnsureProjectForSender makes sure the project exists and that senderID is
// on its roster, creating the project on first contact. The roster append is
// an atomic array-union on the store, so concurrent first-time senders
// cannot clobber each other's addition. The inputs are assumed validated by
// the caller.
func (s *Service) EnsureProjectForSender(ctx context.Context, projectID, senderID string) (*models.Project, error) {
	doc, err := s.store.Get(ctx, projectsCollection, projectID)
	if errors.Is(err, docstore.ErrNotFound) {
		project := models.NewProject(projectID, []string{senderID})
		err := s.store.Set(ctx, projectsCollection, projectID, docstore.Document{
			"participants": project.Participants,
			"createdAt":    project.CreatedAt,
		})
		if err != nil {
			return nil, storeErr("create project", err)
		}
		return project, nil
	}
	if err != nil {
		return nil, storeErr("get project", err)
	}

	project := docToProject(projectID, doc)
	if !lo.Contains(project.Participants, senderID) {
		err := s.store.Update(ctx, projectsCollection, projectID, docstore.Document{
			"participants": docstore.ArrayUnion{senderID},
		})
		if err != nil {
			return nil, storeErr("update participants", err)
		}
		project.Participants = append(project.Participants, senderID)
	}
	return project, nil
}

// GetParticipants returns the stored roster. A missing project is not an
// error on this read path; it yields an empty roster.
func (s *Service) GetParticipants(ctx context.Context, projectID string) ([]string, error) {
	projectID, err := requireField("projectId", projectID)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Get(ctx, projectsCollection, projectID)
	if errors.Is(err, docstore.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, storeErr("get project", err)
	}
	return docToProject(projectID, doc).Participants, nil
}

// InitProject unconditionally overwrites the project document with the given
// roster, or DefaultParticipants when none is supplied, and a fresh creation
// timestamp. Prior roster and description state is destroyed. Safe to repeat.
func (s *Service) InitProject(ctx context.Context, projectID string, participants []string) (*models.Project, error) {
	projectID, err := requireField("projectId", projectID)
	if err != nil {
		return nil, err
	}

	if len(participants) == 0 {
		participants = DefaultParticipants
	}
	project := models.NewProject(projectID, participants)

	err = s.store.Set(ctx, projectsCollection, projectID, docstore.Document{
		"participants": project.Participants,
		"createdAt":    project.CreatedAt,
	})
	if err != nil {
		return nil, storeErr("init project", err)
	}
	return project, nil
}

func docToProject(projectID string, doc docstore.Document) *models.Project {
	project := &models.Project{
		ID:           projectID,
		Participants: []string{},
	}
	switch arr := doc["participants"].(type) {
	case []string:
		project.Participants = append(project.Participants, arr...)
	case []any:
		for _, e := range arr {
			if s, ok := e.(string); ok {
				project.Participants = append(project.Participants, s)
			}
		}
	}
	if desc, ok := doc["description"].(string); ok {
		project.Description = desc
	}
	switch created := doc["createdAt"].(type) {
	case time.Time:
		project.CreatedAt = created
	case string:
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			project.CreatedAt = t
		}
	}
	return project
}
