// Package models contains the domain types shared across the service.
package models

import (
	"time"
)

// Project is a named container for a participant roster and a sequence of
// messages. The id is caller-supplied; participants keep the order in which
// each sender first posted.
type Project struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewProject creates a Project with an initialized creation timestamp.
func NewProject(id string, participants []string) *Project {
	return &Project{
		ID:           id,
		Participants: participants,
		CreatedAt:    time.Now().UTC(),
	}
}
