package scopeitem

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"

	errInvalidStatusFmt = "invalid scope item status: %s"
)

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return nil
	default:
		return fmt.Errorf(errInvalidStatusFmt, s)
	}
}

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 1000
)

type ScopeItem struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateScopeItemInput struct {
	ProjectID   uuid.UUID
	Name        string
	Description string
}

type UpdateScopeItemInput struct {
	Name        *string
	Description *string
	Status      *Status
}
