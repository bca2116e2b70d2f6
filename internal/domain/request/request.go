package request

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	// StatusPending is the initial state of every request. It is not a
	// settable target after creation.
	StatusPending    Status = "PENDING"
	StatusInScope    Status = "IN_SCOPE"
	StatusOutOfScope Status = "OUT_OF_SCOPE"

	errInvalidStatusFmt = "invalid request status: %s"
)

// ValidateUpdateTarget rejects PENDING as an update target; a request can
// only move to IN_SCOPE or OUT_OF_SCOPE once triaged. Movement between
// those two states stays open in both directions.
func (s Status) ValidateUpdateTarget() error {
	switch s {
	case StatusInScope, StatusOutOfScope:
		return nil
	default:
		return fmt.Errorf(errInvalidStatusFmt, s)
	}
}

const MaxDescriptionLength = 2000

// Request is a client-submitted work item logged against a project.
// At most one change order may ever reference a request.
type Request struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateRequestInput struct {
	ProjectID   uuid.UUID
	Description string
}

type UpdateRequestInput struct {
	Description *string
	Status      *Status
}
