package user

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an identity managed by the external identity provider.
// Lifecycle events arrive over the identity webhook and are applied as
// idempotent upserts keyed by ExternalID.
type User struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"externalId"`
	Email      *string   `json:"email,omitempty"`
	Username   *string   `json:"username,omitempty"`
	FirstName  *string   `json:"firstName,omitempty"`
	LastName   *string   `json:"lastName,omitempty"`
	ImageURL   *string   `json:"imageUrl,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type UpsertUserInput struct {
	ExternalID string
	Email      *string
	Username   *string
	FirstName  *string
	LastName   *string
	ImageURL   *string
}
