package client

import (
	"time"

	"github.com/google/uuid"
)

// Client exists only as a child of exactly one project and is created
// alongside it.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Company   *string   `json:"company,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateClientInput struct {
	Name    string
	Email   *string
	Company *string
}

type UpdateClientInput struct {
	Name    *string
	Email   *string
	Company *string
}
