package sharelink

import (
	"time"

	"github.com/google/uuid"
)

// ShareLink is a tokenized read-only view of a subset of a project's data.
// Only the SHA-256 hash of the token is persisted; the raw token is emitted
// once at creation and never stored or logged.
type ShareLink struct {
	ID               uuid.UUID  `json:"id"`
	ProjectID        uuid.UUID  `json:"projectId"`
	TokenHash        string     `json:"-"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	ShowScopeItems   bool       `json:"showScopeItems"`
	ShowRequests     bool       `json:"showRequests"`
	ShowChangeOrders bool       `json:"showChangeOrders"`
	IsActive         bool       `json:"isActive"`
	ViewCount        int        `json:"viewCount"`
	LastViewedAt     *time.Time `json:"lastViewedAt,omitempty"`
	RevokedAt        *time.Time `json:"revokedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// Expired reports whether the link has an expiry in the past.
func (l *ShareLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}

type CreateShareLinkInput struct {
	ProjectID        uuid.UUID
	TokenHash        string
	ExpiresAt        *time.Time
	ShowScopeItems   bool
	ShowRequests     bool
	ShowChangeOrders bool
}
