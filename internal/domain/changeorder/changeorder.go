package changeorder

import (
	"math"
	"time"

	"github.com/google/uuid"

	apperrors "scope-service/pkg/errors"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// transitions is the authoritative rulebook for change order status moves.
// APPROVED and REJECTED are absorbing: once decided, a change order is
// permanently immutable, including against deletion.
var transitions = map[Status][]Status{
	StatusPending:  {StatusPending, StatusApproved, StatusRejected},
	StatusApproved: {},
	StatusRejected: {},
}

// CanTransitionTo reports whether target is a legal next status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

const (
	MaxPriceUSD  = 999999.99
	MaxExtraDays = 365

	centsEpsilon = 1e-6
)

// ValidatePriceUSD enforces the financial invariant on change order prices:
// positive, at most 999999.99, at most 2 fractional digits. Price correctness
// is owned by the core, not just the request-schema layer.
func ValidatePriceUSD(v float64) error {
	if v <= 0 {
		return apperrors.Validation("priceUsd must be positive")
	}
	if v > MaxPriceUSD {
		return apperrors.Validation("priceUsd must be at most %.2f", float64(MaxPriceUSD))
	}
	cents := v * 100
	if math.Abs(cents-math.Round(cents)) > centsEpsilon {
		return apperrors.Validation("priceUsd must have at most 2 decimal places")
	}
	return nil
}

// ValidateExtraDays bounds the optional schedule extension.
func ValidateExtraDays(d int) error {
	if d <= 0 {
		return apperrors.Validation("extraDays must be positive")
	}
	if d > MaxExtraDays {
		return apperrors.Validation("extraDays must be at most %d", MaxExtraDays)
	}
	return nil
}

// ChangeOrder is a priced addendum tied 1:1 to one out-of-scope request.
type ChangeOrder struct {
	ID        uuid.UUID `json:"id"`
	RequestID uuid.UUID `json:"requestId"`
	ProjectID uuid.UUID `json:"projectId"`
	UserID    uuid.UUID `json:"userId"`
	PriceUSD  float64   `json:"priceUsd"`
	ExtraDays *int      `json:"extraDays,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateChangeOrderInput struct {
	RequestID uuid.UUID
	ProjectID uuid.UUID
	UserID    uuid.UUID
	PriceUSD  float64
	ExtraDays *int
}

type UpdateChangeOrderInput struct {
	PriceUSD  *float64
	ExtraDays *int
	Status    *Status
}
