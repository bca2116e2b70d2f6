package paymentlink

import (
	"time"

	"github.com/google/uuid"

	"scope-service/internal/domain/wallet"
	apperrors "scope-service/pkg/errors"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

const MaxMemoLength = 255

func ValidateAmountUSD(v float64) error {
	if v < 1 {
		return apperrors.Validation("amountUsd must be at least 1")
	}
	return nil
}

func ValidateMemo(memo string) error {
	if len(memo) > MaxMemoLength {
		return apperrors.Validation("memo must be at most %d characters", MaxMemoLength)
	}
	return nil
}

// PaymentLink is a public, slug-addressed crypto payment request backed by
// one of the owner's wallets. Deletion is a soft deactivation.
type PaymentLink struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"userId"`
	WalletID  uuid.UUID    `json:"walletId"`
	Slug      string       `json:"slug"`
	Chain     wallet.Chain `json:"chain"`
	Asset     wallet.Asset `json:"asset"`
	AmountUSD *float64     `json:"amountUsd,omitempty"`
	Memo      *string      `json:"memo,omitempty"`
	Status    Status       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type CreatePaymentLinkInput struct {
	UserID    uuid.UUID
	WalletID  uuid.UUID
	Slug      string
	Chain     wallet.Chain
	Asset     wallet.Asset
	AmountUSD *float64
	Memo      *string
}
