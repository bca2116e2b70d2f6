package service

import (
	"context"

	"github.com/google/uuid"

	"scope-service/internal/domain/paymentlink"
	"scope-service/internal/domain/wallet"
	"scope-service/internal/repository"
	apperrors "scope-service/pkg/errors"
	"scope-service/pkg/token"
)

type PaymentLinkService struct {
	wallets      repository.WalletRepository
	paymentLinks repository.PaymentLinkRepository
}

func NewPaymentLinkService(wallets repository.WalletRepository, paymentLinks repository.PaymentLinkRepository) *PaymentLinkService {
	return &PaymentLinkService{wallets: wallets, paymentLinks: paymentLinks}
}

type CreatePaymentLinkParams struct {
	WalletID  uuid.UUID
	Chain     wallet.Chain
	Asset     wallet.Asset
	AmountUSD *float64
	Memo      *string
}

// Create mints a public slug-addressed payment request. The backing wallet
// must belong to the caller, sit on the declared chain, and the asset must
// be on that chain's allow-list.
func (s *PaymentLinkService) Create(ctx context.Context, userID uuid.UUID, params CreatePaymentLinkParams) (*paymentlink.PaymentLink, error) {
	if params.AmountUSD != nil {
		if err := paymentlink.ValidateAmountUSD(*params.AmountUSD); err != nil {
			return nil, err
		}
	}
	if params.Memo != nil {
		if err := paymentlink.ValidateMemo(*params.Memo); err != nil {
			return nil, err
		}
	}

	w, err := s.wallets.FindOwned(ctx, params.WalletID, userID)
	if err != nil {
		return nil, err
	}
	if w.Chain != params.Chain {
		return nil, apperrors.ErrChainMismatch
	}
	if !params.Chain.Supports(params.Asset) {
		return nil, apperrors.ErrUnsupportedAsset
	}

	slug, err := token.GenerateSlug()
	if err != nil {
		return nil, err
	}

	return s.paymentLinks.Create(ctx, paymentlink.CreatePaymentLinkInput{
		UserID:    userID,
		WalletID:  params.WalletID,
		Slug:      slug,
		Chain:     params.Chain,
		Asset:     params.Asset,
		AmountUSD: params.AmountUSD,
		Memo:      params.Memo,
	})
}

// GetBySlug is the public read path; only ACTIVE links resolve.
func (s *PaymentLinkService) GetBySlug(ctx context.Context, slug string) (*paymentlink.PaymentLink, error) {
	return s.paymentLinks.FindActiveBySlug(ctx, slug)
}

func (s *PaymentLinkService) List(ctx context.Context, userID uuid.UUID) ([]*paymentlink.PaymentLink, error) {
	return s.paymentLinks.ListActiveByUser(ctx, userID)
}

// Delete soft-deactivates. A link that is already INACTIVE reads as absent.
func (s *PaymentLinkService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	pl, err := s.paymentLinks.FindOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if pl.Status != paymentlink.StatusActive {
		return apperrors.ErrPaymentLinkNotFound
	}

	_, err = s.paymentLinks.Deactivate(ctx, id)
	return err
}
