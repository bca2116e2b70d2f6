package service

import (
	"context"

	"github.com/google/uuid"

	"scope-service/internal/domain/wallet"
	"scope-service/internal/repository"
	apperrors "scope-service/pkg/errors"
)

type WalletService struct {
	uow     repository.UnitOfWork
	wallets repository.WalletRepository
}

func NewWalletService(uow repository.UnitOfWork, wallets repository.WalletRepository) *WalletService {
	return &WalletService{uow: uow, wallets: wallets}
}

type CreateWalletParams struct {
	Address     string
	Chain       wallet.Chain
	MakePrimary bool
}

func (s *WalletService) List(ctx context.Context, userID uuid.UUID) ([]*wallet.Wallet, error) {
	return s.wallets.ListByUser(ctx, userID)
}

// Create registers a receiving address. The first wallet on a chain always
// becomes primary; an explicit MakePrimary demotes the current primary in
// the same transaction so the one-primary invariant never lapses.
func (s *WalletService) Create(ctx context.Context, userID uuid.UUID, params CreateWalletParams) (*wallet.Wallet, error) {
	if err := params.Chain.Validate(); err != nil {
		return nil, err
	}
	if err := wallet.ValidateAddress(params.Address); err != nil {
		return nil, err
	}

	var created *wallet.Wallet
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.wallets.Exists(ctx, userID, params.Chain, params.Address)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrWalletExists
		}

		hasPrimary, err := s.wallets.HasPrimary(ctx, userID, params.Chain)
		if err != nil {
			return err
		}

		isPrimary := params.MakePrimary || !hasPrimary
		if isPrimary && hasPrimary {
			if err := s.wallets.DemotePrimary(ctx, userID, params.Chain); err != nil {
				return err
			}
		}

		created, err = s.wallets.Create(ctx, wallet.CreateWalletInput{
			UserID:    userID,
			Address:   params.Address,
			Chain:     params.Chain,
			IsPrimary: isPrimary,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *WalletService) SetPrimary(ctx context.Context, id, userID uuid.UUID) (*wallet.Wallet, error) {
	var promoted *wallet.Wallet
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		w, err := s.wallets.FindOwned(ctx, id, userID)
		if err != nil {
			return err
		}
		if w.IsPrimary {
			return apperrors.ErrAlreadyPrimary
		}

		if err := s.wallets.DemotePrimary(ctx, userID, w.Chain); err != nil {
			return err
		}

		promoted, err = s.wallets.SetPrimary(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return promoted, nil
}

func (s *WalletService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	w, err := s.wallets.FindOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if w.IsPrimary {
		return apperrors.ErrCannotDeletePrimary
	}

	return s.wallets.Delete(ctx, id)
}
