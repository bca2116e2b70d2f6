package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scope-service/internal/domain/wallet"
	apperrors "scope-service/pkg/errors"
)

type WalletRepository struct {
	db *DB
}

func NewWalletRepository(db *DB) *WalletRepository {
	return &WalletRepository{db: db}
}

const walletColumns = `id, user_id, address, chain, is_primary, created_at, updated_at`

func scanWallet(row pgx.Row) (*wallet.Wallet, error) {
	var w wallet.Wallet
	err := row.Scan(&w.ID, &w.UserID, &w.Address, &w.Chain, &w.IsPrimary, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*wallet.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.querier(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, errFailedListWallets(err)
	}
	defer rows.Close()

	wallets := make([]*wallet.Wallet, 0)
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, errFailedScanWallet(err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, errFailedListWallets(err)
	}

	return wallets, nil
}

func (r *WalletRepository) Exists(ctx context.Context, userID uuid.UUID, chain wallet.Chain, address string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM wallets WHERE user_id = $1 AND chain = $2 AND address = $3)`

	var exists bool
	if err := r.db.querier(ctx).QueryRow(ctx, query, userID, chain, address).Scan(&exists); err != nil {
		return false, errFailedGetWallet(err)
	}

	return exists, nil
}

func (r *WalletRepository) HasPrimary(ctx context.Context, userID uuid.UUID, chain wallet.Chain) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM wallets WHERE user_id = $1 AND chain = $2 AND is_primary)`

	var exists bool
	if err := r.db.querier(ctx).QueryRow(ctx, query, userID, chain).Scan(&exists); err != nil {
		return false, errFailedGetWallet(err)
	}

	return exists, nil
}

func (r *WalletRepository) DemotePrimary(ctx context.Context, userID uuid.UUID, chain wallet.Chain) error {
	query := `UPDATE wallets SET is_primary = FALSE, updated_at = NOW() WHERE user_id = $1 AND chain = $2 AND is_primary`

	if _, err := r.db.querier(ctx).Exec(ctx, query, userID, chain); err != nil {
		return errFailedUpdateWallet(err)
	}

	return nil
}

func (r *WalletRepository) Create(ctx context.Context, input wallet.CreateWalletInput) (*wallet.Wallet, error) {
	query := `
		INSERT INTO wallets (user_id, address, chain, is_primary)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + walletColumns

	w, err := scanWallet(r.db.querier(ctx).QueryRow(ctx, query,
		input.UserID, input.Address, input.Chain, input.IsPrimary))
	if isUniqueViolation(err) {
		return nil, apperrors.ErrWalletExists
	}
	if err != nil {
		return nil, errFailedCreateWallet(err)
	}

	return w, nil
}

func (r *WalletRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*wallet.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 AND user_id = $2`

	w, err := scanWallet(r.db.querier(ctx).QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrWalletNotFound
	}
	if err != nil {
		return nil, errFailedGetWallet(err)
	}

	return w, nil
}

func (r *WalletRepository) SetPrimary(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	query := `UPDATE wallets SET is_primary = TRUE, updated_at = NOW() WHERE id = $1 RETURNING ` + walletColumns

	w, err := scanWallet(r.db.querier(ctx).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrWalletNotFound
	}
	if err != nil {
		return nil, errFailedUpdateWallet(err)
	}

	return w, nil
}

func (r *WalletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM wallets WHERE id = $1`

	tag, err := r.db.querier(ctx).Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteWallet(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrWalletNotFound
	}

	return nil
}
