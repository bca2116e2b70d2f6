package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scope-service/internal/domain/paymentlink"
	apperrors "scope-service/pkg/errors"
)

type PaymentLinkRepository struct {
	db *DB
}

func NewPaymentLinkRepository(db *DB) *PaymentLinkRepository {
	return &PaymentLinkRepository{db: db}
}

const paymentLinkColumns = `id, user_id, wallet_id, slug, chain, asset, amount_usd, memo, status, created_at, updated_at`

func scanPaymentLink(row pgx.Row) (*paymentlink.PaymentLink, error) {
	var pl paymentlink.PaymentLink
	err := row.Scan(&pl.ID, &pl.UserID, &pl.WalletID, &pl.Slug, &pl.Chain, &pl.Asset,
		&pl.AmountUSD, &pl.Memo, &pl.Status, &pl.CreatedAt, &pl.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &pl, nil
}

func (r *PaymentLinkRepository) Create(ctx context.Context, input paymentlink.CreatePaymentLinkInput) (*paymentlink.PaymentLink, error) {
	query := `
		INSERT INTO payment_links (user_id, wallet_id, slug, chain, asset, amount_usd, memo, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + paymentLinkColumns

	pl, err := scanPaymentLink(r.db.querier(ctx).QueryRow(ctx, query,
		input.UserID, input.WalletID, input.Slug, input.Chain, input.Asset,
		input.AmountUSD, input.Memo, paymentlink.StatusActive))
	if err != nil {
		return nil, errFailedCreatePaymentLink(err)
	}

	return pl, nil
}

func (r *PaymentLinkRepository) FindActiveBySlug(ctx context.Context, slug string) (*paymentlink.PaymentLink, error) {
	query := `SELECT ` + paymentLinkColumns + ` FROM payment_links WHERE slug = $1 AND status = $2`

	pl, err := scanPaymentLink(r.db.querier(ctx).QueryRow(ctx, query, slug, paymentlink.StatusActive))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrPaymentLinkNotFound
	}
	if err != nil {
		return nil, errFailedGetPaymentLink(err)
	}

	return pl, nil
}

func (r *PaymentLinkRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*paymentlink.PaymentLink, error) {
	query := `SELECT ` + paymentLinkColumns + ` FROM payment_links WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC`

	rows, err := r.db.querier(ctx).Query(ctx, query, userID, paymentlink.StatusActive)
	if err != nil {
		return nil, errFailedListPaymentLinks(err)
	}
	defer rows.Close()

	links := make([]*paymentlink.PaymentLink, 0)
	for rows.Next() {
		pl, err := scanPaymentLink(rows)
		if err != nil {
			return nil, errFailedScanPaymentLink(err)
		}
		links = append(links, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, errFailedListPaymentLinks(err)
	}

	return links, nil
}

func (r *PaymentLinkRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*paymentlink.PaymentLink, error) {
	query := `SELECT ` + paymentLinkColumns + ` FROM payment_links WHERE id = $1 AND user_id = $2`

	pl, err := scanPaymentLink(r.db.querier(ctx).QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrPaymentLinkNotFound
	}
	if err != nil {
		return nil, errFailedGetPaymentLink(err)
	}

	return pl, nil
}

func (r *PaymentLinkRepository) Deactivate(ctx context.Context, id uuid.UUID) (*paymentlink.PaymentLink, error) {
	query := `UPDATE payment_links SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + paymentLinkColumns

	pl, err := scanPaymentLink(r.db.querier(ctx).QueryRow(ctx, query, id, paymentlink.StatusInactive))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrPaymentLinkNotFound
	}
	if err != nil {
		return nil, errFailedDeactivatePaymentLink(err)
	}

	return pl, nil
}
