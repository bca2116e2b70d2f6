package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scope-service/internal/domain/sharelink"
	apperrors "scope-service/pkg/errors"
)

type ShareLinkRepository struct {
	db *DB
}

func NewShareLinkRepository(db *DB) *ShareLinkRepository {
	return &ShareLinkRepository{db: db}
}

const shareLinkColumns = `id, project_id, token_hash, expires_at, show_scope_items, show_requests, show_change_orders, is_active, view_count, last_viewed_at, revoked_at, created_at`

func scanShareLink(row pgx.Row) (*sharelink.ShareLink, error) {
	var l sharelink.ShareLink
	err := row.Scan(&l.ID, &l.ProjectID, &l.TokenHash, &l.ExpiresAt,
		&l.ShowScopeItems, &l.ShowRequests, &l.ShowChangeOrders,
		&l.IsActive, &l.ViewCount, &l.LastViewedAt, &l.RevokedAt, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ShareLinkRepository) Create(ctx context.Context, input sharelink.CreateShareLinkInput) (*sharelink.ShareLink, error) {
	query := `
		INSERT INTO share_links (project_id, token_hash, expires_at, show_scope_items, show_requests, show_change_orders)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + shareLinkColumns

	l, err := scanShareLink(r.db.querier(ctx).QueryRow(ctx, query,
		input.ProjectID, input.TokenHash, input.ExpiresAt,
		input.ShowScopeItems, input.ShowRequests, input.ShowChangeOrders))
	if err != nil {
		return nil, errFailedCreateShareLink(err)
	}

	return l, nil
}

func (r *ShareLinkRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*sharelink.ShareLink, error) {
	query := `SELECT ` + shareLinkColumns + ` FROM share_links WHERE project_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.querier(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, errFailedListShareLinks(err)
	}
	defer rows.Close()

	links := make([]*sharelink.ShareLink, 0)
	for rows.Next() {
		l, err := scanShareLink(rows)
		if err != nil {
			return nil, errFailedScanShareLink(err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errFailedListShareLinks(err)
	}

	return links, nil
}

func (r *ShareLinkRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*sharelink.ShareLink, error) {
	query := `
		SELECT l.id, l.project_id, l.token_hash, l.expires_at, l.show_scope_items, l.show_requests, l.show_change_orders,
		       l.is_active, l.view_count, l.last_viewed_at, l.revoked_at, l.created_at
		FROM share_links l
		JOIN projects p ON p.id = l.project_id
		WHERE l.id = $1 AND p.user_id = $2`

	l, err := scanShareLink(r.db.querier(ctx).QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrShareLinkNotFound
	}
	if err != nil {
		return nil, errFailedGetShareLink(err)
	}

	return l, nil
}

func (r *ShareLinkRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*sharelink.ShareLink, error) {
	query := `SELECT ` + shareLinkColumns + ` FROM share_links WHERE token_hash = $1`

	l, err := scanShareLink(r.db.querier(ctx).QueryRow(ctx, query, tokenHash))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrShareLinkNotFound
	}
	if err != nil {
		return nil, errFailedGetShareLink(err)
	}

	return l, nil
}

func (r *ShareLinkRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) (*sharelink.ShareLink, error) {
	query := `
		UPDATE share_links
		SET is_active = FALSE, revoked_at = $2
		WHERE id = $1
		RETURNING ` + shareLinkColumns

	l, err := scanShareLink(r.db.querier(ctx).QueryRow(ctx, query, id, at))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrShareLinkNotFound
	}
	if err != nil {
		return nil, errFailedRevokeShareLink(err)
	}

	return l, nil
}

func (r *ShareLinkRepository) RecordView(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE share_links SET view_count = view_count + 1, last_viewed_at = $2 WHERE id = $1`

	if _, err := r.db.querier(ctx).Exec(ctx, query, id, at); err != nil {
		return errFailedRecordView(err)
	}

	return nil
}
