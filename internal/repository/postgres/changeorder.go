package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scope-service/internal/domain/changeorder"
	"scope-service/internal/domain/request"
	apperrors "scope-service/pkg/errors"
)

type ChangeOrderRepository struct {
	db *DB
}

func NewChangeOrderRepository(db *DB) *ChangeOrderRepository {
	return &ChangeOrderRepository{db: db}
}

const changeOrderColumns = `id, request_id, project_id, user_id, price_usd, extra_days, status, created_at, updated_at`

func scanChangeOrder(row pgx.Row) (*changeorder.ChangeOrder, error) {
	var co changeorder.ChangeOrder
	err := row.Scan(&co.ID, &co.RequestID, &co.ProjectID, &co.UserID, &co.PriceUSD, &co.ExtraDays, &co.Status, &co.CreatedAt, &co.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &co, nil
}

// FindEligibleRequest resolves the target request only when every
// eligibility condition holds at once: the request lives in the given
// project, the project belongs to the given user, the request is
// OUT_OF_SCOPE, and no change order references it yet. Evaluating the
// predicate as one query keeps the check-then-insert window closed when
// run inside the creation transaction.
func (r *ChangeOrderRepository) FindEligibleRequest(ctx context.Context, requestID, projectID, userID uuid.UUID) (*request.Request, error) {
	query := `
		SELECT r.id, r.project_id, r.description, r.status, r.created_at, r.updated_at
		FROM requests r
		JOIN projects p ON p.id = r.project_id
		WHERE r.id = $1
		  AND r.project_id = $2
		  AND p.user_id = $3
		  AND r.status = $4
		  AND NOT EXISTS (
			SELECT 1 FROM change_orders co WHERE co.request_id = r.id
		  )`

	req, err := scanRequest(r.db.querier(ctx).QueryRow(ctx, query,
		requestID, projectID, userID, request.StatusOutOfScope))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrRequestNotEligible
	}
	if err != nil {
		return nil, errFailedGetRequest(err)
	}

	return req, nil
}

func (r *ChangeOrderRepository) Create(ctx context.Context, input changeorder.CreateChangeOrderInput) (*changeorder.ChangeOrder, error) {
	query := `
		INSERT INTO change_orders (request_id, project_id, user_id, price_usd, extra_days, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + changeOrderColumns

	co, err := scanChangeOrder(r.db.querier(ctx).QueryRow(ctx, query,
		input.RequestID, input.ProjectID, input.UserID, input.PriceUSD, input.ExtraDays, changeorder.StatusPending))
	if isUniqueViolation(err) {
		// The unique index on request_id caught a concurrent creation.
		return nil, apperrors.ErrRequestNotEligible
	}
	if err != nil {
		return nil, errFailedCreateChangeOrder(err)
	}

	return co, nil
}

func (r *ChangeOrderRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*changeorder.ChangeOrder, error) {
	query := `SELECT ` + changeOrderColumns + ` FROM change_orders WHERE project_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.querier(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, errFailedListChangeOrders(err)
	}
	defer rows.Close()

	orders := make([]*changeorder.ChangeOrder, 0)
	for rows.Next() {
		co, err := scanChangeOrder(rows)
		if err != nil {
			return nil, errFailedScanChangeOrder(err)
		}
		orders = append(orders, co)
	}
	if err := rows.Err(); err != nil {
		return nil, errFailedListChangeOrders(err)
	}

	return orders, nil
}

func (r *ChangeOrderRepository) FindScoped(ctx context.Context, id, projectID, userID uuid.UUID) (*changeorder.ChangeOrder, error) {
	query := `SELECT ` + changeOrderColumns + ` FROM change_orders WHERE id = $1 AND project_id = $2 AND user_id = $3`

	co, err := scanChangeOrder(r.db.querier(ctx).QueryRow(ctx, query, id, projectID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrChangeOrderNotFound
	}
	if err != nil {
		return nil, errFailedGetChangeOrder(err)
	}

	return co, nil
}

func (r *ChangeOrderRepository) Update(ctx context.Context, id uuid.UUID, input changeorder.UpdateChangeOrderInput) (*changeorder.ChangeOrder, error) {
	query := `UPDATE change_orders SET updated_at = NOW()`
	args := []any{id}
	argCount := 1

	if input.PriceUSD != nil {
		argCount++
		query += fmt.Sprintf(", price_usd = $%d", argCount)
		args = append(args, *input.PriceUSD)
	}
	if input.ExtraDays != nil {
		argCount++
		query += fmt.Sprintf(", extra_days = $%d", argCount)
		args = append(args, *input.ExtraDays)
	}
	if input.Status != nil {
		argCount++
		query += fmt.Sprintf(", status = $%d", argCount)
		args = append(args, *input.Status)
	}

	query += ` WHERE id = $1 RETURNING ` + changeOrderColumns

	co, err := scanChangeOrder(r.db.querier(ctx).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrChangeOrderNotFound
	}
	if err != nil {
		return nil, errFailedUpdateChangeOrder(err)
	}

	return co, nil
}

func (r *ChangeOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM change_orders WHERE id = $1`

	tag, err := r.db.querier(ctx).Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteChangeOrder(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrChangeOrderNotFound
	}

	return nil
}
