package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scope-service/internal/domain/scopeitem"
	apperrors "scope-service/pkg/errors"
)

type ScopeItemRepository struct {
	db *DB
}

func NewScopeItemRepository(db *DB) *ScopeItemRepository {
	return &ScopeItemRepository{db: db}
}

const scopeItemColumns = `id, project_id, name, description, status, created_at, updated_at`

func scanScopeItem(row pgx.Row) (*scopeitem.ScopeItem, error) {
	var item scopeitem.ScopeItem
	err := row.Scan(&item.ID, &item.ProjectID, &item.Name, &item.Description, &item.Status, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ScopeItemRepository) Create(ctx context.Context, input scopeitem.CreateScopeItemInput) (*scopeitem.ScopeItem, error) {
	query := `
		INSERT INTO scope_items (project_id, name, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + scopeItemColumns

	item, err := scanScopeItem(r.db.querier(ctx).QueryRow(ctx, query,
		input.ProjectID, input.Name, input.Description, scopeitem.StatusPending))
	if err != nil {
		return nil, errFailedCreateScopeItem(err)
	}

	return item, nil
}

func (r *ScopeItemRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*scopeitem.ScopeItem, error) {
	query := `SELECT ` + scopeItemColumns + ` FROM scope_items WHERE project_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.querier(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, errFailedListScopeItems(err)
	}
	defer rows.Close()

	items := make([]*scopeitem.ScopeItem, 0)
	for rows.Next() {
		item, err := scanScopeItem(rows)
		if err != nil {
			return nil, errFailedScanScopeItem(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errFailedListScopeItems(err)
	}

	return items, nil
}

func (r *ScopeItemRepository) Update(ctx context.Context, id, projectID uuid.UUID, input scopeitem.UpdateScopeItemInput) (*scopeitem.ScopeItem, error) {
	query := `UPDATE scope_items SET updated_at = NOW()`
	args := []any{id, projectID}
	argCount := 2

	if input.Name != nil {
		argCount++
		query += fmt.Sprintf(", name = $%d", argCount)
		args = append(args, *input.Name)
	}
	if input.Description != nil {
		argCount++
		query += fmt.Sprintf(", description = $%d", argCount)
		args = append(args, *input.Description)
	}
	if input.Status != nil {
		argCount++
		query += fmt.Sprintf(", status = $%d", argCount)
		args = append(args, *input.Status)
	}

	query += ` WHERE id = $1 AND project_id = $2 RETURNING ` + scopeItemColumns

	item, err := scanScopeItem(r.db.querier(ctx).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrScopeItemNotFound
	}
	if err != nil {
		return nil, errFailedUpdateScopeItem(err)
	}

	return item, nil
}

func (r *ScopeItemRepository) Delete(ctx context.Context, id, projectID uuid.UUID) error {
	query := `DELETE FROM scope_items WHERE id = $1 AND project_id = $2`

	tag, err := r.db.querier(ctx).Exec(ctx, query, id, projectID)
	if err != nil {
		return errFailedDeleteScopeItem(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrScopeItemNotFound
	}

	return nil
}
