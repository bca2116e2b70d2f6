package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scope-service/internal/domain/request"
	apperrors "scope-service/pkg/errors"
)

type RequestRepository struct {
	db *DB
}

func NewRequestRepository(db *DB) *RequestRepository {
	return &RequestRepository{db: db}
}

const requestColumns = `id, project_id, description, status, created_at, updated_at`

func scanRequest(row pgx.Row) (*request.Request, error) {
	var req request.Request
	err := row.Scan(&req.ID, &req.ProjectID, &req.Description, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) Create(ctx context.Context, input request.CreateRequestInput) (*request.Request, error) {
	query := `
		INSERT INTO requests (project_id, description, status)
		VALUES ($1, $2, $3)
		RETURNING ` + requestColumns

	req, err := scanRequest(r.db.querier(ctx).QueryRow(ctx, query,
		input.ProjectID, input.Description, request.StatusPending))
	if err != nil {
		return nil, errFailedCreateRequest(err)
	}

	return req, nil
}

func (r *RequestRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*request.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE project_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.querier(ctx).Query(ctx, query, projectID)
	if err != nil {
		return nil, errFailedListRequests(err)
	}
	defer rows.Close()

	requests := make([]*request.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, errFailedScanRequest(err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, errFailedListRequests(err)
	}

	return requests, nil
}

// FindOwned resolves a request only when its parent project belongs to the
// given user, so a foreign request reads the same as a missing one.
func (r *RequestRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*request.Request, error) {
	query := `
		SELECT r.id, r.project_id, r.description, r.status, r.created_at, r.updated_at
		FROM requests r
		JOIN projects p ON p.id = r.project_id
		WHERE r.id = $1 AND p.user_id = $2`

	req, err := scanRequest(r.db.querier(ctx).QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrRequestNotFound
	}
	if err != nil {
		return nil, errFailedGetRequest(err)
	}

	return req, nil
}

func (r *RequestRepository) Update(ctx context.Context, id uuid.UUID, input request.UpdateRequestInput) (*request.Request, error) {
	query := `UPDATE requests SET updated_at = NOW()`
	args := []any{id}
	argCount := 1

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

	query += ` WHERE id = $1 RETURNING ` + requestColumns

	req, err := scanRequest(r.db.querier(ctx).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrRequestNotFound
	}
	if err != nil {
		return nil, errFailedUpdateRequest(err)
	}

	return req, nil
}

func (r *RequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM requests WHERE id = $1`

	tag, err := r.db.querier(ctx).Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteRequest(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}

	return nil
}
