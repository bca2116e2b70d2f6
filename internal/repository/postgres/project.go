package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scope-service/internal/domain/project"
	apperrors "scope-service/pkg/errors"
)

type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, user_id, client_id, name, description, status, created_at, updated_at`

func scanProject(row pgx.Row) (*project.Project, error) {
	var p project.Project
	err := row.Scan(&p.ID, &p.UserID, &p.ClientID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, input project.CreateProjectInput) (*project.Project, error) {
	query := `
		INSERT INTO projects (user_id, client_id, name, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + projectColumns

	p, err := scanProject(r.db.querier(ctx).QueryRow(ctx, query,
		input.UserID, input.ClientID, input.Name, input.Description, project.StatusPending))
	if err != nil {
		return nil, errFailedCreateProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND user_id = $2`

	p, err := scanProject(r.db.querier(ctx).QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrProjectNotFound
	}
	if err != nil {
		return nil, errFailedGetProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	p, err := scanProject(r.db.querier(ctx).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrProjectNotFound
	}
	if err != nil {
		return nil, errFailedGetProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.querier(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, errFailedListProjects(err)
	}
	defer rows.Close()

	projects := make([]*project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, errFailedScanProject(err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errFailedListProjects(err)
	}

	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, input project.UpdateProjectInput) (*project.Project, error) {
	query := `UPDATE projects SET updated_at = NOW()`
	args := []any{id}
	argCount := 1

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

	query += ` WHERE id = $1 RETURNING ` + projectColumns

	p, err := scanProject(r.db.querier(ctx).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrProjectNotFound
	}
	if err != nil {
		return nil, errFailedUpdateProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`

	tag, err := r.db.querier(ctx).Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteProject(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}
