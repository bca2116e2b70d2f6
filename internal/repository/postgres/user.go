package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"scope-service/internal/domain/user"
	apperrors "scope-service/pkg/errors"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, external_id, email, username, first_name, last_name, image_url, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.ExternalID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
		&u.ImageURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpsertByExternalID(ctx context.Context, input user.UpsertUserInput) (*user.User, error) {
	query := `
		INSERT INTO users (external_id, email, username, first_name, last_name, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (external_id) DO UPDATE SET
			email      = EXCLUDED.email,
			username   = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			image_url  = EXCLUDED.image_url,
			is_active  = TRUE,
			updated_at = NOW()
		RETURNING ` + userColumns

	u, err := scanUser(r.db.querier(ctx).QueryRow(ctx, query,
		input.ExternalID, input.Email, input.Username, input.FirstName, input.LastName, input.ImageURL))
	if err != nil {
		return nil, errFailedUpsertUser(err)
	}

	return u, nil
}

func (r *UserRepository) DeactivateByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	query := `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE external_id = $1 RETURNING ` + userColumns

	u, err := scanUser(r.db.querier(ctx).QueryRow(ctx, query, externalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errFailedDeactivateUser(err)
	}

	return u, nil
}

func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE external_id = $1`

	u, err := scanUser(r.db.querier(ctx).QueryRow(ctx, query, externalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errFailedGetUser(err)
	}

	return u, nil
}
