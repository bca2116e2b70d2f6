package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scope-service/internal/domain/client"
	apperrors "scope-service/pkg/errors"
)

type ClientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, name, email, company, created_at, updated_at`

func scanClient(row pgx.Row) (*client.Client, error) {
	var c client.Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Create(ctx context.Context, input client.CreateClientInput) (*client.Client, error) {
	query := `
		INSERT INTO clients (name, email, company)
		VALUES ($1, $2, $3)
		RETURNING ` + clientColumns

	c, err := scanClient(r.db.querier(ctx).QueryRow(ctx, query, input.Name, input.Email, input.Company))
	if err != nil {
		return nil, errFailedCreateClient(err)
	}

	return c, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(r.db.querier(ctx).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrClientNotFound
	}
	if err != nil {
		return nil, errFailedGetClient(err)
	}

	return c, nil
}

func (r *ClientRepository) Update(ctx context.Context, id uuid.UUID, input client.UpdateClientInput) (*client.Client, error) {
	query := `UPDATE clients SET updated_at = NOW()`
	args := []any{id}
	argCount := 1

	if input.Name != nil {
		argCount++
		query += fmt.Sprintf(", name = $%d", argCount)
		args = append(args, *input.Name)
	}
	if input.Email != nil {
		argCount++
		query += fmt.Sprintf(", email = $%d", argCount)
		args = append(args, *input.Email)
	}
	if input.Company != nil {
		argCount++
		query += fmt.Sprintf(", company = $%d", argCount)
		args = append(args, *input.Company)
	}

	query += ` WHERE id = $1 RETURNING ` + clientColumns

	c, err := scanClient(r.db.querier(ctx).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrClientNotFound
	}
	if err != nil {
		return nil, errFailedUpdateClient(err)
	}

	return c, nil
}
