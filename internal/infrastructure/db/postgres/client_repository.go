package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

var _ ports.ClientRepository = (*ClientRepository)(nil)

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

const clientColumns = `client_id, client_name, email, is_active, created_at`

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	const query = `
		INSERT INTO clients (client_name, email, is_active, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + clientColumns

	created, err := scanClient(r.pool.QueryRow(ctx, query, c.Name, c.Email, c.IsActive, c.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrClientExists
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return created, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	return scanClient(r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE client_id = $1`, id))
}

func (r *ClientRepository) List(ctx context.Context, page ports.PageRequest) ([]*domain.Client, int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY client_id ASC LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	clients, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Client, error) {
		return scanClient(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}
	return clients, total, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE clients SET client_name = $1, email = $2, is_active = $3 WHERE client_id = $4`,
		c.Name, c.Email, c.IsActive, c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrClientExists
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE client_id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrClientInUse
		}
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.IsActive, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}
