package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

var _ ports.StatusRepository = (*StatusRepository)(nil)

type StatusRepository struct {
	pool *pgxpool.Pool
}

func NewStatusRepository(pool *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{pool: pool}
}

func (r *StatusRepository) List(ctx context.Context) ([]domain.Status, error) {
	rows, err := r.pool.Query(ctx, `SELECT status_id, status_name FROM statuses ORDER BY status_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Status, error) {
		var s domain.Status
		err := row.Scan(&s.ID, &s.Name)
		return s, err
	})
}
