package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

var _ ports.HistoryRepository = (*HistoryRepository)(nil)

type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

const historySelect = `
	SELECT h.history_id, h.tracking_id, h.client_id, c.client_name, h.tracking_message,
	       h.description, h.tracking_status_id, s.status_name, h.created_at, h.changed_at
	FROM transaction_history h
	JOIN clients c ON c.client_id = h.client_id
	JOIN statuses s ON s.status_id = h.tracking_status_id`

// historyQueries holds the page query and the count query for a filter.
// Both share the same WHERE clause so total always describes the filtered set.
type historyQueries struct {
	data      string
	dataArgs  []any
	count     string
	countArgs []any
}

func buildHistoryQueries(filter ports.HistoryFilter) historyQueries {
	var (
		where string
		args  []any
	)
	if name := strings.TrimSpace(filter.ClientName); name != "" {
		where = ` WHERE c.client_name ILIKE '%' || $1 || '%' ESCAPE '\'`
		args = append(args, escapeLike(name))
	}

	n := len(args)
	data := historySelect + where +
		fmt.Sprintf(` ORDER BY h.history_id ASC LIMIT $%d OFFSET $%d`, n+1, n+2)
	dataArgs := append(append([]any{}, args...), filter.Page.Limit, filter.Page.Offset())

	count := `SELECT COUNT(*) FROM transaction_history h JOIN clients c ON c.client_id = h.client_id` + where

	return historyQueries{data: data, dataArgs: dataArgs, count: count, countArgs: args}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string { return likeEscaper.Replace(s) }

func (r *HistoryRepository) List(ctx context.Context, filter ports.HistoryFilter) ([]*domain.HistoryEntry, int64, error) {
	q := buildHistoryQueries(filter)

	rows, err := r.pool.Query(ctx, q.data, q.dataArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.HistoryEntry, error) {
		return scanHistory(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, q.count, q.countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}
	return entries, total, nil
}

func (r *HistoryRepository) ListByTrackingID(ctx context.Context, trackingID string) ([]*domain.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, historySelect+` WHERE h.tracking_id = $1 ORDER BY h.history_id ASC`, trackingID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.HistoryEntry, error) {
		return scanHistory(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

func (r *HistoryRepository) CountByTrackingID(ctx context.Context, trackingID string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transaction_history WHERE tracking_id = $1`, trackingID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

func (r *HistoryRepository) DeleteByTrackingID(ctx context.Context, trackingID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transaction_history WHERE tracking_id = $1`, trackingID)
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanHistory(row pgx.Row) (*domain.HistoryEntry, error) {
	var h domain.HistoryEntry
	err := row.Scan(&h.ID, &h.TrackingID, &h.ClientID, &h.ClientName, &h.Message,
		&h.Description, &h.StatusID, &h.StatusName, &h.CreatedAt, &h.ChangedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHistoryNotFound
		}
		return nil, err
	}
	return &h, nil
}
