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

var _ ports.TransactionRepository = (*TransactionRepository)(nil)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionSelect = `
	SELECT t.tracking_id, t.client_id, c.client_name, t.tracking_message,
	       t.tracking_status_id, s.status_name, t.description, t.created_at
	FROM transactions t
	JOIN clients c ON c.client_id = t.client_id
	JOIN statuses s ON s.status_id = t.tracking_status_id`

// Create inserts the transaction and its first history entry atomically.
// An existing tracking ID leaves the table untouched and reports
// domain.ErrTrackingIDTaken so the caller can retry with a new candidate.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	err := pgx.BeginFunc(ctx, r.pool, func(dbtx pgx.Tx) error {
		tag, err := dbtx.Exec(ctx, `
			INSERT INTO transactions (tracking_id, client_id, tracking_message, tracking_status_id, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (tracking_id) DO NOTHING`,
			tx.TrackingID, tx.ClientID, tx.Message, tx.StatusID, tx.Description, tx.CreatedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrTrackingIDTaken
		}
		if err := appendHistory(ctx, dbtx, tx); err != nil {
			return err
		}
		return fillNames(ctx, dbtx, tx)
	})
	return mapWriteError("insert transaction", err)
}

func (r *TransactionRepository) FindByTrackingID(ctx context.Context, trackingID string) (*domain.Transaction, error) {
	return scanTransaction(r.pool.QueryRow(ctx, transactionSelect+` WHERE t.tracking_id = $1`, trackingID))
}

func (r *TransactionRepository) List(ctx context.Context, page ports.PageRequest) ([]*domain.Transaction, int64, error) {
	rows, err := r.pool.Query(ctx,
		transactionSelect+` ORDER BY t.tracking_id ASC LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	txs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}
	return txs, total, nil
}

// Update rewrites the mutable columns and appends the new state to the
// history in the same transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	err := pgx.BeginFunc(ctx, r.pool, func(dbtx pgx.Tx) error {
		tag, err := dbtx.Exec(ctx, `
			UPDATE transactions
			SET client_id = $1, tracking_message = $2, tracking_status_id = $3, description = $4
			WHERE tracking_id = $5`,
			tx.ClientID, tx.Message, tx.StatusID, tx.Description, tx.TrackingID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrTransactionNotFound
		}
		if err := appendHistory(ctx, dbtx, tx); err != nil {
			return err
		}
		return fillNames(ctx, dbtx, tx)
	})
	return mapWriteError("update transaction", err)
}

// Delete removes the transaction; its history goes with it via ON DELETE CASCADE.
func (r *TransactionRepository) Delete(ctx context.Context, trackingID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE tracking_id = $1`, trackingID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func appendHistory(ctx context.Context, dbtx pgx.Tx, tx *domain.Transaction) error {
	_, err := dbtx.Exec(ctx, `
		INSERT INTO transaction_history
			(tracking_id, client_id, tracking_message, description, tracking_status_id, created_at, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		tx.TrackingID, tx.ClientID, tx.Message, tx.Description, tx.StatusID, tx.CreatedAt,
	)
	return err
}

func fillNames(ctx context.Context, dbtx pgx.Tx, tx *domain.Transaction) error {
	return dbtx.QueryRow(ctx, `
		SELECT c.client_name, s.status_name
		FROM clients c, statuses s
		WHERE c.client_id = $1 AND s.status_id = $2`,
		tx.ClientID, tx.StatusID,
	).Scan(&tx.ClientName, &tx.StatusName)
}

func mapWriteError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrTrackingIDTaken), errors.Is(err, domain.ErrTransactionNotFound):
		return err
	case isUniqueViolation(err):
		return domain.ErrTrackingIDTaken
	case isForeignKeyViolation(err):
		return domain.ErrInvalidReference
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.TrackingID, &t.ClientID, &t.ClientName, &t.Message,
		&t.StatusID, &t.StatusName, &t.Description, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &t, nil
}
