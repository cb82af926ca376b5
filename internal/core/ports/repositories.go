package ports

import (
	"context"

	"github.com/uscl/transaction-tracker/internal/core/domain"
)

// AdminRepository defines persistence operations for admin accounts.
type AdminRepository interface {
	// Create maps a username uniqueness violation to domain.ErrUsernameTaken.
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByID(ctx context.Context, id int64) (*domain.Admin, error)
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	// UsernameTaken reports whether another admin (not excludeID) holds username.
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	List(ctx context.Context, page PageRequest) ([]*domain.Admin, int64, error)
	Update(ctx context.Context, id int64, username, email string) error
	Delete(ctx context.Context, id int64) error
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, page PageRequest) ([]*domain.Client, int64, error)
	Update(ctx context.Context, client *domain.Client) error
	// Delete returns domain.ErrClientInUse while transactions reference the client.
	Delete(ctx context.Context, id int64) error
}

// TransactionRepository defines persistence operations for transactions.
// Create and Update append a history entry in the same unit of work.
type TransactionRepository interface {
	// Create returns domain.ErrTrackingIDTaken when tx.TrackingID already
	// exists and domain.ErrInvalidReference for an unknown client or status.
	Create(ctx context.Context, tx *domain.Transaction) error
	FindByTrackingID(ctx context.Context, trackingID string) (*domain.Transaction, error)
	List(ctx context.Context, page PageRequest) ([]*domain.Transaction, int64, error)
	Update(ctx context.Context, tx *domain.Transaction) error
	Delete(ctx context.Context, trackingID string) error
}

// HistoryFilter selects a page of history, optionally narrowed by a
// case-insensitive substring of the client name.
type HistoryFilter struct {
	ClientName string
	Page       PageRequest
}

// HistoryRepository defines read and delete operations on the audit trail.
type HistoryRepository interface {
	List(ctx context.Context, filter HistoryFilter) ([]*domain.HistoryEntry, int64, error)
	ListByTrackingID(ctx context.Context, trackingID string) ([]*domain.HistoryEntry, error)
	CountByTrackingID(ctx context.Context, trackingID string) (int64, error)
	DeleteByTrackingID(ctx context.Context, trackingID string) (int64, error)
}

// StatusRepository reads the status lookup table.
type StatusRepository interface {
	List(ctx context.Context) ([]domain.Status, error)
}
