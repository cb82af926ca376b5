package ports

import (
	"context"

	"github.com/uscl/transaction-tracker/internal/core/domain"
)

// RegisterInput carries a new admin account. CallerRole is the role of the
// authenticated requester and is empty for anonymous registration.
type RegisterInput struct {
	Username   string
	Password   string
	Email      string
	Role       domain.Role
	CallerRole domain.Role
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Admin, error)
	Login(ctx context.Context, username, password string) (string, *domain.Admin, error)
}

// UpdateAdminInput replaces an admin's username and email.
type UpdateAdminInput struct {
	ID       int64
	Username string
	Email    string
}

type AdminService interface {
	ListAdmins(ctx context.Context, page PageRequest) (Page[*domain.Admin], error)
	GetAdmin(ctx context.Context, id int64) (*domain.Admin, error)
	UpdateAdmin(ctx context.Context, input UpdateAdminInput) error
	DeleteAdmin(ctx context.Context, id int64) error
}

// ClientInput is the full writable state of a client.
type ClientInput struct {
	Name     string
	Email    string
	IsActive bool
}

type ClientService interface {
	ListClients(ctx context.Context, page PageRequest) (Page[*domain.Client], error)
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
	CreateClient(ctx context.Context, input ClientInput) (*domain.Client, error)
	UpdateClient(ctx context.Context, id int64, input ClientInput) error
	DeleteClient(ctx context.Context, id int64) error
}

// CreateTransactionInput carries the caller-supplied fields of a new
// transaction. The tracking ID is always generated server-side.
type CreateTransactionInput struct {
	ClientID       int64
	Message        string
	StatusID       int
	Description    *string
	IdempotencyKey string
}

// UpdateTransactionInput fully replaces the mutable fields of a transaction.
type UpdateTransactionInput struct {
	TrackingID  string
	ClientID    int64
	Message     string
	StatusID    int
	Description *string
}

// TransactionResult is returned by CreateTransaction.
type TransactionResult struct {
	Transaction *domain.Transaction
	// AlreadyExisted is true when the Idempotency-Key matched an earlier create.
	AlreadyExisted bool
}

type TransactionService interface {
	ListTransactions(ctx context.Context, page PageRequest) (Page[*domain.Transaction], error)
	GetTransaction(ctx context.Context, trackingID string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, input CreateTransactionInput) (*TransactionResult, error)
	UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, trackingID string) error
	ListStatuses(ctx context.Context) ([]domain.Status, error)
}

type HistoryService interface {
	ListHistory(ctx context.Context, filter HistoryFilter) (Page[*domain.HistoryEntry], error)
	GetHistory(ctx context.Context, trackingID string) ([]*domain.HistoryEntry, error)
	DeleteHistory(ctx context.Context, trackingID string) error
}

// EventPublisher hands transaction events to the asynchronous dispatcher.
type EventPublisher interface {
	Enqueue(event domain.TransactionEvent)
}

// EventSink delivers a single event to its final destination.
type EventSink interface {
	Publish(ctx context.Context, event domain.TransactionEvent) error
}
