package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

// maxTrackingIDAttempts bounds the collision retry loop in CreateTransaction.
const maxTrackingIDAttempts = 5

// IdempotencyStore remembers which tracking ID a create request produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (trackingID string, found bool, err error)
	Remember(ctx context.Context, key, trackingID string) error
}

// Recorder receives domain counters. The metrics package provides the
// Prometheus implementation.
type Recorder interface {
	TrackingIDCollision()
	TrackingIDExhausted()
	TransactionCreated(statusID int)
}

type nopRecorder struct{}

func (nopRecorder) TrackingIDCollision()   {}
func (nopRecorder) TrackingIDExhausted()   {}
func (nopRecorder) TransactionCreated(int) {}

type nopPublisher struct{}

func (nopPublisher) Enqueue(domain.TransactionEvent) {}

// TransactionOption customises a TransactionService.
type TransactionOption func(*TransactionService)

// WithIdempotencyStore enables Idempotency-Key handling on create.
func WithIdempotencyStore(store IdempotencyStore) TransactionOption {
	return func(s *TransactionService) { s.idempotency = store }
}

// WithEventPublisher sends transaction events to p.
func WithEventPublisher(p ports.EventPublisher) TransactionOption {
	return func(s *TransactionService) { s.events = p }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) TransactionOption {
	return func(s *TransactionService) { s.metrics = r }
}

// WithTrackingIDGenerator replaces NewTrackingID.
func WithTrackingIDGenerator(gen func() string) TransactionOption {
	return func(s *TransactionService) { s.newTrackingID = gen }
}

type TransactionService struct {
	repo          ports.TransactionRepository
	statuses      ports.StatusRepository
	idempotency   IdempotencyStore
	events        ports.EventPublisher
	metrics       Recorder
	newTrackingID func() string
	logger        zerolog.Logger
	now           func() time.Time
}

func NewTransactionService(
	repo ports.TransactionRepository,
	statuses ports.StatusRepository,
	logger zerolog.Logger,
	opts ...TransactionOption,
) *TransactionService {
	s := &TransactionService{
		repo:          repo,
		statuses:      statuses,
		events:        nopPublisher{},
		metrics:       nopRecorder{},
		newTrackingID: NewTrackingID,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TransactionService) ListTransactions(ctx context.Context, page ports.PageRequest) (ports.Page[*domain.Transaction], error) {
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return ports.Page[*domain.Transaction]{}, fmt.Errorf("list transactions: %w", err)
	}
	return ports.NewPage(items, total, page), nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, trackingID string) (*domain.Transaction, error) {
	return s.repo.FindByTrackingID(ctx, trackingID)
}

// CreateTransaction inserts a transaction under a freshly generated tracking
// ID. A uniqueness violation on the ID is treated as a collision and retried
// with a new candidate, up to maxTrackingIDAttempts times; any other store
// error aborts immediately.
func (s *TransactionService) CreateTransaction(ctx context.Context, input ports.CreateTransactionInput) (*ports.TransactionResult, error) {
	if err := validateTransactionFields(input.ClientID, input.Message, input.StatusID); err != nil {
		return nil, err
	}

	if replay := s.replay(ctx, input.IdempotencyKey); replay != nil {
		return replay, nil
	}

	tx := &domain.Transaction{
		ClientID:    input.ClientID,
		Message:     strings.TrimSpace(input.Message),
		StatusID:    input.StatusID,
		Description: input.Description,
		CreatedAt:   s.now(),
	}

	for attempt := 1; attempt <= maxTrackingIDAttempts; attempt++ {
		tx.TrackingID = s.newTrackingID()

		err := s.repo.Create(ctx, tx)
		if err == nil {
			s.afterCreate(ctx, tx, input.IdempotencyKey)
			return &ports.TransactionResult{Transaction: tx}, nil
		}
		if !errors.Is(err, domain.ErrTrackingIDTaken) {
			if !errors.Is(err, domain.ErrInvalidReference) {
				s.logger.Error().Err(err).Int64("client_id", input.ClientID).Msg("failed to create transaction")
			}
			return nil, fmt.Errorf("create transaction: %w", err)
		}

		s.metrics.TrackingIDCollision()
		s.logger.Warn().Str("tracking_id", tx.TrackingID).Int("attempt", attempt).Msg("tracking id collision")
	}

	s.metrics.TrackingIDExhausted()
	s.logger.Error().Int("attempts", maxTrackingIDAttempts).Msg("tracking id allocation exhausted")
	return nil, domain.ErrTrackingIDExhausted
}

// replay returns the earlier result for a seen idempotency key. Store
// failures are logged and the request proceeds as new.
func (s *TransactionService) replay(ctx context.Context, key string) *ports.TransactionResult {
	if key == "" || s.idempotency == nil {
		return nil
	}
	trackingID, found, err := s.idempotency.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}
	existing, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		s.logger.Warn().Err(err).Str("tracking_id", trackingID).Msg("idempotent replay target missing")
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("tracking_id", trackingID).Msg("idempotent replay")
	return &ports.TransactionResult{Transaction: existing, AlreadyExisted: true}
}

func (s *TransactionService) afterCreate(ctx context.Context, tx *domain.Transaction, key string) {
	if key != "" && s.idempotency != nil {
		if err := s.idempotency.Remember(ctx, key, tx.TrackingID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotency key")
		}
	}
	s.metrics.TransactionCreated(tx.StatusID)
	s.publish(domain.EventCreated, tx)
	s.logger.Info().Str("tracking_id", tx.TrackingID).Int64("client_id", tx.ClientID).Msg("transaction created")
}

// UpdateTransaction replaces client, message, status and description. The
// tracking ID itself is immutable.
func (s *TransactionService) UpdateTransaction(ctx context.Context, input ports.UpdateTransactionInput) (*domain.Transaction, error) {
	if err := validateTransactionFields(input.ClientID, input.Message, input.StatusID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByTrackingID(ctx, input.TrackingID)
	if err != nil {
		return nil, err
	}

	existing.ClientID = input.ClientID
	existing.Message = strings.TrimSpace(input.Message)
	existing.StatusID = input.StatusID
	existing.Description = input.Description

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	s.publish(domain.EventUpdated, existing)
	s.logger.Info().Str("tracking_id", existing.TrackingID).Int("status_id", existing.StatusID).Msg("transaction updated")
	return existing, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, trackingID string) error {
	existing, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, trackingID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publish(domain.EventDeleted, existing)
	s.logger.Info().Str("tracking_id", trackingID).Msg("transaction deleted")
	return nil
}

func (s *TransactionService) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	statuses, err := s.statuses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return statuses, nil
}

func (s *TransactionService) publish(kind domain.EventKind, tx *domain.Transaction) {
	s.events.Enqueue(domain.TransactionEvent{
		Kind:       kind,
		TrackingID: tx.TrackingID,
		ClientID:   tx.ClientID,
		StatusID:   tx.StatusID,
		Message:    tx.Message,
		OccurredAt: s.now(),
	})
}

func validateTransactionFields(clientID int64, message string, statusID int) error {
	var missing []string
	if clientID <= 0 {
		missing = append(missing, "clientId")
	}
	if strings.TrimSpace(message) == "" {
		missing = append(missing, "trackingMessage")
	}
	if statusID <= 0 {
		missing = append(missing, "trackingStatusId")
	}
	if len(missing) > 0 {
		return domain.NewValidationError(strings.Join(missing, ", ") + " required")
	}
	return nil
}
