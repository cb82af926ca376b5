package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

type HistoryService struct {
	repo   ports.HistoryRepository
	logger zerolog.Logger
}

func NewHistoryService(repo ports.HistoryRepository, logger zerolog.Logger) *HistoryService {
	return &HistoryService{repo: repo, logger: logger}
}

// ListHistory narrows rows and totals with the same client-name filter.
func (s *HistoryService) ListHistory(ctx context.Context, filter ports.HistoryFilter) (ports.Page[*domain.HistoryEntry], error) {
	filter.ClientName = strings.TrimSpace(filter.ClientName)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return ports.Page[*domain.HistoryEntry]{}, fmt.Errorf("list history: %w", err)
	}
	return ports.NewPage(items, total, filter.Page), nil
}

// GetHistory returns every entry of one transaction, oldest first.
func (s *HistoryService) GetHistory(ctx context.Context, trackingID string) ([]*domain.HistoryEntry, error) {
	entries, err := s.repo.ListByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	if len(entries) == 0 {
		return nil, domain.ErrHistoryNotFound
	}
	return entries, nil
}

// DeleteHistory removes all entries recorded for trackingID.
func (s *HistoryService) DeleteHistory(ctx context.Context, trackingID string) error {
	n, err := s.repo.CountByTrackingID(ctx, trackingID)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	if n == 0 {
		return domain.ErrHistoryNotFound
	}

	deleted, err := s.repo.DeleteByTrackingID(ctx, trackingID)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	s.logger.Info().Str("tracking_id", trackingID).Int64("entries", deleted).Msg("transaction history deleted")
	return nil
}
