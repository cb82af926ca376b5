package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

type ClientService struct {
	repo   ports.ClientRepository
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger}
}

func (s *ClientService) ListClients(ctx context.Context, page ports.PageRequest) (ports.Page[*domain.Client], error) {
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return ports.Page[*domain.Client]{}, fmt.Errorf("list clients: %w", err)
	}
	return ports.NewPage(items, total, page), nil
}

func (s *ClientService) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateClient relies on the store's (name, email) constraint to report
// domain.ErrClientExists.
func (s *ClientService) CreateClient(ctx context.Context, in ports.ClientInput) (*domain.Client, error) {
	if err := validateClient(in); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Client{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		IsActive:  in.IsActive,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("client_id", created.ID).Msg("client created")
	return created, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id int64, in ports.ClientInput) error {
	if err := validateClient(in); err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.Email = strings.TrimSpace(in.Email)
	existing.IsActive = in.IsActive
	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}
	s.logger.Info().Int64("client_id", id).Msg("client updated")
	return nil
}

// DeleteClient issues no delete when the client does not exist.
func (s *ClientService) DeleteClient(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("client_id", id).Msg("client deleted")
	return nil
}

func validateClient(in ports.ClientInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return domain.NewValidationError("clientName and email are required")
	}
	return nil
}
