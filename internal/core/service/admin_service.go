package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

type AdminService struct {
	repo   ports.AdminRepository
	logger zerolog.Logger
}

func NewAdminService(repo ports.AdminRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, logger: logger}
}

func (s *AdminService) ListAdmins(ctx context.Context, page ports.PageRequest) (ports.Page[*domain.Admin], error) {
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return ports.Page[*domain.Admin]{}, fmt.Errorf("list admins: %w", err)
	}
	return ports.NewPage(items, total, page), nil
}

func (s *AdminService) GetAdmin(ctx context.Context, id int64) (*domain.Admin, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateAdmin changes username and email only.
func (s *AdminService) UpdateAdmin(ctx context.Context, in ports.UpdateAdminInput) error {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return domain.NewValidationError("username is required")
	}

	if _, err := s.repo.FindByID(ctx, in.ID); err != nil {
		return err
	}

	taken, err := s.repo.UsernameTaken(ctx, username, in.ID)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	if taken {
		return domain.ErrUsernameTaken
	}

	if err := s.repo.Update(ctx, in.ID, username, strings.TrimSpace(in.Email)); err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	s.logger.Info().Int64("admin_id", in.ID).Msg("admin updated")
	return nil
}

func (s *AdminService) DeleteAdmin(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	s.logger.Info().Int64("admin_id", id).Msg("admin deleted")
	return nil
}
