package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

// DefaultTokenTTL is the lifetime of an issued login token.
const DefaultTokenTTL = time.Hour

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.AdminRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	// dummyHash is compared against when the username is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

func NewAuthService(repo ports.AdminRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return &AuthService{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		dummyHash: dummy,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Admin, error) {
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.NewValidationError("username and password are required")
	}
	if err := s.authorizeRegistration(ctx, in); err != nil {
		return nil, err
	}

	// Advisory only: the unique index on username decides concurrent races.
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Admin{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("admin_id", created.ID).Str("username", created.Username).Str("role", string(created.Role)).Msg("admin registered")
	return created, nil
}

// authorizeRegistration lets anyone create a demo account. Admin and
// super_admin accounts need a super_admin caller, except for the first
// account, which bootstraps an empty store.
func (s *AuthService) authorizeRegistration(ctx context.Context, in ports.RegisterInput) error {
	if in.Role == domain.RoleDemo || in.CallerRole == domain.RoleSuperAdmin {
		return nil
	}
	_, total, err := s.repo.List(ctx, ports.NewPageRequest(1, 1))
	if err != nil {
		return fmt.Errorf("register: count admins: %w", err)
	}
	if total > 0 {
		return domain.ErrForbidden
	}
	return nil
}

// Login returns domain.ErrInvalidCredentials for both an unknown username
// and a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(admin)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	return token, admin, nil
}

func (s *AuthService) generateToken(admin *domain.Admin) (string, error) {
	now := time.Now()
	flags := admin.Role.Flags()
	claims := jwt.MapClaims{
		"admin_id":     admin.ID,
		"username":     admin.Username,
		"role":         string(admin.Role),
		"isAdmin":      flags.IsAdmin,
		"isSuperAdmin": flags.IsSuperAdmin,
		"isDemo":       flags.IsDemo,
		"iat":          now.Unix(),
		"exp":          now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
