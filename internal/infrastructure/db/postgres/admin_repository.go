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

var _ ports.AdminRepository = (*AdminRepository)(nil)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

const adminColumns = `admin_id, username, email, password_hash, role, created_at`

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	const query = `
		INSERT INTO admins (username, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + adminColumns

	row := r.pool.QueryRow(ctx, query, a.Username, a.Email, a.PasswordHash, string(a.Role), a.CreatedAt)
	created, err := scanAdmin(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return created, nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id int64) (*domain.Admin, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE admin_id = $1`, id)
	return scanAdmin(row)
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE username = $1`, username)
	return scanAdmin(row)
}

func (r *AdminRepository) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE username = $1 AND admin_id <> $2)`,
		username, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return taken, nil
}

func (r *AdminRepository) List(ctx context.Context, page ports.PageRequest) ([]*domain.Admin, int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+adminColumns+` FROM admins ORDER BY admin_id ASC LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list admins: %w", err)
	}
	admins, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Admin, error) {
		return scanAdmin(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list admins: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count admins: %w", err)
	}
	return admins, total, nil
}

func (r *AdminRepository) Update(ctx context.Context, id int64, username, email string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE admins SET username = $1, email = $2 WHERE admin_id = $3`,
		username, email, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admins WHERE admin_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var (
		a    domain.Admin
		role string
	)
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &role, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	a.Role = domain.Role(role)
	return &a, nil
}
