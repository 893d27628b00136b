package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nanostack/backend/internal/model"
)

// AdminUserRepository defines the persistence interface for back-office accounts.
type AdminUserRepository interface {
	FindByID(ctx context.Context, id string) (*model.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	Create(ctx context.Context, u *model.AdminUser) error
}

// PgAdminUserRepository is the PostgreSQL implementation of AdminUserRepository.
type PgAdminUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgAdminUserRepository creates a PgAdminUserRepository backed by the given pool.
func NewPgAdminUserRepository(pool *pgxpool.Pool) *PgAdminUserRepository {
	return &PgAdminUserRepository{pool: pool}
}

var _ AdminUserRepository = (*PgAdminUserRepository)(nil)

// FindByID returns a user or ErrNotFound.
func (r *PgAdminUserRepository) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByUsername returns a user or ErrNotFound. Usernames compare case-insensitively.
func (r *PgAdminUserRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	return r.findOne(ctx, `WHERE LOWER(username) = LOWER($1)`, username)
}

func (r *PgAdminUserRepository) findOne(ctx context.Context, where string, arg any) (*model.AdminUser, error) {
	var u model.AdminUser
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, is_superuser, created_at FROM admin_users `+where, arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsSuperuser, &u.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// Create inserts a user, replacing the password and flag of an existing username.
func (r *PgAdminUserRepository) Create(ctx context.Context, u *model.AdminUser) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO admin_users (username, password_hash, is_superuser)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (username) DO UPDATE
		   SET password_hash = EXCLUDED.password_hash, is_superuser = EXCLUDED.is_superuser
		 RETURNING id, created_at`,
		u.Username, u.PasswordHash, u.IsSuperuser,
	).Scan(&u.ID, &u.CreatedAt)
}
