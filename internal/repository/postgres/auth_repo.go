// internal/repository/postgres/auth_repo.go
package postgres

import (
	"context"
	"errors"
	"strings"

	"aquadesk-service/internal/domain/auth"
	xerrors "aquadesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthRepository struct {
	db *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{db: db}
}

// Create creates a new staff user
func (r *AuthRepository) Create(ctx context.Context, u *auth.User) error {
	query := `
		INSERT INTO users (email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, u.Email, u.PasswordHash, u.FullName, u.Role, u.IsActive).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return xerrors.Conflictf("user with email %s already exists", u.Email)
		}
		return xerrors.Persistence(err, "failed to create user")
	}

	return nil
}

// FindByEmail retrieves an active user by email
func (r *AuthRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, is_active,
		       created_at, updated_at, deleted_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`

	var u auth.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to find user")
	}

	return &u, nil
}

// FindByID retrieves an active user by ID
func (r *AuthRepository) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, is_active,
		       created_at, updated_at, deleted_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`

	var u auth.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, xerrors.Persistence(err, "failed to find user")
	}

	return &u, nil
}

// ExistsByEmail checks whether any user has the email
func (r *AuthRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, xerrors.Persistence(err, "failed to check user email")
	}
	return exists, nil
}
