package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/auth2api/auth2-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetCredentialsByEmail(ctx context.Context, email model.Email) (model.UserCredentials, error) {
	query := `SELECT id, password FROM users WHERE email = $1 AND deleted_at IS NULL`

	var (
		id   uuid.UUID
		hash string
	)
	err := r.db.QueryRowContext(ctx, query, email.String()).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserCredentials{}, model.ErrNotFound
		}
		return model.UserCredentials{}, fmt.Errorf("failed to get credentials by email: %w", err)
	}

	return model.UserCredentials{
		ID:       id,
		Password: model.PasswordFromHash(hash),
	}, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email model.Email) (model.User, error) {
	query := `SELECT id, email, password, created_at, updated_at, deleted_at
			  FROM users WHERE email = $1 AND deleted_at IS NULL`

	var (
		user model.User
		addr string
		hash string
	)
	err := r.db.QueryRowContext(ctx, query, email.String()).Scan(
		&user.ID, &addr, &hash, &user.CreatedAt, &user.UpdatedAt, &user.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	user.Email = model.StoredEmail(addr)
	user.Password = model.PasswordFromHash(hash)

	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, password model.Password) error {
	query := `UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id, password.Hash())
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}
