package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/auth2api/auth2-server/internal/model"
)

var _ model.PasswordResetStore = (*PasswordResetRepository)(nil)

type PasswordResetRepository struct {
	db *Connection
}

func NewPasswordResetRepository(db *Connection) *PasswordResetRepository {
	return &PasswordResetRepository{
		db: db,
	}
}

// Upsert keeps at most one reset per user: a new request replaces the
// previous token, invalidating it.
func (r *PasswordResetRepository) Upsert(ctx context.Context, reset model.PasswordReset) error {
	query := `INSERT INTO password_resets (user_id, token, expired_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token, expired_at = EXCLUDED.expired_at`

	_, err := r.db.ExecContext(ctx, query, reset.UserID, reset.Token, reset.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to upsert password reset: %w", err)
	}

	return nil
}

func (r *PasswordResetRepository) GetUserIDByToken(ctx context.Context, token string) (uuid.UUID, error) {
	query := `SELECT pr.user_id
			  FROM password_resets pr
			  JOIN users u ON u.id = pr.user_id AND u.deleted_at IS NULL
			  WHERE pr.token = $1 AND pr.expired_at >= NOW()`

	var userID uuid.UUID
	err := r.db.QueryRowContext(ctx, query, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, model.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get password reset by token: %w", err)
	}

	return userID, nil
}

func (r *PasswordResetRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM password_resets WHERE user_id = $1`

	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete password reset: %w", err)
	}

	return nil
}
