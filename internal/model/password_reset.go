package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PasswordReset is a one-time password-recovery capability. At most
// one active reset exists per user: a new request overwrites any
// outstanding token.
type PasswordReset struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// NewPasswordReset generates an unguessable reset token valid for
// expirationHours. A non-positive duration is an error, never a
// silently pre-expired token.
func NewPasswordReset(userID uuid.UUID, expirationHours int) (PasswordReset, error) {
	if expirationHours <= 0 {
		return PasswordReset{}, ErrInvalidExpirationDuration
	}

	return PasswordReset{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Duration(expirationHours) * time.Hour),
	}, nil
}

// Expired reports whether the reset is past its validity window.
func (r PasswordReset) Expired() bool {
	return time.Now().After(r.ExpiresAt)
}

// PasswordResetStore persists password-reset requests.
type PasswordResetStore interface {
	// Upsert inserts or overwrites the reset keyed by user id.
	Upsert(ctx context.Context, reset PasswordReset) error
	// GetUserIDByToken resolves the owning user of a non-expired
	// token. Expired rows are filtered here: callers see ErrNotFound,
	// not a distinct expired state.
	GetUserIDByToken(ctx context.Context, token string) (uuid.UUID, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
