package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a persisted, single-use credential that can mint a
// new access/refresh pair. The id doubles as the presented token and
// must be unguessable.
type RefreshToken struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccessToken string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRefreshToken builds a refresh token bound to the user and the
// access token it was issued alongside. lifetimeDays must be positive.
func NewRefreshToken(userID uuid.UUID, accessToken AccessToken, lifetimeDays int) (RefreshToken, error) {
	if lifetimeDays <= 0 {
		return RefreshToken{}, ErrInvalidExpirationDuration
	}

	return RefreshToken{
		ID:          NewID(),
		UserID:      userID,
		AccessToken: accessToken.Token,
		ExpiresAt:   time.Now().Add(time.Duration(lifetimeDays) * 24 * time.Hour),
	}, nil
}

// Valid reports whether the token is still within its validity window.
// There is no signature to check: validity is purely an expiry
// property of the stored row.
func (t RefreshToken) Valid() bool {
	return !time.Now().After(t.ExpiresAt)
}

// RefreshTokenStore persists refresh tokens.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByID(ctx context.Context, id uuid.UUID) (RefreshToken, error)
	// DeleteByID removes the row and reports how many rows were
	// affected. Redemption relies on this being a single conditional
	// delete: of two concurrent calls for the same id exactly one
	// observes 1.
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)
	// DeleteExpired removes all rows past expiry and returns the count.
	DeleteExpired(ctx context.Context) (int64, error)
}
