package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents a stored account.
type User struct {
	ID        uuid.UUID
	Email     Email
	Password  Password
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// UserCredentials is the minimal projection needed to check a login.
type UserCredentials struct {
	ID       uuid.UUID
	Password Password
}

// UserStore defines the persistence operations the credential use
// cases need. Account CRUD lives with the callers, not here.
type UserStore interface {
	// GetCredentialsByEmail returns ErrNotFound when no active user
	// matches the address.
	GetCredentialsByEmail(ctx context.Context, email Email) (UserCredentials, error)
	GetByEmail(ctx context.Context, email Email) (User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, password Password) error
}

// EmailService delivers outbound notices. Transport and templating are
// adapter concerns; the use cases only need delivery success/failure.
type EmailService interface {
	SendForgottenPassword(ctx context.Context, to Email, token string) error
}
