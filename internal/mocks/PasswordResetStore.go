package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/auth2api/auth2-server/internal/model"
)

// PasswordResetStore is a mock implementation of model.PasswordResetStore.
type PasswordResetStore struct {
	mock.Mock
}

func (m *PasswordResetStore) Upsert(ctx context.Context, reset model.PasswordReset) error {
	args := m.Called(ctx, reset)
	return args.Error(0)
}

func (m *PasswordResetStore) GetUserIDByToken(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *PasswordResetStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
