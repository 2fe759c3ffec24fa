package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/auth2api/auth2-server/internal/model"
)

// UserStore is a mock implementation of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetCredentialsByEmail(ctx context.Context, email model.Email) (model.UserCredentials, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.UserCredentials), args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email model.Email) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) UpdatePassword(ctx context.Context, userID uuid.UUID, password model.Password) error {
	args := m.Called(ctx, userID, password)
	return args.Error(0)
}
