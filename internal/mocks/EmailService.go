package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/auth2api/auth2-server/internal/model"
)

// EmailService is a mock implementation of model.EmailService.
type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendForgottenPassword(ctx context.Context, to model.Email, token string) error {
	args := m.Called(ctx, to, token)
	return args.Error(0)
}
