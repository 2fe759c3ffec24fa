package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/auth2api/auth2-server/internal/logger"
	"github.com/auth2api/auth2-server/internal/model"
	"github.com/auth2api/auth2-server/internal/token"
)

// Auth orchestrates credential issuance and verification against the
// store ports. All state lives behind the ports; Auth itself is
// immutable and safe for concurrent use.
type Auth struct {
	users          model.UserStore
	refreshTokens  model.RefreshTokenStore
	passwordResets model.PasswordResetStore
	email          model.EmailService
	jwt            *token.JWT
	logger         *logger.Logger
}

func NewAuth(
	users model.UserStore,
	refreshTokens model.RefreshTokenStore,
	passwordResets model.PasswordResetStore,
	email model.EmailService,
	jwt *token.JWT,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:          users,
		refreshTokens:  refreshTokens,
		passwordResets: passwordResets,
		email:          email,
		jwt:            jwt,
		logger:         logger,
	}
}

// Login checks the email/password pair and issues an access/refresh
// token pair. An unknown email and a wrong password return distinct
// kinds for internal accounting, but callers must map both to the
// same external response to avoid a user-enumeration side channel.
func (a *Auth) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	addr, err := model.NewEmail(email)
	if err != nil {
		return model.TokenPair{}, err
	}

	creds, err := a.users.GetCredentialsByEmail(ctx, addr)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login attempt for unknown email",
			"email", addr.String())
		return model.TokenPair{}, model.ErrUnauthorized
	}
	if err != nil {
		return model.TokenPair{}, model.NewError(model.KindDatabase, "failed to get credentials by email", err)
	}

	if err := creds.Password.Verify(password); err != nil {
		a.logger.Info("Auth service: login attempt with incorrect password",
			"user_id", creds.ID)
		return model.TokenPair{}, model.ErrIncorrectPassword
	}

	return a.issue(ctx, creds.ID)
}

// Refresh redeems a refresh token for a new pair. The presented token
// is consumed before the replacement is minted, so a crash in between
// fails safe: the caller re-authenticates instead of a stale token
// staying alive.
func (a *Auth) Refresh(ctx context.Context, refreshTokenID string) (model.TokenPair, error) {
	id, err := model.ParseID(refreshTokenID)
	if err != nil {
		return model.TokenPair{}, model.ErrInvalidRefreshToken
	}

	rt, err := a.refreshTokens.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.TokenPair{}, model.ErrInvalidRefreshToken
	}
	if err != nil {
		return model.TokenPair{}, model.NewError(model.KindDatabase, "failed to get refresh token", err)
	}
	if !rt.Valid() {
		return model.TokenPair{}, model.ErrInvalidRefreshToken
	}

	affected, err := a.refreshTokens.DeleteByID(ctx, id)
	if err != nil {
		return model.TokenPair{}, model.NewError(model.KindDatabase, "failed to consume refresh token", err)
	}
	if affected == 0 {
		// A concurrent redemption got here first.
		return model.TokenPair{}, model.ErrInvalidRefreshToken
	}

	return a.issue(ctx, rt.UserID)
}

// ForgottenPassword creates (or overwrites) the user's password-reset
// record and delivers the token by email. The returned reset is for
// logging and tests, never for an untrusted client. A delivery failure
// is reported but leaves the record in place: the user can request
// again.
func (a *Auth) ForgottenPassword(ctx context.Context, email string, expirationHours int) (model.PasswordReset, error) {
	addr, err := model.NewEmail(email)
	if err != nil {
		return model.PasswordReset{}, err
	}

	user, err := a.users.GetByEmail(ctx, addr)
	if errors.Is(err, model.ErrNotFound) {
		return model.PasswordReset{}, err
	}
	if err != nil {
		return model.PasswordReset{}, model.NewError(model.KindDatabase, "failed to get user by email", err)
	}

	reset, err := model.NewPasswordReset(user.ID, expirationHours)
	if err != nil {
		return model.PasswordReset{}, err
	}

	if err := a.passwordResets.Upsert(ctx, reset); err != nil {
		return model.PasswordReset{}, model.NewError(model.KindDatabase, "failed to upsert password reset", err)
	}

	if err := a.email.SendForgottenPassword(ctx, addr, reset.Token); err != nil {
		a.logger.Error("Auth service: failed to send forgotten password email",
			"user_id", user.ID,
			"error", err.Error())
		return model.PasswordReset{}, model.NewError(model.KindSendEmail, "failed to send forgotten password email", err)
	}

	a.logger.Info("Auth service: forgotten password request created",
		"user_id", user.ID,
		"expires_at", reset.ExpiresAt)

	return reset, nil
}

// UpdatePasswordFromToken sets a new password for the user owning the
// reset token. The reset record is deleted unconditionally on success
// so the token cannot be replayed.
func (a *Auth) UpdatePasswordFromToken(ctx context.Context, resetToken, newPassword string) error {
	userID, err := a.passwordResets.GetUserIDByToken(ctx, resetToken)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrForgottenPasswordNotFound
	}
	if err != nil {
		return model.NewError(model.KindDatabase, "failed to resolve password reset token", err)
	}

	password, err := model.NewPassword(newPassword)
	if err != nil {
		return err
	}

	if err := a.users.UpdatePassword(ctx, userID, password); err != nil {
		return model.NewError(model.KindDatabase, "failed to update password", err)
	}

	if err := a.passwordResets.DeleteByUserID(ctx, userID); err != nil {
		return model.NewError(model.KindDatabase, "failed to delete password reset", err)
	}

	a.logger.Info("Auth service: password updated from reset token",
		"user_id", userID)

	return nil
}

// CleanExpiredRefreshTokens deletes all refresh tokens past expiry and
// returns the count removed. It only touches rows already outside
// their validity window, so it is safe to run concurrently with logins
// and rotations.
func (a *Auth) CleanExpiredRefreshTokens(ctx context.Context) (int64, error) {
	deleted, err := a.refreshTokens.DeleteExpired(ctx)
	if err != nil {
		return 0, model.NewError(model.KindDatabase, "failed to delete expired refresh tokens", err)
	}

	a.logger.Info("Auth service: expired refresh tokens removed",
		"deleted", deleted)

	return deleted, nil
}

func (a *Auth) issue(ctx context.Context, userID uuid.UUID) (model.TokenPair, error) {
	access, err := a.jwt.Generate(token.PayloadData{UserID: userID.String()})
	if err != nil {
		a.logger.Error("Auth service: failed to generate access token",
			"user_id", userID,
			"error", err.Error())
		return model.TokenPair{}, err
	}

	refresh, err := model.NewRefreshToken(userID, access, a.jwt.RefreshTokenLifetime())
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := a.refreshTokens.Create(ctx, refresh); err != nil {
		return model.TokenPair{}, model.NewError(model.KindDatabase, "failed to persist refresh token", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
