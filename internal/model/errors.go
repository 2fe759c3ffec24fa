package model

import (
	"errors"
	"fmt"
)

// Kind classifies domain errors. Callers at the transport boundary map
// kinds to externally visible responses; the kinds themselves never
// carry secrets.
type Kind string

const (
	KindUnauthorized              Kind = "unauthorized"
	KindIncorrectPassword         Kind = "incorrect_password"
	KindInvalidRefreshToken       Kind = "invalid_refresh_token"
	KindForgottenPasswordNotFound Kind = "forgotten_password_not_found"
	KindInvalidArguments          Kind = "invalid_arguments"
	KindInvalidEmail              Kind = "invalid_email"
	KindInvalidPassword           Kind = "invalid_password"
	KindTokenGeneration           Kind = "token_generation"
	KindEncodingKey               Kind = "encoding_key"
	KindDecodingKey               Kind = "decoding_key"
	KindExpiredToken              Kind = "expired_token"
	KindDatabase                  Kind = "database"
	KindSendEmail                 Kind = "send_email"
	KindNotFound                  Kind = "not_found"
)

// Error is the single domain error type. Two Errors match with
// errors.Is when they share a Kind, so the sentinels below can be used
// as comparison targets for wrapped instances.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func NewError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ErrorKind extracts the Kind from err, or "" if err carries none.
func ErrorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

var (
	// ErrNotFound is returned by stores when no row matches. Use cases
	// translate it into the credential-shaped errors below so callers
	// never see raw storage state.
	ErrNotFound = &Error{Kind: KindNotFound, Message: "not found"}

	ErrUnauthorized              = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrIncorrectPassword         = &Error{Kind: KindIncorrectPassword, Message: "incorrect password"}
	ErrInvalidRefreshToken       = &Error{Kind: KindInvalidRefreshToken, Message: "invalid refresh token"}
	ErrForgottenPasswordNotFound = &Error{Kind: KindForgottenPasswordNotFound, Message: "forgotten password request not found"}
	ErrExpiredToken              = &Error{Kind: KindExpiredToken, Message: "expired token"}
	ErrInvalidExpirationDuration = &Error{Kind: KindInvalidArguments, Message: "invalid expiration duration"}
)
