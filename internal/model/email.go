package model

import (
	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

// Email is a validated email address.
type Email struct {
	value string
}

// NewEmail validates value and wraps it. Malformed input returns an
// invalid_email error.
func NewEmail(value string) (Email, error) {
	if err := emailValidator.Var(value, "required,email"); err != nil {
		return Email{}, NewError(KindInvalidEmail, "invalid email", err)
	}
	return Email{value: value}, nil
}

// StoredEmail wraps an address loaded from storage without
// re-validation. Addresses are validated before they are persisted.
func StoredEmail(value string) Email {
	return Email{value: value}
}

func (e Email) String() string { return e.value }

func (e Email) IsZero() bool { return e.value == "" }
