package service

import (
	"regexp"
	"strings"

	"cinelog/internal/errors"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRegex = regexp.MustCompile(`\d`)
)

// UserValidator checks registration input before anything is persisted.
type UserValidator struct{}

// NewUserValidator creates a new user validator.
func NewUserValidator() *UserValidator {
	return &UserValidator{}
}

// ValidateRegistration validates name, email syntax and the password rule
// (non-empty, at least one digit). All failing fields are reported at once.
func (v *UserValidator) ValidateRegistration(name, email, password string) error {
	fields := map[string]string{}

	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "email is required"
	} else if !emailRegex.MatchString(email) {
		fields["email"] = "email must be a valid address"
	}
	if password == "" {
		fields["password"] = "password is required"
	} else if !digitRegex.MatchString(password) {
		fields["password"] = "password must contain at least one digit"
	}

	if len(fields) > 0 {
		return errors.NewValidationError(fields)
	}
	return nil
}
