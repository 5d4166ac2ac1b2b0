package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cinelog/internal/errors"
)

func TestUserValidator_ValidateRegistration(t *testing.T) {
	tests := []struct {
		name       string
		userName   string
		email      string
		password   string
		wantFields []string
	}{
		{
			name:     "valid input",
			userName: "Alice",
			email:    "alice@example.com",
			password: "pass1",
		},
		{
			name:       "empty name",
			userName:   "   ",
			email:      "alice@example.com",
			password:   "pass1",
			wantFields: []string{"name"},
		},
		{
			name:       "malformed email",
			userName:   "Alice",
			email:      "not-an-email",
			password:   "pass1",
			wantFields: []string{"email"},
		},
		{
			name:       "password without digit",
			userName:   "Alice",
			email:      "alice@example.com",
			password:   "password",
			wantFields: []string{"password"},
		},
		{
			name:       "empty password",
			userName:   "Alice",
			email:      "alice@example.com",
			password:   "",
			wantFields: []string{"password"},
		},
		{
			name:       "everything wrong at once",
			userName:   "",
			email:      "",
			password:   "",
			wantFields: []string{"name", "email", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewUserValidator()
			err := v.ValidateRegistration(tt.userName, tt.email, tt.password)

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var vErr *errors.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Len(t, vErr.Fields, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, vErr.Fields, field)
			}
		})
	}
}
