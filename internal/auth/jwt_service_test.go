package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	token, err := svc.GenerateAccessToken(42, "Alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "Alice", claims.Name)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestJWTService_ZeroExpiryIsRejected(t *testing.T) {
	svc := NewJWTService("test-secret", 0)

	token, err := svc.GenerateAccessToken(1, "Bob")
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_WrongSecretIsRejected(t *testing.T) {
	issuer := NewJWTService("secret-a", 15*time.Minute)
	verifier := NewJWTService("secret-b", 15*time.Minute)

	token, err := issuer.GenerateAccessToken(1, "Bob")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_GarbageTokenIsRejected(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestJWTService_RefreshTokenCarriesID(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	tokenID, token, err := svc.GenerateRefreshToken(7, "Carol")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	extracted, err := svc.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_AccessTokenHasNoID(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	token, err := svc.GenerateAccessToken(7, "Carol")
	assert.NoError(t, err)

	_, err = svc.ExtractTokenID(token)
	assert.Error(t, err)
}
