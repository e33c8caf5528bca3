package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/errs"
)

func newTestTokenService() TokenService {
	return NewTokenService("test-signing-key", "taskboard", "taskboard-api", 30)
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := newTestTokenService()
	userID := uuid.New()

	signed, err := tokens.Generate(userID, "manager@taskboard.com", "Manager")
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)

	assert.Equal(t, "manager@taskboard.com", claims.Email)
	assert.Equal(t, "Manager", claims.Role)

	gotID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tokens := newTestTokenService()
	other := NewTokenService("a-different-key", "taskboard", "taskboard-api", 30)

	signed, err := other.Generate(uuid.New(), "dev@taskboard.com", "Developer")
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokens := NewTokenService("test-signing-key", "taskboard", "taskboard-api", -1)

	signed, err := tokens.Generate(uuid.New(), "dev@taskboard.com", "Developer")
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrExpiredToken)
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	tokens := newTestTokenService()
	other := NewTokenService("test-signing-key", "taskboard", "some-other-api", 30)

	signed, err := other.Generate(uuid.New(), "dev@taskboard.com", "Developer")
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens := newTestTokenService()

	_, err := tokens.Verify("not-a-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}
