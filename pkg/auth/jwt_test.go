package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateToken(userID, "kay@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "kay@example.com", claims.Email)
	assert.Equal(t, "helplink", claims.Issuer)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).GenerateToken(uuid.New(), "kay@example.com")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)
	token, err := manager.GenerateToken(uuid.New(), "kay@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}
