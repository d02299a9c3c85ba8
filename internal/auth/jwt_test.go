package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatibku/backend/internal/config"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 7 * 24 * time.Hour,
		},
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	token, jti, err := svc.GenerateAccessToken(userID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Sub)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, jti, claims.JTI)
	assert.Equal(t, "tatibku", claims.Issuer)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	svc := testJWTService()
	token, _, err := svc.GenerateAccessToken(uuid.New(), "guru")
	require.NoError(t, err)

	other := NewJWTService(&config.Config{
		JWT: config.JWTConfig{AccessSecret: "different-secret", AccessExpiry: time.Minute},
	})
	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc := testJWTService()
	_, err := svc.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestGenerateRefreshToken(t *testing.T) {
	svc := testJWTService()

	token, hash, expiresAt := svc.GenerateRefreshToken()
	assert.NotEmpty(t, token)
	assert.Equal(t, HashToken(token), hash)
	assert.Len(t, hash, 64)
	assert.True(t, expiresAt.After(time.Now().Add(6*24*time.Hour)))

	// Two tokens never collide
	token2, hash2, _ := svc.GenerateRefreshToken()
	assert.NotEqual(t, token, token2)
	assert.NotEqual(t, hash, hash2)
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
}
