package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		playerID int64
		isAdmin  bool
	}{
		{name: "regular player", playerID: 123456789012345678, isAdmin: false},
		{name: "admin player", playerID: 42, isAdmin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := NewJWT("test-secret", 15*time.Minute)

			tokenString, err := manager.GenerateAccessToken(tt.playerID, tt.isAdmin)
			require.NoError(t, err)
			require.NotEmpty(t, tokenString)

			identity, err := manager.ParseAccessToken(tokenString)
			require.NoError(t, err)
			assert.Equal(t, tt.playerID, identity.PlayerID)
			assert.Equal(t, tt.isAdmin, identity.IsAdmin)
		})
	}
}

func TestJWT_ParseAccessToken_Expired(t *testing.T) {
	manager := NewJWT("test-secret", -time.Minute)

	tokenString, err := manager.GenerateAccessToken(42, false)
	require.NoError(t, err)

	_, err = manager.ParseAccessToken(tokenString)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_ParseAccessToken_WrongSecret(t *testing.T) {
	manager := NewJWT("test-secret", 15*time.Minute)
	other := NewJWT("other-secret", 15*time.Minute)

	tokenString, err := manager.GenerateAccessToken(42, false)
	require.NoError(t, err)

	_, err = other.ParseAccessToken(tokenString)
	require.Error(t, err)
	assert.NotErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_ParseAccessToken_Tampered(t *testing.T) {
	manager := NewJWT("test-secret", 15*time.Minute)

	tokenString, err := manager.GenerateAccessToken(42, false)
	require.NoError(t, err)

	// Flip a character in the payload segment.
	parts := strings.Split(tokenString, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)

	_, err = manager.ParseAccessToken(strings.Join(parts, "."))
	require.Error(t, err)
	assert.NotErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_ParseAccessToken_Malformed(t *testing.T) {
	manager := NewJWT("test-secret", 15*time.Minute)

	_, err := manager.ParseAccessToken("not-a-jwt")
	require.Error(t, err)
}

func TestJWT_ParseAccessToken_WrongType(t *testing.T) {
	now := time.Now()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		TokenType: "refresh",
	})
	tokenString, err := raw.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	manager := NewJWT("test-secret", 15*time.Minute)
	_, err = manager.ParseAccessToken(tokenString)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token type mismatch")
}
