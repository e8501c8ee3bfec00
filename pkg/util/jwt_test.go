package util

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtTestSecret = "foodgram-jwt-test-secret"

func issuePair(t *testing.T, userID uint, role string) *TokenPair {
	t.Helper()
	tokens, err := GenerateTokenPair(userID, "cook@example.com", role, jwtTestSecret, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	require.NotNil(t, tokens)
	return tokens
}

func TestGenerateTokenPair_TokenTypes(t *testing.T) {
	tokens := issuePair(t, 7, "user")

	access, err := ValidateToken(tokens.AccessToken, jwtTestSecret)
	require.NoError(t, err)
	refresh, err := ValidateToken(tokens.RefreshToken, jwtTestSecret)
	require.NoError(t, err)

	assert.Equal(t, TokenTypeAccess, access.TokenType)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)

	// both tokens describe the same user
	for _, claims := range []*Claims{access, refresh} {
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "cook@example.com", claims.Email)
		assert.Equal(t, "user", claims.Role)
	}

	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
}

func TestGenerateTokenPair_UniqueTokenIDs(t *testing.T) {
	first := issuePair(t, 1, "user")
	second := issuePair(t, 1, "user")

	ids := make(map[string]bool)
	for _, raw := range []string{first.AccessToken, first.RefreshToken, second.AccessToken, second.RefreshToken} {
		claims, err := ValidateToken(raw, jwtTestSecret)
		require.NoError(t, err)
		require.NotEmpty(t, claims.ID)
		assert.False(t, ids[claims.ID], "jti %s issued twice", claims.ID)
		ids[claims.ID] = true
	}

	// logout blacklists the raw token, so two logins must never share one
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
}

func TestGenerateTokenPair_AdminRole(t *testing.T) {
	tokens := issuePair(t, 2, "admin")

	claims, err := ValidateToken(tokens.AccessToken, jwtTestSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestValidateToken_Rejects(t *testing.T) {
	tokens := issuePair(t, 3, "user")

	noneSigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:    3,
		TokenType: TokenTypeAccess,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	parts := strings.Split(tokens.AccessToken, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "Wrong secret", token: tokens.AccessToken, secret: "another-secret"},
		{name: "Malformed token", token: "not.a.token", secret: jwtTestSecret},
		{name: "Empty token", token: "", secret: jwtTestSecret},
		{name: "Unsigned token", token: noneSigned, secret: jwtTestSecret},
		{name: "Tampered payload", token: tampered, secret: jwtTestSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestValidateToken_Expired(t *testing.T) {
	raw, err := generateToken(4, "cook@example.com", "user", TokenTypeAccess, jwtTestSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(raw, jwtTestSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}
