package util

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret"
	testAudience = "authenticated"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("USER-001", "alice@example.com", testSecret, testAudience, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret, testAudience)
	require.NoError(t, err)
	assert.Equal(t, "USER-001", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("USER-001", "alice@example.com", testSecret, testAudience, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret, testAudience)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("USER-001", "alice@example.com", testSecret, testAudience, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret", testAudience)
	assert.Error(t, err)
}

func TestParseTokenWrongAudience(t *testing.T) {
	token, err := GenerateToken("USER-001", "alice@example.com", testSecret, "other-service", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret, testAudience)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testSecret, testAudience)
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/tasks", nil)
	assert.Empty(t, ExtractToken(r))

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", ExtractToken(r))

	r.Header.Set("Authorization", "abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", ExtractToken(r))
}
