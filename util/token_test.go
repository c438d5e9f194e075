package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateSessionToken(5, "doctor", time.Hour)
	require.NoError(t, err)

	uid, role, err := ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), uid)
	assert.Equal(t, "doctor", role)
}

func TestParseSessionToken_Expired(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := GenerateSessionToken(5, "doctor", -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	SetJWTSecret("first")
	token, err := GenerateSessionToken(5, "patient", time.Hour)
	require.NoError(t, err)

	SetJWTSecret("test-secret")
	_, _, err = ParseSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionToken_BadSubject(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "abc",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, _, err = ParseSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateSessionToken_NoSecret(t *testing.T) {
	SetJWTSecret("")
	t.Cleanup(func() { SetJWTSecret("test-secret") })

	_, err := GenerateSessionToken(1, "patient", time.Hour)
	assert.Error(t, err)
}
