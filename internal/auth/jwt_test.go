package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifyValidToken(t *testing.T) {
	v := NewVerifier(testSecret)
	token := sign(t, testSecret, jwt.MapClaims{
		"sub":  "u1",
		"name": "Nadia K.",
		"role": "officer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u1", Name: "Nadia K.", Role: "officer"}, id)
}

func TestVerifyUserIDFallback(t *testing.T) {
	v := NewVerifier(testSecret)
	token := sign(t, testSecret, jwt.MapClaims{
		"user_id": "legacy-42",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "legacy-42", id.UserID)
	assert.Empty(t, id.Name)
	assert.Empty(t, id.Role)
}

func TestVerifySubjectWinsOverUserID(t *testing.T) {
	v := NewVerifier(testSecret)
	token := sign(t, testSecret, jwt.MapClaims{
		"sub":     "u1",
		"user_id": "legacy-42",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
}

func TestVerifyEmptyToken(t *testing.T) {
	v := NewVerifier(testSecret)
	_, err := v.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	v := NewVerifier(testSecret)
	token := sign(t, "someone-else", jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	v := NewVerifier(testSecret)
	token := sign(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMissingSubject(t *testing.T) {
	v := NewVerifier(testSecret)
	token := sign(t, testSecret, jwt.MapClaims{
		"name": "No Subject",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, ErrMissingSubject)
}
