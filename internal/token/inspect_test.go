// ABOUTME: Tests for unverified token expiry inspection
// ABOUTME: Covers JWT exp extraction and opaque-token rejection

package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestExpiresAt_ReadsExpClaim(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	accessToken := signedToken(t, jwt.MapClaims{
		"sub": "conversation-client",
		"exp": exp.Unix(),
	})

	got, err := ExpiresAt(accessToken)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp), "want %v, got %v", exp, got)
}

func TestExpiresAt_NoExpClaim(t *testing.T) {
	accessToken := signedToken(t, jwt.MapClaims{"sub": "conversation-client"})

	_, err := ExpiresAt(accessToken)
	assert.ErrorIs(t, err, ErrNoExpiry)
}

func TestExpiresAt_OpaqueToken(t *testing.T) {
	_, err := ExpiresAt("not-a-jwt")
	assert.ErrorIs(t, err, ErrOpaqueToken)
}

func TestExpiresAt_EmptyToken(t *testing.T) {
	_, err := ExpiresAt("")
	assert.ErrorIs(t, err, ErrEmptyToken)
}
