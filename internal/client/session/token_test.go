package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

// TestTokenExpiry checks expiry extraction from a well-formed token
func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	raw := signedToken(t, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})

	got, err := TokenExpiry(raw)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))
}

// TestTokenExpiry_NoClaim checks the error for a token without exp
func TestTokenExpiry_NoClaim(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "1"})

	_, err := TokenExpiry(raw)
	assert.Error(t, err)
}

// TestTokenExpiry_Malformed checks the error for an opaque token
func TestTokenExpiry_Malformed(t *testing.T) {
	_, err := TokenExpiry("not-a-jwt")
	assert.Error(t, err)
}
