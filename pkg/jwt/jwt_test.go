package jwt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return key
}

func TestNewTokenCarriesClaims(t *testing.T) {
	key := newKey(t)

	token, err := NewToken(key, time.Minute,
		WithClaim("user_role", "admin"),
		WithClaim("user_email", "i.petrov@corp.example"),
	)
	require.NoError(t, err)

	claims, err := ValidateToken(token, &key.PublicKey)
	require.NoError(t, err)
	require.Equal(t, "admin", claims["user_role"])
	require.Equal(t, "i.petrov@corp.example", claims["user_email"])
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	key := newKey(t)
	other := newKey(t)

	token, err := NewToken(key, time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, &other.PublicKey)
	require.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	key := newKey(t)

	token, err := NewToken(key, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, &key.PublicKey)
	require.Error(t, err)
}
