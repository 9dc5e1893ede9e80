package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadSecret(t *testing.T) {
	assert.Equal(t, []byte("MySecretKey     "), PadSecret("MySecretKey"))
	assert.Len(t, PadSecret("short"), 16)

	long := "a-secret-comfortably-longer-than-sixteen-bytes"
	assert.Equal(t, []byte(long), PadSecret(long))
}

func TestTokenSigner_SignAndVerify(t *testing.T) {
	signer := NewTokenSigner()
	signer.AddHMACKey("default", "MySecretKey")

	claims := jwt.MapClaims{"sub": "alice", ClaimRole: "user"}

	signed, err := signer.Sign(claims, "default")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	// A verifier holding the same shared secret must accept the signature.
	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return PadSecret("MySecretKey"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	got := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", got["sub"])
	assert.Equal(t, "user", got[ClaimRole])
}

func TestTokenSigner_EmptyKeyIDUsesAnyKey(t *testing.T) {
	signer := NewTokenSigner()
	signer.AddHMACKey("default", "MySecretKey")

	signed, err := signer.Sign(jwt.MapClaims{"sub": "alice"}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
}

func TestTokenSigner_UnknownKeyID(t *testing.T) {
	signer := NewTokenSigner()
	signer.AddHMACKey("default", "MySecretKey")

	_, err := signer.Sign(jwt.MapClaims{"sub": "alice"}, "rotated")
	assert.ErrorIs(t, err, ErrInvalidKeyID)
}

func TestTokenSigner_NoKeys(t *testing.T) {
	signer := NewTokenSigner()

	_, err := signer.Sign(jwt.MapClaims{"sub": "alice"}, "")
	assert.ErrorIs(t, err, ErrInvalidKeyID)
}
