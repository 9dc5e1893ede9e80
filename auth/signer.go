package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidKeyID = errors.New("invalid key id")

// hmacKeyLen is the minimum HMAC key length in bytes. Secrets shorter than
// this are right-padded with spaces, matching the key derivation every
// deployed verifier already uses; changing it would strand live tokens.
const hmacKeyLen = 16

// PadSecret derives the HMAC signing key from a shared secret.
func PadSecret(secret string) []byte {
	if len(secret) >= hmacKeyLen {
		return []byte(secret)
	}
	return []byte(secret + strings.Repeat(" ", hmacKeyLen-len(secret)))
}

type TokenSignerFunc func(claims jwt.Claims) (string, error)

// TokenSigner signs session token claims. Keys are registered under ids so
// a rotation can stage a second key; the fleet currently runs a single
// shared symmetric key.
type TokenSigner struct {
	keys map[string]TokenSignerFunc
}

// NewTokenSigner creates a new TokenSigner instance.
func NewTokenSigner() *TokenSigner {
	return &TokenSigner{
		keys: make(map[string]TokenSignerFunc),
	}
}

// AddHMACKey registers an HS256 signer for the shared secret under keyID.
func (s *TokenSigner) AddHMACKey(keyID, secret string) {
	key := PadSecret(secret)
	s.keys[keyID] = func(claims jwt.Claims) (string, error) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

		tokenString, err := token.SignedString(key)
		if err != nil {
			return "", fmt.Errorf("failed to sign token: %w", err)
		}

		return tokenString, nil
	}
}

// Sign signs claims with the key registered under keyID. An empty keyID
// selects any registered key, which is the default single-key setup.
func (s *TokenSigner) Sign(claims jwt.Claims, keyID string) (string, error) {
	if keyID == "" {
		for _, val := range s.keys {
			if val != nil {
				return val(claims)
			}
		}

		return "", ErrInvalidKeyID
	}

	if signer, ok := s.keys[keyID]; ok {
		return signer(claims)
	}

	return "", ErrInvalidKeyID
}
