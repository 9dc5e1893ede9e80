package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complexlab/rentalfleet/domain"
	"github.com/complexlab/rentalfleet/sessions"
)

const (
	testSecret   = "MySecretKey"
	testIssuer   = "https://authenticationservice:8084"
	testAudience = "https://carrentalservice:8083 , https://paymentservice:8081, https://complexlabgateway:8082"
)

func newTestIssuer(store sessions.Store) *Issuer {
	signer := NewTokenSigner()
	signer.AddHMACKey("default", testSecret)
	return NewIssuer(store, signer, testIssuer, testAudience, 30*time.Minute, time.Hour)
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return PadSecret(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	return claims
}

func TestIssuer_ClaimsContent(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	issuer := newTestIssuer(store)

	user := &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser}

	token, err := issuer.Issue(context.Background(), user)
	require.NoError(t, err)

	claims := parseClaims(t, token)
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, "7", claims[ClaimUserID], "user id travels as a decimal string")
	assert.Equal(t, domain.RoleUser, claims[ClaimRole])
	assert.Equal(t, testIssuer, claims["iss"])
	assert.Equal(t, testAudience, claims["aud"])
	assert.NotEmpty(t, claims["jti"])

	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	assert.Equal(t, int64(time.Hour/time.Second), exp-iat)
}

func TestIssuer_TokensAreUniquePerIssue(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	issuer := newTestIssuer(store)

	user := &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser}

	// Two logins in the same instant must still produce distinct tokens,
	// since each token is its own session record key.
	first, err := issuer.Issue(context.Background(), user)
	require.NoError(t, err)
	second, err := issuer.Issue(context.Background(), user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestIssuer_RegistersSession(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	issuer := newTestIssuer(store)

	user := &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser}

	token, err := issuer.Issue(context.Background(), user)
	require.NoError(t, err)

	val, ok, err := store.Get(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, ok, "issuing must register a live session under the exact token")
	assert.Equal(t, "7", val, "the fresh record's value is the user id")
}

func TestIssuer_StoreDownFailsIssue(t *testing.T) {
	issuer := newTestIssuer(&failingStore{})

	_, err := issuer.Issue(context.Background(), &domain.User{ID: 7, Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
