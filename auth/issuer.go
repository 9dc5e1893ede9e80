package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/complexlab/rentalfleet/domain"
	"github.com/complexlab/rentalfleet/internal/metrics"
	"github.com/complexlab/rentalfleet/sessions"
)

// Custom claim names carried alongside the registered ones. Both are plain
// strings on the wire.
const (
	ClaimUserID = "userid"
	ClaimRole   = "role"
)

// Issuer mints signed session tokens and registers them as live sessions.
type Issuer struct {
	store    sessions.Store
	signer   *TokenSigner
	issuer   string
	audience string
	// sessionTTL is the sliding liveness window the session record starts
	// with; the Authorization Gate resets it on every authorized call.
	sessionTTL time.Duration
	// tokenLifetime bounds the exp claim. The store record, not exp, is
	// the liveness authority; exp is a backstop for tokens that leak past
	// the fleet.
	tokenLifetime time.Duration
}

// NewIssuer creates an Issuer.
func NewIssuer(
	store sessions.Store,
	signer *TokenSigner,
	issuer, audience string,
	sessionTTL, tokenLifetime time.Duration,
) *Issuer {
	return &Issuer{
		store:         store,
		signer:        signer,
		issuer:        issuer,
		audience:      audience,
		sessionTTL:    sessionTTL,
		tokenLifetime: tokenLifetime,
	}
}

// Issue mints a signed session token for an already-verified identity and
// registers it in the session store with value = user id and a full TTL.
//
// The jti claim is a fresh random UUID per call, so two tokens for the same
// identity are never equal even when issued in the same instant.
func (i *Issuer) Issue(ctx context.Context, user *domain.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"jti":       uuid.NewString(),
		"sub":       user.Username,
		ClaimUserID: strconv.Itoa(user.ID),
		ClaimRole:   user.Role,
		"iss":       i.issuer,
		"aud":       i.audience,
		"iat":       jwt.NewNumericDate(now).Unix(),
		"exp":       jwt.NewNumericDate(now.Add(i.tokenLifetime)).Unix(),
	}

	signedToken, err := i.signer.Sign(claims, "")
	if err != nil {
		return "", fmt.Errorf("cannot sign session token: %w", err)
	}

	// The record's key is the exact serialized token; downstream services
	// check liveness by presence alone.
	if err := i.store.Set(ctx, signedToken, strconv.Itoa(user.ID), i.sessionTTL); err != nil {
		return "", fmt.Errorf("%w: registering session: %v", domain.ErrStoreUnavailable, err)
	}

	log.Ctx(ctx).Debug().
		Str("sub", user.Username).
		Int("user_id", user.ID).
		Msg("session token issued")
	metrics.TokensIssuedTotal.Inc()

	return signedToken, nil
}
