package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/complexlab/rentalfleet/domain"
	"github.com/complexlab/rentalfleet/internal/metrics"
	"github.com/complexlab/rentalfleet/sessions"
)

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithIdentitySlide makes the slide rewrite the value already stored for
// the session instead of the caller's marker, so the user id written at
// issue survives every authorized call. The default (marker slide) matches
// the deployed fleet, which overwrites the id with endpoint markers; this
// option is the corrected variant for consumers that want to read the id
// back out of the store.
func WithIdentitySlide() GateOption {
	return func(g *Gate) {
		g.identitySlide = true
	}
}

// Gate is the authorization check every protected operation passes through.
// One shared implementation serves all downstream services, so the check is
// never re-derived per service.
type Gate struct {
	store         sessions.Store
	ttl           time.Duration
	identitySlide bool
}

// NewGate creates a Gate over the shared session store. ttl is the sliding
// window reset on every authorized call.
func NewGate(store sessions.Store, ttl time.Duration, opts ...GateOption) *Gate {
	g := &Gate{
		store: store,
		ttl:   ttl,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckSession reports whether a live session record exists for token. It
// is a pure presence check: no signature verification happens here, because
// revocation and expiry are delegated entirely to the store's TTL and the
// store is the single source of truth for "is this session alive".
func (g *Gate) CheckSession(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	_, ok, err := g.store.Get(ctx, token)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return ok, nil
}

// CheckAdminRole decodes the token's claims without verifying the signature
// and reports whether the role claim contains "admin".
//
// Precondition: the token has already passed CheckSession in the same
// request. The store presence check is the trust anchor; this decode only
// reads an already-trusted payload. Call Authorize instead of sequencing
// the two checks by hand.
func (g *Gate) CheckAdminRole(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Malformed tokens are simply not admin; they will already have
		// failed the presence check anyway.
		return false
	}
	role, _ := claims[ClaimRole].(string)
	return strings.Contains(role, domain.RoleAdmin)
}

// Authorize is the combined gate: presence check, role check when
// requiredRole is RoleAdmin, then a slide that rewrites the session record
// with marker and a fresh TTL. The ordering dependency between the two
// checks is enforced here rather than left to caller convention.
//
// Failures map onto the uniform taxonomy: ErrSessionNotFound for any
// missing, expired or malformed token, ErrForbidden for a live session
// without the admin role, ErrStoreUnavailable when the store cannot be
// reached (always a denial, never authenticated-by-default).
func (g *Gate) Authorize(ctx context.Context, token, requiredRole, marker string) error {
	if token == "" {
		metrics.AuthorizationDeniedTotal.Inc()
		return domain.ErrSessionNotFound
	}

	value, ok, err := g.store.Get(ctx, token)
	if err != nil {
		metrics.AuthorizationDeniedTotal.Inc()
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !ok {
		metrics.AuthorizationDeniedTotal.Inc()
		return domain.ErrSessionNotFound
	}

	if requiredRole == domain.RoleAdmin && !g.CheckAdminRole(token) {
		metrics.AuthorizationDeniedTotal.Inc()
		return domain.ErrForbidden
	}

	if g.identitySlide {
		marker = value
	}
	if err := g.store.Set(ctx, token, marker, g.ttl); err != nil {
		metrics.AuthorizationDeniedTotal.Inc()
		return fmt.Errorf("%w: sliding session: %v", domain.ErrStoreUnavailable, err)
	}
	metrics.SessionSlidesTotal.Inc()

	return nil
}
