package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complexlab/rentalfleet/domain"
	"github.com/complexlab/rentalfleet/sessions"
)

// failingStore simulates an unreachable session backend.
type failingStore struct{}

func (failingStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

// issueFor mints a real signed token and registers it as a live session.
func issueFor(t *testing.T, store sessions.Store, user *domain.User) string {
	t.Helper()
	token, err := newTestIssuer(store).Issue(context.Background(), user)
	require.NoError(t, err)
	return token
}

func TestGate_AuthorizeLiveSession(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	gate := NewGate(store, 30*time.Minute)

	token := issueFor(t, store, &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser})

	assert.NoError(t, gate.Authorize(context.Background(), token, "", "orders-token-updated"))
}

func TestGate_AuthorizeEmptyToken(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	gate := NewGate(store, 30*time.Minute)

	err := gate.Authorize(context.Background(), "", "", "orders-token-updated")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGate_AuthorizeUnknownToken(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	gate := NewGate(store, 30*time.Minute)

	err := gate.Authorize(context.Background(), "not.a.session", "", "orders-token-updated")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGate_AuthorizeExpiredSession(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	gate := NewGate(store, 30*time.Minute)

	// A perfectly valid signed token whose session record already lapsed.
	token := issueFor(t, store, &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser})
	require.NoError(t, store.Set(context.Background(), token, "7", 20*time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	err := gate.Authorize(context.Background(), token, "", "orders-token-updated")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound,
		"signature validity must not outlive the store record")
}

func TestGate_AdminRole(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	gate := NewGate(store, 30*time.Minute)

	adminToken := issueFor(t, store, &domain.User{ID: 1, Username: "root", Role: domain.RoleAdmin})
	userToken := issueFor(t, store, &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser})

	assert.NoError(t, gate.Authorize(context.Background(), adminToken, domain.RoleAdmin, "rented-cars-token-updated"))

	err := gate.Authorize(context.Background(), userToken, domain.RoleAdmin, "rented-cars-token-updated")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGate_AdminCheckNeedsLiveSession(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	gate := NewGate(store, 30*time.Minute)

	// An admin token with no session record: the presence check must win,
	// and the rejection must not leak that the role would have matched.
	adminToken := issueFor(t, store, &domain.User{ID: 1, Username: "root", Role: domain.RoleAdmin})
	require.NoError(t, store.Set(context.Background(), adminToken, "1", 20*time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	err := gate.Authorize(context.Background(), adminToken, domain.RoleAdmin, "rented-cars-token-updated")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGate_SlidingKeepsSessionAlive(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	gate := NewGate(store, 120*time.Millisecond)

	token := issueFor(t, store, &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser})
	require.NoError(t, store.Set(context.Background(), token, "7", 120*time.Millisecond))

	// Keep calling inside the window; each authorized call restarts it, so
	// the session stays alive well past the original 120ms.
	for i := 0; i < 4; i++ {
		time.Sleep(60 * time.Millisecond)
		require.NoError(t, gate.Authorize(context.Background(), token, "", "orders-token-updated"))
	}

	// Then stop calling and let the window lapse.
	time.Sleep(200 * time.Millisecond)
	err := gate.Authorize(context.Background(), token, "", "orders-token-updated")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGate_SlideOverwritesValueWithMarker(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	gate := NewGate(store, 30*time.Minute)

	token := issueFor(t, store, &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser})

	require.NoError(t, gate.Authorize(context.Background(), token, "", "orders-token-updated"))

	val, ok, err := store.Get(context.Background(), token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "orders-token-updated", val,
		"the default slide replaces the stored user id with the endpoint marker")
}

func TestGate_IdentitySlidePreservesValue(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	gate := NewGate(store, 30*time.Minute, WithIdentitySlide())

	token := issueFor(t, store, &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser})

	require.NoError(t, gate.Authorize(context.Background(), token, "", "orders-token-updated"))
	require.NoError(t, gate.Authorize(context.Background(), token, "", "returns-token-updated"))

	val, ok, err := store.Get(context.Background(), token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "7", val, "identity slide keeps the user id across authorized calls")
}

func TestGate_StoreDownDenies(t *testing.T) {
	gate := NewGate(failingStore{}, 30*time.Minute)

	err := gate.Authorize(context.Background(), "some.live.token", "", "orders-token-updated")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestGate_CheckSession(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	gate := NewGate(store, 30*time.Minute)

	token := issueFor(t, store, &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser})

	ok, err := gate.CheckSession(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.CheckSession(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.CheckSession(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGate_CheckAdminRole(t *testing.T) {
	store := sessions.NewMemoryStore()
	defer store.Close()
	gate := NewGate(store, 30*time.Minute)

	adminToken := issueFor(t, store, &domain.User{ID: 1, Username: "root", Role: domain.RoleAdmin})
	userToken := issueFor(t, store, &domain.User{ID: 7, Username: "alice", Role: domain.RoleUser})

	assert.True(t, gate.CheckAdminRole(adminToken))
	assert.False(t, gate.CheckAdminRole(userToken))
	assert.False(t, gate.CheckAdminRole("not-a-jwt"))
}
