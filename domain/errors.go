package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password. The two cases are deliberately indistinguishable so the
	// login surface cannot be used for username enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists is returned by sign-up when the username is taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound is the repository-level miss for identity lookups.
	ErrUserNotFound = errors.New("user not found")

	// ErrSessionNotFound means no live session record exists for the
	// presented token. Missing, expired and malformed tokens all collapse
	// into this one error: callers must not learn which case applies.
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrForbidden is returned when a live session lacks the admin role
	// on an admin-only operation.
	ErrForbidden = errors.New("admin role required")

	// ErrStoreUnavailable means the session store could not be reached.
	// It is always a hard denial, never treated as authenticated.
	ErrStoreUnavailable = errors.New("session store unavailable")

	ErrCarUnavailable = errors.New("car not available for order")
	ErrOrderNotFound  = errors.New("order not found")
)
