package domain

import "context"

// Standard roles. Role strings are embedded verbatim in session token claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered identity. Identities are immutable after
// sign-up: there is no profile mutation anywhere in the fleet.
type User struct {
	ID       int    `bson:"_id" json:"id"`
	Username string `bson:"username" json:"username"`
	Password string `bson:"password" json:"-"`
	Role     string `bson:"role" json:"role"`
}

// UserRepository provides access to the identity store.
//
//go:generate mockgen -source=$GOFILE -destination=../mocks/mock_$GOPACKAGE/mock_$GOFILE -package=mock_$GOPACKAGE
type UserRepository interface {
	// CreateUser persists a new identity. The repository assigns the next
	// sequential id before inserting. Returns ErrUserExists when the
	// username is already registered.
	CreateUser(ctx context.Context, user *User) error
	// GetUserByUsername returns the unique identity for a username, or
	// ErrUserNotFound.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}
