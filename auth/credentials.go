package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/complexlab/rentalfleet/domain"
)

// PasswordComparer checks a presented password against the stored one.
type PasswordComparer interface {
	// Compare returns nil when presented matches stored.
	Compare(stored, presented string) error
	// Hash prepares a password for storage.
	Hash(password string) (string, error)
}

// PlainComparer stores and compares passwords as plaintext. This matches
// the deployed identity store and is a known weakness, kept so existing
// user records keep working; new deployments should select BcryptComparer.
type PlainComparer struct{}

func (PlainComparer) Compare(stored, presented string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) != 1 {
		return errors.New("password mismatch")
	}
	return nil
}

func (PlainComparer) Hash(password string) (string, error) {
	return password, nil
}

// BcryptComparer is the hardened alternative. Incompatible with identity
// records written by PlainComparer.
type BcryptComparer struct {
	Cost int
}

// NewBcryptComparer creates a BcryptComparer. Cost <= 0 selects
// bcrypt.DefaultCost.
func NewBcryptComparer(cost int) *BcryptComparer {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptComparer{Cost: cost}
}

func (c *BcryptComparer) Compare(stored, presented string) error {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented))
}

func (c *BcryptComparer) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), c.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash generation failed: %w", err)
	}
	return string(hashedBytes), nil
}

// ComparerForScheme maps a configured scheme name to a comparer. Unknown
// schemes fall back to plaintext, the fleet default.
func ComparerForScheme(scheme string) PasswordComparer {
	if scheme == "bcrypt" {
		return NewBcryptComparer(0)
	}
	return PlainComparer{}
}

// CredentialVerifier checks username/password pairs against the identity
// store. Read-only; issuing the session token is the Issuer's job.
type CredentialVerifier struct {
	users    domain.UserRepository
	comparer PasswordComparer
}

// NewCredentialVerifier creates a CredentialVerifier.
func NewCredentialVerifier(users domain.UserRepository, comparer PasswordComparer) *CredentialVerifier {
	return &CredentialVerifier{
		users:    users,
		comparer: comparer,
	}
}

// Verify returns the identity matching the pair, or ErrInvalidCredentials.
// Unknown username and wrong password produce the identical error so the
// caller cannot enumerate usernames.
func (v *CredentialVerifier) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := v.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("credential lookup: %w", err)
	}

	if err := v.comparer.Compare(user.Password, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
