package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/complexlab/rentalfleet/domain"
	"github.com/complexlab/rentalfleet/internal/metrics"
)

// RegistrationService handles sign-up. Registration never issues a token;
// the client logs in separately afterwards.
type RegistrationService struct {
	users    domain.UserRepository
	comparer PasswordComparer
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(users domain.UserRepository, comparer PasswordComparer) *RegistrationService {
	return &RegistrationService{
		users:    users,
		comparer: comparer,
	}
}

// SignUp registers a new identity with the default user role. Returns
// ErrUserExists when the username is already taken. The repository assigns
// the next sequential id.
func (s *RegistrationService) SignUp(ctx context.Context, username, password string) (*domain.User, error) {
	stored, err := s.comparer.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("preparing password: %w", err)
	}

	user := &domain.User{
		Username: username,
		Password: stored,
		Role:     domain.RoleUser,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Str("username", username).
		Int("user_id", user.ID).
		Msg("user registered")
	metrics.UserRegisteredTotal.Inc()

	return user, nil
}
