package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/complexlab/rentalfleet/auth"
	"github.com/complexlab/rentalfleet/domain"
	"github.com/complexlab/rentalfleet/internal/metrics"
)

// AuthAPI serves the authentication service surface: credential
// verification with token issuance, and sign-up.
type AuthAPI struct {
	verifier     *auth.CredentialVerifier
	issuer       *auth.Issuer
	registration *auth.RegistrationService
}

// NewAuthAPI initializes the authentication API.
func NewAuthAPI(
	verifier *auth.CredentialVerifier,
	issuer *auth.Issuer,
	registration *auth.RegistrationService,
) *AuthAPI {
	return &AuthAPI{
		verifier:     verifier,
		issuer:       issuer,
		registration: registration,
	}
}

// RegisterRoutes registers the authentication routes.
func (a *AuthAPI) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/token", a.TokenHandler)
	e.POST("/api/v1/sign-up", a.SignUpHandler)
}

// TokenHandler verifies a username/password pair and returns a freshly
// issued session token. Every failure is a bare 400: the response must not
// reveal whether the username exists.
func (a *AuthAPI) TokenHandler(c echo.Context) error {
	var req UserModel
	if err := c.Bind(&req); err != nil {
		metrics.LoginFailureTotal.Inc()
		return c.NoContent(http.StatusBadRequest)
	}

	ctx := c.Request().Context()

	user, err := a.verifier.Verify(ctx, req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			log.Ctx(ctx).Error().Err(err).Msg("credential verification failed")
		}
		metrics.LoginFailureTotal.Inc()
		return c.NoContent(http.StatusBadRequest)
	}

	token, err := a.issuer.Issue(ctx, user)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to issue session token")
		return c.NoContent(http.StatusInternalServerError)
	}

	metrics.LoginSuccessTotal.Inc()
	return c.JSON(http.StatusOK, TokenResponse{SessionToken: token})
}

// SignUpHandler registers a new identity. Success carries no body; the
// client logs in separately to obtain a token.
func (a *AuthAPI) SignUpHandler(c echo.Context) error {
	var req UserModel
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	ctx := c.Request().Context()

	if _, err := a.registration.SignUp(ctx, req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.String(http.StatusBadRequest, MsgUserExists)
		}
		log.Ctx(ctx).Error().Err(err).Msg("sign-up failed")
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}
