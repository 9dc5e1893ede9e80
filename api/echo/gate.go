package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/complexlab/rentalfleet/domain"
)

// gateReject maps an Authorization Gate error onto the uniform client
// surface. Session failures and role failures each collapse to a single
// message regardless of root cause; a store outage is a plain hard failure
// with no detail, never an implicit allow.
func gateReject(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return c.String(http.StatusBadRequest, MsgNotAdmin)
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Ctx(c.Request().Context()).Error().Err(err).Msg("session store unreachable, denying")
		return c.NoContent(http.StatusServiceUnavailable)
	default:
		return c.String(http.StatusBadRequest, MsgDeadSession)
	}
}
