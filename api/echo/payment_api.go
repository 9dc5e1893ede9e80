package echo

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/complexlab/rentalfleet/auth"
	"github.com/complexlab/rentalfleet/domain"
)

const markerPayment = "payment-token-updated"

// PaymentAPI serves the payment service surface.
type PaymentAPI struct {
	gate *auth.Gate
	repo domain.PaymentRepository
}

// NewPaymentAPI initializes the payment API.
func NewPaymentAPI(gate *auth.Gate, repo domain.PaymentRepository) *PaymentAPI {
	return &PaymentAPI{
		gate: gate,
		repo: repo,
	}
}

// RegisterRoutes registers the payment routes.
func (a *PaymentAPI) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/payment", a.ProcessPaymentHandler)
}

// ProcessPaymentHandler charges a rental order.
func (a *PaymentAPI) ProcessPaymentHandler(c echo.Context) error {
	var req PaymentModel
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, MsgDeadSession)
	}

	ctx := c.Request().Context()

	if err := a.gate.Authorize(ctx, req.Token, "", markerPayment); err != nil {
		return gateReject(c, err)
	}

	exists, err := a.repo.OrderExists(ctx, req.OrderID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("order lookup failed")
		return c.NoContent(http.StatusInternalServerError)
	}
	if !exists {
		return c.String(http.StatusBadRequest, MsgOrderMissing)
	}

	payment := &domain.Payment{
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		PaymentDate: time.Now(),
	}
	if err := a.repo.CreatePayment(ctx, payment); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("storing payment failed")
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.String(http.StatusOK, MsgPaymentOK)
}
