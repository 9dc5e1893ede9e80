package echo

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/complexlab/rentalfleet/auth"
	"github.com/complexlab/rentalfleet/domain"
)

// Slide markers written into the session record by each rental endpoint.
// Free-form status strings: nothing reads them back, they only make the
// last authorized endpoint visible when inspecting the store.
const (
	markerOrders        = "orders-token-updated"
	markerReturns       = "returns-token-updated"
	markerRentedCars    = "rented-cars-token-updated"
	markerRentalHistory = "rental-history-token-updated"
	markerDamagedCars   = "damaged-cars-token-updated"
	markerRejectOrder   = "reject-order-token-updated"
)

// RentalAPI serves the car-rental service surface. Every protected
// endpoint passes through the shared Authorization Gate before touching
// the repository.
type RentalAPI struct {
	gate *auth.Gate
	repo domain.RentalRepository
}

// NewRentalAPI initializes the car-rental API.
func NewRentalAPI(gate *auth.Gate, repo domain.RentalRepository) *RentalAPI {
	return &RentalAPI{
		gate: gate,
		repo: repo,
	}
}

// RegisterRoutes registers the car-rental routes.
func (a *RentalAPI) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/cars", a.GetAvailableCarsHandler)
	e.POST("/api/v1/orders", a.OrderCarHandler)
	e.POST("/api/v1/returns", a.ReturnCarHandler)

	// Admin panel.
	e.GET("/api/v1/cars/rented", a.GetRentedCarsHandler)
	e.GET("/api/v1/orders", a.GetRentalHistoryHandler)
	e.GET("/api/v1/cars/damaged", a.GetDamagedCarsHandler)
	e.PATCH("/api/v1/orders/:orderId", a.RejectOrderHandler)
}

// GetAvailableCarsHandler lists cars open for rental. Unauthenticated:
// browsing stock requires no session.
func (a *RentalAPI) GetAvailableCarsHandler(c echo.Context) error {
	cars, err := a.repo.GetAvailableCars(c.Request().Context())
	if err != nil {
		log.Ctx(c.Request().Context()).Error().Err(err).Msg("listing available cars failed")
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, cars)
}

// OrderCarHandler places an order for a car.
func (a *RentalAPI) OrderCarHandler(c echo.Context) error {
	var req OrderModel
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, MsgDeadSession)
	}

	ctx := c.Request().Context()

	if err := a.gate.Authorize(ctx, req.Token, "", markerOrders); err != nil {
		return gateReject(c, err)
	}

	if err := a.repo.OrderCar(ctx, req.CarID, req.UserID); err != nil {
		if errors.Is(err, domain.ErrCarUnavailable) {
			return c.String(http.StatusBadRequest, MsgCarNotFree)
		}
		log.Ctx(ctx).Error().Err(err).Msg("ordering car failed")
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.String(http.StatusOK, MsgCarOrdered)
}

// ReturnCarHandler records a car coming back from a rental.
func (a *RentalAPI) ReturnCarHandler(c echo.Context) error {
	var req ReturnModel
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, MsgDeadSession)
	}

	ctx := c.Request().Context()

	if err := a.gate.Authorize(ctx, req.Token, "", markerReturns); err != nil {
		return gateReject(c, err)
	}

	if err := a.repo.ReturnCar(ctx, req.OrderID, req.IsDamaged); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.String(http.StatusBadRequest, MsgBadReturn)
		}
		log.Ctx(ctx).Error().Err(err).Msg("returning car failed")
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.String(http.StatusOK, MsgCarReturned)
}

// GetRentedCarsHandler lists cars out on rental. Admin only.
func (a *RentalAPI) GetRentedCarsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	if err := a.gate.Authorize(ctx, c.QueryParam("token"), domain.RoleAdmin, markerRentedCars); err != nil {
		return gateReject(c, err)
	}

	cars, err := a.repo.GetRentedCars(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("listing rented cars failed")
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, cars)
}

// GetRentalHistoryHandler lists every order. Admin only.
func (a *RentalAPI) GetRentalHistoryHandler(c echo.Context) error {
	ctx := c.Request().Context()

	if err := a.gate.Authorize(ctx, c.QueryParam("token"), domain.RoleAdmin, markerRentalHistory); err != nil {
		return gateReject(c, err)
	}

	orders, err := a.repo.GetRentalHistory(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("listing rental history failed")
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetDamagedCarsHandler lists cars returned damaged. Admin only.
func (a *RentalAPI) GetDamagedCarsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	if err := a.gate.Authorize(ctx, c.QueryParam("token"), domain.RoleAdmin, markerDamagedCars); err != nil {
		return gateReject(c, err)
	}

	cars, err := a.repo.GetDamagedCars(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("listing damaged cars failed")
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, cars)
}

// RejectOrderHandler removes an order. Admin only.
func (a *RentalAPI) RejectOrderHandler(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := strconv.Atoi(c.Param("orderId"))
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if err := a.gate.Authorize(ctx, c.QueryParam("token"), domain.RoleAdmin, markerRejectOrder); err != nil {
		return gateReject(c, err)
	}

	if err := a.repo.RejectOrder(ctx, orderID); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("rejecting order failed")
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.String(http.StatusOK, MsgOrderReject)
}
