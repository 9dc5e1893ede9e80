// Package gateway implements the edge router: a stateless pass-through that
// forwards client calls to the backend services and relays their status and
// body unchanged. It attaches no session or role logic; tokens travel
// through it untouched inside bodies and query strings.
package gateway

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/complexlab/rentalfleet/config"
)

// Gateway forwards inbound calls to the right backend.
type Gateway struct {
	client     *http.Client
	authURL    string
	rentalURL  string
	paymentURL string
}

// New creates a Gateway over the configured upstream base URLs.
func New(cfg *config.Config) *Gateway {
	return &Gateway{
		client:     &http.Client{Timeout: 30 * time.Second},
		authURL:    cfg.AuthServiceURL,
		rentalURL:  cfg.RentalServiceURL,
		paymentURL: cfg.PaymentServiceURL,
	}
}

// RegisterRoutes registers the external route table. External paths are
// stable; the mapping to internal paths lives here and nowhere else.
func (g *Gateway) RegisterRoutes(e *echo.Echo) {
	// Authentication service.
	e.POST("/api/v1/log-in", g.forwardTo(g.authURL, "/api/v1/token"))
	e.POST("/api/v1/sign-up", g.forwardTo(g.authURL, "/api/v1/sign-up"))

	// Car-rental service.
	e.GET("/api/v1/cars", g.forwardTo(g.rentalURL, "/api/v1/cars"))
	e.POST("/api/v1/orders", g.forwardTo(g.rentalURL, "/api/v1/orders"))
	e.POST("/api/v1/returns", g.forwardTo(g.rentalURL, "/api/v1/returns"))
	e.GET("/api/v1/cars/rented", g.forwardTo(g.rentalURL, "/api/v1/cars/rented"))
	e.GET("/api/v1/orders", g.forwardTo(g.rentalURL, "/api/v1/orders"))
	e.GET("/api/v1/cars/damaged", g.forwardTo(g.rentalURL, "/api/v1/cars/damaged"))
	e.PATCH("/api/v1/orders/:orderId", g.rejectOrderHandler)

	// Payment service.
	e.POST("/api/v1/payment", g.forwardTo(g.paymentURL, "/api/v1/payment"))
}

// forwardTo builds a handler that relays the request verbatim to base+path,
// keeping the method, query string, body and content type.
func (g *Gateway) forwardTo(base, path string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return g.forward(c, base+path)
	}
}

// rejectOrderHandler forwards the admin order-rejection, carrying the path
// parameter across.
func (g *Gateway) rejectOrderHandler(c echo.Context) error {
	return g.forward(c, g.rentalURL+"/api/v1/orders/"+c.Param("orderId"))
}

func (g *Gateway) forward(c echo.Context, target string) error {
	req := c.Request()
	ctx := req.Context()

	if raw := req.URL.RawQuery; raw != "" {
		target += "?" + raw
	}

	upstreamReq, err := http.NewRequestWithContext(ctx, req.Method, target, req.Body)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("target", target).Msg("building upstream request failed")
		return c.NoContent(http.StatusBadGateway)
	}
	if ct := req.Header.Get(echo.HeaderContentType); ct != "" {
		upstreamReq.Header.Set(echo.HeaderContentType, ct)
	}

	resp, err := g.client.Do(upstreamReq)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("target", target).Msg("upstream call failed")
		return c.NoContent(http.StatusBadGateway)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("target", target).Msg("reading upstream response failed")
		return c.NoContent(http.StatusBadGateway)
	}

	contentType := resp.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = echo.MIMETextPlain
	}
	return c.Blob(resp.StatusCode, contentType, body)
}
