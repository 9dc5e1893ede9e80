package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/complexlab/rentalfleet/config"
	"github.com/complexlab/rentalfleet/log"
)

// NewHTTPServer creates and configures an echo HTTP server shared by every
// fleet binary. register wires the binary's own routes.
func NewHTTPServer(
	cfg *config.Config,
	appLogger log.Logger,
	reg *prometheus.Registry,
	register func(e *echo.Echo),
) *http.Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	// Request logging through the fleet logger interface.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			fields := map[string]interface{}{
				"method":  c.Request().Method,
				"path":    c.Request().URL.Path,
				"status":  c.Response().Status,
				"latency": time.Since(start).String(),
				"ip":      c.RealIP(),
			}
			if err != nil {
				appLogger.Error(c.Request().Context(), "HTTP Request", err, fields)
			} else {
				appLogger.Info(c.Request().Context(), "HTTP Request", fields)
			}
			return err
		}
	})

	register(e)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if reg != nil {
		e.GET("/metrics", echo.WrapHandler(
			promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		))
	}

	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      e,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
