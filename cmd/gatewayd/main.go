// gatewayd is the client-facing edge: it forwards every call to the
// backend services and relays their responses verbatim. It holds no
// session state and attaches no authorization.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/complexlab/rentalfleet/config"
	"github.com/complexlab/rentalfleet/gateway"
	"github.com/complexlab/rentalfleet/internal/metrics"
	"github.com/complexlab/rentalfleet/internal/server"
	"github.com/complexlab/rentalfleet/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	appLogger := log.NewZerologAdapter(level, cfg.LogPretty)

	zl := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &zl

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw := gateway.New(cfg)

	reg := prometheus.NewRegistry()
	metrics.Register(reg)

	srv := server.NewHTTPServer(cfg, appLogger, reg, func(e *echo.Echo) {
		gw.RegisterRoutes(e)
	})

	go func() {
		appLogger.Info(ctx, "Gateway listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal(ctx, "HTTP server failed", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info(context.Background(), "Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "HTTP server shutdown failed", err)
	}
}
