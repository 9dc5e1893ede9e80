// rentald is the car-rental service: stock listing, orders, returns, and
// the admin panel. Protected endpoints authorize against the shared
// session store through the Authorization Gate.
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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	echoapi "github.com/complexlab/rentalfleet/api/echo"
	"github.com/complexlab/rentalfleet/auth"
	"github.com/complexlab/rentalfleet/config"
	"github.com/complexlab/rentalfleet/internal/metrics"
	"github.com/complexlab/rentalfleet/internal/server"
	"github.com/complexlab/rentalfleet/log"
	"github.com/complexlab/rentalfleet/mongodb"
	"github.com/complexlab/rentalfleet/sessions"
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

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Fatal(ctx, "Failed to connect to Redis", err)
	}
	store := sessions.NewRedisStore(redisClient, "")

	if err := mongodb.Init(ctx, cfg.MongoURI, cfg.MongoDBName); err != nil {
		appLogger.Fatal(ctx, "Failed to initialize MongoDB", err)
	}

	rentals := mongodb.NewRentalRepository(mongodb.DB())
	gate := auth.NewGate(store, cfg.SessionTTL())

	api := echoapi.NewRentalAPI(gate, rentals)

	reg := prometheus.NewRegistry()
	metrics.Register(reg)

	srv := server.NewHTTPServer(cfg, appLogger, reg, func(e *echo.Echo) {
		api.RegisterRoutes(e)
	})

	go func() {
		appLogger.Info(ctx, "Car-rental service listening", map[string]interface{}{"addr": srv.Addr})
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
	if err := mongodb.Disconnect(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "MongoDB disconnect failed", err)
	}
	if err := redisClient.Close(); err != nil {
		appLogger.Error(shutdownCtx, "Redis close failed", err)
	}
}
