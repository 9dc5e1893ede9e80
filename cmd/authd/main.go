// authd is the authentication service: it verifies credentials, mints
// session tokens and registers them in the shared session store, and
// handles sign-up.
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

	// Library code logs through zerolog's context logger; give it the same
	// level and sink as the app logger.
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

	users, err := mongodb.NewUserRepository(ctx, mongodb.DB())
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize user repository", err)
	}

	signer := auth.NewTokenSigner()
	signer.AddHMACKey("default", cfg.JWTSecretKey)

	comparer := auth.ComparerForScheme(cfg.PasswordScheme)
	verifier := auth.NewCredentialVerifier(users, comparer)
	issuer := auth.NewIssuer(
		store, signer,
		cfg.TokenIssuer, cfg.TokenAudience,
		cfg.SessionTTL(), cfg.TokenLifetime(),
	)
	registration := auth.NewRegistrationService(users, comparer)

	api := echoapi.NewAuthAPI(verifier, issuer, registration)

	reg := prometheus.NewRegistry()
	metrics.Register(reg)

	srv := server.NewHTTPServer(cfg, appLogger, reg, func(e *echo.Echo) {
		api.RegisterRoutes(e)
	})

	go func() {
		appLogger.Info(ctx, "Authentication service listening", map[string]interface{}{"addr": srv.Addr})
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
