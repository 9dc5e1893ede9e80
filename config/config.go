package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration shared by the fleet binaries. Every service
// reads the same struct; each binary only uses the fields it needs.
// Tags use mapstructure for Viper unmarshalling.
type Config struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDBName string `mapstructure:"MONGO_DB_NAME"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`

	// JWTSecretKey is the shared HMAC secret. It must be provisioned with
	// identical material to the issuer and every verifier; downstream
	// services never call back to the issuer to validate tokens.
	JWTSecretKey string `mapstructure:"JWT_SECRET_KEY"`
	// TokenIssuer and TokenAudience are the fixed service identifiers
	// embedded in every token. All participants are configured with the
	// same pair.
	TokenIssuer   string `mapstructure:"TOKEN_ISSUER"`
	TokenAudience string `mapstructure:"TOKEN_AUDIENCE"`

	// SessionTTLMin is the sliding session window in minutes. Every
	// authorized call resets it.
	SessionTTLMin int `mapstructure:"SESSION_TTL_MIN"`
	// TokenLifetimeMin bounds the exp claim. Session-store presence, not
	// exp, is the liveness authority; exp is a backstop.
	TokenLifetimeMin int `mapstructure:"TOKEN_LIFETIME_MIN"`

	// PasswordScheme selects the credential comparer: "plain" matches the
	// deployed fleet, "bcrypt" is the hardened alternative for fresh
	// identity stores.
	PasswordScheme string `mapstructure:"PASSWORD_SCHEME"`

	// Gateway upstreams.
	AuthServiceURL    string `mapstructure:"AUTH_SERVICE_URL"`
	RentalServiceURL  string `mapstructure:"RENTAL_SERVICE_URL"`
	PaymentServiceURL string `mapstructure:"PAYMENT_SERVICE_URL"`
}

// SessionTTL returns the sliding window as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}

// TokenLifetime returns the token exp bound as a duration.
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMin) * time.Minute
}

// Load reads configuration from file, environment variables, and defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/rentalfleet/")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/rentalfleet_dev")
	v.SetDefault("MONGO_DB_NAME", "rentalfleet_dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("JWT_SECRET_KEY", "MySecretKey") // CHANGE IN PRODUCTION
	v.SetDefault("TOKEN_ISSUER", "https://authenticationservice:8084")
	v.SetDefault("TOKEN_AUDIENCE",
		"https://carrentalservice:8083 , https://paymentservice:8081, https://complexlabgateway:8082")
	v.SetDefault("SESSION_TTL_MIN", 30)
	v.SetDefault("TOKEN_LIFETIME_MIN", 60)
	v.SetDefault("PASSWORD_SCHEME", "plain")
	v.SetDefault("AUTH_SERVICE_URL", "http://localhost:8084")
	v.SetDefault("RENTAL_SERVICE_URL", "http://localhost:8083")
	v.SetDefault("PAYMENT_SERVICE_URL", "http://localhost:8081")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, we run on env vars and defaults.
		// Anything else (malformed yaml, permissions) is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}
