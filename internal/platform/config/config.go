package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port                string        `mapstructure:"PORT"`
	IsProduction        bool          `mapstructure:"IS_PRODUCTION"`
	JWTSecret           string        `mapstructure:"JWT_SECRET"`
	JWTExpiryDuration   time.Duration `mapstructure:"JWT_EXPIRY_DURATION"`
	JWTIssuer           string        `mapstructure:"JWT_ISSUER"`
	RateLimit           string        `mapstructure:"RATE_LIMIT"`
	ExcludeOptionalFees bool          `mapstructure:"EXCLUDE_OPTIONAL_FEES"`
	SeedDemoData        bool          `mapstructure:"SEED_DEMO_DATA"`
}

// LoadConfig reads configuration from a .env file (when present) and the
// environment. Environment variables take precedence over file values.
func LoadConfig(logger *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, relying on environment variables")
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("JWT_ISSUER", "spp-billing")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("EXCLUDE_OPTIONAL_FEES", false)
	v.SetDefault("SEED_DEMO_DATA", true)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv alone does not populate Unmarshal, bind each key.
	for _, key := range []string{
		"PORT", "IS_PRODUCTION", "JWT_SECRET", "JWT_EXPIRY_DURATION",
		"JWT_ISSUER", "RATE_LIMIT", "EXCLUDE_OPTIONAL_FEES", "SEED_DEMO_DATA",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env key %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		logger.Warn("JWT_SECRET not set, using insecure development default")
		cfg.JWTSecret = "dev-only-insecure-secret"
	}

	return &cfg, nil
}
