package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// RedisAddr enables the change notifier when set. Empty disables event
	// streaming; everything else keeps working.
	RedisAddr string

	// RateLimit uses the limiter formatted syntax, e.g. "300-M" for 300
	// requests per minute per client IP.
	RateLimit string

	// CORSAllowedOrigins is a comma-separated allowlist. Empty means allow
	// all outside production and deny all in production.
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Change event streaming is disabled.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	if raw := viper.GetString("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, trimmed)
			}
		}
	}
	if cfg.IsProduction && len(cfg.CORSAllowedOrigins) == 0 {
		log.Println("Warning: CORS_ALLOWED_ORIGINS not set in production. Cross-origin requests will be denied.")
	}

	return cfg, nil
}
