package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// QuickBooks app credentials issued by Intuit.
	QuickBooksClientID     string `mapstructure:"QB_CLIENT_ID"`
	QuickBooksClientSecret string `mapstructure:"QB_CLIENT_SECRET"`
	QuickBooksEnvironment  string `mapstructure:"QB_ENVIRONMENT"`

	// SyncRateLimit is a limiter formatted rate ("5-M" = 5 per minute)
	// applied to the sync trigger endpoint.
	SyncRateLimit string

	// PosthogAPIKey enables usage analytics when set.
	PosthogAPIKey string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("QB_CLIENT_ID", "")
	viper.SetDefault("QB_CLIENT_SECRET", "")
	viper.SetDefault("QB_ENVIRONMENT", "sandbox")
	viper.SetDefault("SYNC_RATE_LIMIT", "5-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.QuickBooksClientID = viper.GetString("QB_CLIENT_ID")
	cfg.QuickBooksClientSecret = viper.GetString("QB_CLIENT_SECRET")
	cfg.QuickBooksEnvironment = viper.GetString("QB_ENVIRONMENT")
	if cfg.QuickBooksClientID == "" || cfg.QuickBooksClientSecret == "" {
		log.Println("Warning: QB_CLIENT_ID / QB_CLIENT_SECRET not set. QuickBooks sync will not function.")
	}

	cfg.SyncRateLimit = viper.GetString("SYNC_RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}
