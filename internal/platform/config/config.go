package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers selectable through STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StoreDriver   string
	DatabaseURL   string
	EnableDBCheck bool
	// MigrationsPath is a golang-migrate source URL, e.g. file://migrations.
	MigrationsPath   string
	SQLitePath       string
	SQLiteCASRetries int

	JWTSecret string
	JWTIssuer string

	FrontendBaseURL string

	RedisURL         string
	PaymentRateLimit string
	APIRateLimit     string

	PosthogAPIKey   string
	PosthogEndpoint string

	OTelServiceName       string
	OTelCollectorEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("SQLITE_PATH", "bank_simulator.db")
	viper.SetDefault("SQLITE_CAS_RETRIES", 5)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "bank-simulator")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("PAYMENT_RATE_LIMIT", "30-M")
	viper.SetDefault("API_RATE_LIMIT", "600-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")
	viper.SetDefault("OTEL_SERVICE_NAME", "bank-simulator")
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StoreDriver = strings.ToLower(viper.GetString("STORE_DRIVER"))
	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverSQLite, StoreDriverMemory:
	default:
		log.Printf("Warning: unknown STORE_DRIVER '%s'. Defaulting to %s.\n", cfg.StoreDriver, StoreDriverPostgres)
		cfg.StoreDriver = StoreDriverPostgres
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" && cfg.StoreDriver == StoreDriverPostgres {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.SQLitePath = viper.GetString("SQLITE_PATH")

	cfg.SQLiteCASRetries = viper.GetInt("SQLITE_CAS_RETRIES")
	if cfg.SQLiteCASRetries <= 0 {
		cfg.SQLiteCASRetries = 5
		log.Printf("Warning: Invalid value for SQLITE_CAS_RETRIES. Defaulting to %d.\n", cfg.SQLiteCASRetries)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.PaymentRateLimit = viper.GetString("PAYMENT_RATE_LIMIT")
	if cfg.PaymentRateLimit == "" {
		cfg.PaymentRateLimit = "30-M"
		log.Printf("Warning: PAYMENT_RATE_LIMIT not set. Defaulting to %s.\n", cfg.PaymentRateLimit)
	}

	cfg.APIRateLimit = viper.GetString("API_RATE_LIMIT")
	if cfg.APIRateLimit == "" {
		cfg.APIRateLimit = "600-M"
		log.Printf("Warning: API_RATE_LIMIT not set. Defaulting to %s.\n", cfg.APIRateLimit)
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")
	cfg.OTelServiceName = viper.GetString("OTEL_SERVICE_NAME")
	cfg.OTelCollectorEndpoint = viper.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")

	return cfg, nil
}
