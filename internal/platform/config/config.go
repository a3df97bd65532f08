package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Rate limiting, e.g. "100-M" for 100 requests per minute.
	RateLimit string

	// QueueCutoffs optionally hides approved payables older than a per-kind
	// horizon from the payment queue. Zero entries mean no cutoff.
	QueueCutoffs map[domain.PayableKind]time.Time
}

const cutoffDateFormat = "2006-01-02"

func loadQueueCutoffs() map[domain.PayableKind]time.Time {
	keys := map[domain.PayableKind]string{
		domain.CashAdvance:             "QUEUE_CUTOFF_CASH_ADVANCE",
		domain.ContractorCertification: "QUEUE_CUTOFF_CERTIFICATION",
		domain.FundRequest:             "QUEUE_CUTOFF_FUND_REQUEST",
		domain.MonthlySalary:           "QUEUE_CUTOFF_SALARY",
	}

	cutoffs := make(map[domain.PayableKind]time.Time)
	for kind, key := range keys {
		raw := viper.GetString(key)
		if raw == "" {
			continue
		}
		cutoff, err := time.Parse(cutoffDateFormat, raw)
		if err != nil {
			log.Printf("Warning: Invalid value for %s ('%s'), expected YYYY-MM-DD. Ignoring.\n", key, raw)
			continue
		}
		cutoffs[kind] = cutoff
	}
	return cutoffs
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "obra-backoffice")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("QUEUE_CUTOFF_CASH_ADVANCE", "")
	viper.SetDefault("QUEUE_CUTOFF_CERTIFICATION", "")
	viper.SetDefault("QUEUE_CUTOFF_FUND_REQUEST", "")
	viper.SetDefault("QUEUE_CUTOFF_SALARY", "")

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

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "obra-backoffice"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.QueueCutoffs = loadQueueCutoffs()

	return cfg, nil
}
