package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Admin    AdminConfig
	Payout   PayoutConfig
	Accrual  AccrualConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	AccessExpiration  string
	RefreshExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AdminConfig holds the single-admin credential. PasswordHash is a bcrypt
// hash, never the plain password.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

// PayoutConfig holds payout computation defaults.
type PayoutConfig struct {
	TDSRatePercent decimal.Decimal
	DeductLoss     bool
}

// AccrualConfig holds the monthly salary sweep settings.
type AccrualConfig struct {
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	// .env is optional outside development; real env vars win either way.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "staffpay"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
	}

	// Admin credential
	config.Admin = AdminConfig{
		Username:     getEnv("ADMIN_USERNAME", "admin"),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	// Payout configuration
	tdsRate, err := decimal.NewFromString(getEnv("PAYOUT_TDS_RATE_PERCENT", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYOUT_TDS_RATE_PERCENT: %w", err)
	}
	deductLoss, err := strconv.ParseBool(getEnv("PAYOUT_DEDUCT_LOSS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYOUT_DEDUCT_LOSS: %w", err)
	}
	config.Payout = PayoutConfig{
		TDSRatePercent: tdsRate,
		DeductLoss:     deductLoss,
	}

	// Accrual sweep configuration
	sweepInterval, err := time.ParseDuration(getEnv("ACCRUAL_SWEEP_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACCRUAL_SWEEP_INTERVAL: %w", err)
	}
	config.Accrual = AccrualConfig{
		SweepInterval: sweepInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if c.Payout.TDSRatePercent.IsNegative() {
		return fmt.Errorf("PAYOUT_TDS_RATE_PERCENT must be non-negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
