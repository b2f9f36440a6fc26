package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration
	LogLevel  string

	// pricing shared by cart summaries and checkout
	DeliveryFee int64
	TaxRate     decimal.Decimal

	RedisAddr      string
	IdempotencyTTL time.Duration

	RabbitURI      string
	OrdersExchange string

	AdminEmail    string
	AdminPassword string
	SeedDemo      bool
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBSource:       getEnv("DB_SOURCE", "zoomo.db"),
		Port:           getEnv("PORT", "8000"),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RabbitURI:      os.Getenv("RABBITMQ_URI"),
		OrdersExchange: getEnv("ORDER_EVENTS_EXCHANGE", "zoomo.orders"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
	}

	var err error
	if cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}
	if cfg.IdempotencyTTL, err = time.ParseDuration(getEnv("IDEMPOTENCY_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("IDEMPOTENCY_TTL: %w", err)
	}
	if cfg.DeliveryFee, err = strconv.ParseInt(getEnv("DELIVERY_FEE", "49"), 10, 64); err != nil {
		return nil, fmt.Errorf("DELIVERY_FEE: %w", err)
	}
	if cfg.DeliveryFee < 0 {
		return nil, fmt.Errorf("DELIVERY_FEE must not be negative")
	}
	if cfg.TaxRate, err = decimal.NewFromString(getEnv("TAX_RATE", "0.05")); err != nil {
		return nil, fmt.Errorf("TAX_RATE: %w", err)
	}
	if cfg.TaxRate.IsNegative() {
		return nil, fmt.Errorf("TAX_RATE must not be negative")
	}
	if cfg.SeedDemo, err = strconv.ParseBool(getEnv("SEED_DEMO", "false")); err != nil {
		return nil, fmt.Errorf("SEED_DEMO: %w", err)
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("DB_DRIVER %q is not supported", cfg.DBDriver)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
