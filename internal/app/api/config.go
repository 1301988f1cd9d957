package api

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	PostgresDSN string `env:"POSTGRES_DSN"`
	RedisAddr   string `env:"REDIS_ADDR"`
	InvoiceDir  string `env:"INVOICE_DIR" envDefault:"invoices"`
}

// LoadConfig reads environment variables and applies defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
