package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	PostgresDSN   string `env:"POSTGRES_DSN"`
	ClickhouseDSN string `env:"CLICKHOUSE_DSN"`
	MetricsAddr   string `env:"METRICS_ADDR" envDefault:":9090"`
	OutputDir     string `env:"OUTPUT_DIR" envDefault:"output"`

	Seed         int64   `env:"SEED" envDefault:"42"`
	MMin         float64 `env:"M_MIN" envDefault:"3.0"`
	PhysicsCount int     `env:"PHYSICS_COUNT" envDefault:"30"`
	SimpleCount  int     `env:"SIMPLE_COUNT" envDefault:"20"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
