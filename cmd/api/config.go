package main

import (
	"fmt"
	"time"

	"dogparks/internal/db"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type config struct {
	Addr string `env:"ADDR" envDefault:":3000"`
	// PORT wins over ADDR when set, as most hosting platforms only set PORT.
	Port              string        `env:"PORT"`
	Env               string        `env:"ENV" envDefault:"development"`
	EnrichmentTimeout time.Duration `env:"ENRICHMENT_TIMEOUT" envDefault:"8s"`
	DB                dbConfig
	Yelp              yelpConfig
	RateLimiter       rateLimiterConfig
}

type dbConfig struct {
	Addr              string        `env:"DATABASE_URL,required,notEmpty"`
	MaxConns          int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	MinConns          int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	MaxIdleTime       time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"15m"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"30s"`
	AutoMigrate       bool          `env:"DB_AUTO_MIGRATE" envDefault:"false"`
}

func (c dbConfig) pool() db.Config {
	return db.Config{
		Addr:              c.Addr,
		MaxConns:          c.MaxConns,
		MinConns:          c.MinConns,
		MaxConnLifetime:   c.MaxConnLifetime,
		MaxConnIdleTime:   c.MaxIdleTime,
		HealthCheckPeriod: c.HealthCheckPeriod,
	}
}

type yelpConfig struct {
	APIKey  string        `env:"YELP_API_KEY,required,notEmpty"`
	BaseURL string        `env:"YELP_BASE_URL" envDefault:"https://api.yelp.com"`
	Timeout time.Duration `env:"YELP_TIMEOUT" envDefault:"10s"`
}

type rateLimiterConfig struct {
	RequestsPerTimeFrame int           `env:"RATELIMITER_REQUESTS_COUNT" envDefault:"200"`
	TimeFrame            time.Duration `env:"RATELIMITER_TIME_FRAME" envDefault:"5s"`
	Enabled              bool          `env:"RATE_LIMITER_ENABLED" envDefault:"false"`
}

// loadConfig reads the environment, after merging a .env file when one exists.
func loadConfig() (config, error) {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return cfg, nil
}

func (c config) listenAddr() string {
	if c.Port != "" {
		return ":" + c.Port
	}
	return c.Addr
}
