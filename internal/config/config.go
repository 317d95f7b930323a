package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store driver names accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config carries every runtime knob, loaded from the environment.
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":5000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`
	DBURL       string `envconfig:"DB_URL"`
	MongoURI    string `envconfig:"MONGO_URI"`
	MongoDB     string `envconfig:"MONGO_DB" default:"batepapo"`

	// RedisURL enables the roster cache and the fan-out queue; empty
	// runs the API without either.
	RedisURL string `envconfig:"REDIS_URL"`

	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"15s"`
	StaleAfter    time.Duration `envconfig:"STALE_AFTER" default:"15s"`

	// NoticeSender fixes the identity join/leave notices are attributed
	// to; empty attributes them to the participant itself.
	NoticeSender string `envconfig:"NOTICE_SENDER"`

	QueueConcurrency int `envconfig:"QUEUE_CONCURRENCY" default:"10"`
}

// Load reads the environment into a Config and validates driver choices.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	switch cfg.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if cfg.DBURL == "" {
			return Config{}, fmt.Errorf("config: DB_URL is required for STORE_DRIVER=%s", DriverPostgres)
		}
	case DriverMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("config: MONGO_URI is required for STORE_DRIVER=%s", DriverMongo)
		}
	default:
		return Config{}, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.SweepInterval <= 0 || cfg.StaleAfter <= 0 {
		return Config{}, fmt.Errorf("config: SWEEP_INTERVAL and STALE_AFTER must be positive")
	}

	return cfg, nil
}
