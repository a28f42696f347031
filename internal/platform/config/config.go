// Package config centralizes environment-driven process configuration so main
// stays lean. Region and fleet tables are static data owned by their own
// packages; only deployment knobs live here.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full process configuration, parsed from the environment.
type Config struct {
	Addr string `env:"AERODNS_ADDR" envDefault:":8080"`

	// FleetPath points at a JSON fleet definition. Empty means the built-in
	// development fleet.
	FleetPath string `env:"AERODNS_FLEET_PATH"`

	TickInterval time.Duration `env:"AERODNS_TICK_INTERVAL" envDefault:"5m"`
	Parallelism  int           `env:"AERODNS_TICK_PARALLELISM" envDefault:"4"`

	LocationURL     string        `env:"AERODNS_LOCATION_URL" envDefault:"http://localhost:9001"`
	GeocodeURL      string        `env:"AERODNS_GEOCODE_URL" envDefault:"http://localhost:9002"`
	ProviderTimeout time.Duration `env:"AERODNS_PROVIDER_TIMEOUT" envDefault:"10s"`

	ListStoreURL     string        `env:"AERODNS_LIST_STORE_URL" envDefault:"http://localhost:9003"`
	ListStoreAPIKey  string        `env:"AERODNS_LIST_STORE_API_KEY"`
	ListStoreTimeout time.Duration `env:"AERODNS_LIST_STORE_TIMEOUT" envDefault:"10s"`

	// RegionLists maps region codes to remote list IDs, e.g.
	// AERODNS_REGION_LISTS="EU:lst_eu1,NA:lst_na1".
	RegionLists map[string]string `env:"AERODNS_REGION_LISTS" envSeparator:"," envKeyValSeparator:":"`

	Redis    RedisConfig
	Postgres PostgresConfig

	KafkaBrokers []string `env:"AERODNS_KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"AERODNS_KAFKA_TOPIC" envDefault:"aerodns.transitions"`
}

// RedisConfig configures the optional Redis-backed state store. An empty URL
// means Redis is not configured.
type RedisConfig struct {
	URL          string        `env:"AERODNS_REDIS_URL"`
	PoolSize     int           `env:"AERODNS_REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"AERODNS_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"AERODNS_REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"AERODNS_REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"AERODNS_REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// PostgresConfig configures the optional Postgres-backed state store. An empty
// URL means Postgres is not configured.
type PostgresConfig struct {
	URL string `env:"AERODNS_POSTGRES_URL"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.TickInterval <= 0 {
		return Config{}, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	return cfg, nil
}
