package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"

	minProductionSecretBytes = 32
)

type AppConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	Database DatabaseConfig
	JWT      JWTConfig
	Cache    CacheConfig

	EnforceHTTPS bool `env:"ENFORCE_HTTPS" env-default:"false"`

	Telemetry TelemetryConfig
}

type DatabaseConfig struct {
	Driver     string `env:"DATABASE_DRIVER" env-default:"sqlite"`
	Path       string `env:"DATABASE_PATH" env-default:"tasknotes.db"`
	URL        string `env:"DATABASE_URL"`
	LogQueries bool   `env:"DB_LOG_QUERIES" env-default:"false"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" env-required:"true"`
	TTL    time.Duration `env:"JWT_TTL" env-default:"3h"`
}

type CacheConfig struct {
	Driver        string        `env:"CACHE_DRIVER" env-default:"memory"`
	TTL           time.Duration `env:"CACHE_TTL" env-default:"5m"`
	RedisAddr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`
}

type TelemetryConfig struct {
	Enabled      bool   `env:"TELEMETRY_ENABLED" env-default:"false"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`
	MetricsPort  string `env:"METRICS_PORT" env-default:"9090"`
}

// Load reads the configuration from the environment.
func Load() (*AppConfig, error) {
	var cfg AppConfig

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATABASE_DRIVER=%s", DriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	switch c.Cache.Driver {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("unsupported CACHE_DRIVER %q", c.Cache.Driver)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}

	if c.IsProduction() && len(c.JWT.Secret) < minProductionSecretBytes {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes in production", minProductionSecretBytes)
	}

	return nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Port:        "8080",
		Environment: "development",
		LogLevel:    "info",
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   ":memory:",
		},
		JWT: JWTConfig{
			Secret: "test-secret",
			TTL:    3 * time.Hour,
		},
		Cache: CacheConfig{
			Driver: CacheMemory,
			TTL:    5 * time.Minute,
		},
		EnforceHTTPS: false,
		Telemetry: TelemetryConfig{
			MetricsPort: "9090",
		},
	}
}
