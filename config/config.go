// Package config loads runtime configuration from the environment, with an
// optional .env overlay for development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// validate is the singleton validator instance
var validate = validator.New()

// Config represents the complete runtime configuration
type Config struct {
	Environment   string `validate:"required,oneof=development staging production"`
	Executor      ExecutorConfig
	Drivers       DriverConfig
	Observability ObservabilityConfig

	// ShutdownTimeout bounds how long Shutdown waits for workers to drain.
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// ExecutorConfig holds worker pool configuration
type ExecutorConfig struct {
	// Workers is the number of worker goroutines in the pool.
	Workers int `validate:"gte=1,lte=1024"`
	// QueueDepth is the capacity of the pending task queue.
	QueueDepth int `validate:"gte=1"`
	// SpawnRate caps task submissions per second. Zero disables throttling.
	SpawnRate float64 `validate:"gte=0"`
	// SpawnBurst is the throttler burst size when SpawnRate is set.
	SpawnBurst int `validate:"gte=0"`
}

// DriverConfig controls which driver capabilities the runtime attaches to
// its handle. A disabled driver is simply absent from the bundle; ambient
// lookups for it report absence rather than failing.
type DriverConfig struct {
	IOEnabled   bool
	TimeEnabled bool
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel string `validate:"required,oneof=debug info warn error"`
}

// New creates a Config by loading environment variables. A .env file in the
// working directory is applied first when present.
func New() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Executor: ExecutorConfig{
			Workers:    getEnvAsInt("EXECUTOR_WORKERS", 4),
			QueueDepth: getEnvAsInt("EXECUTOR_QUEUE_DEPTH", 256),
			SpawnRate:  getEnvAsFloat("EXECUTOR_SPAWN_RATE", 0),
			SpawnBurst: getEnvAsInt("EXECUTOR_SPAWN_BURST", 0),
		},
		Drivers: DriverConfig{
			IOEnabled:   getEnvAsBool("DRIVER_IO_ENABLED", true),
			TimeEnabled: getEnvAsBool("DRIVER_TIME_ENABLED", true),
		},
		Observability: ObservabilityConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct constraints, plus the
// cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Executor.SpawnRate > 0 && c.Executor.SpawnBurst < 1 {
		return fmt.Errorf("spawn burst must be at least 1 when a spawn rate is set")
	}
	return nil
}

// IsProduction returns true when running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment returns true when running in development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
