// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvironmentConfig holds deployment-level settings sourced from
// QUADTREE_* environment variables. File config describes the
// simulation; the environment describes where and how it is served.
type EnvironmentConfig struct {
	ListenAddr    string
	ListenPort    int
	UpdateRate    int
	MaxSpectators int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration

	// Circuit breaker configuration for the spectator client
	CircuitBreakerMaxRequests         int
	CircuitBreakerInterval            time.Duration
	CircuitBreakerTimeout             time.Duration
	CircuitBreakerMaxConsecutiveFails int

	ShutdownTimeout time.Duration
}

// LoadConfigFromEnv builds an EnvironmentConfig from the process
// environment, falling back to safe defaults for unset variables.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	cfg := &EnvironmentConfig{
		ListenAddr:    getEnvString("QUADTREE_LISTEN_ADDR", "localhost"),
		UpdateRate:    20,
		MaxSpectators: 32,
		ReadTimeout:   30 * time.Second,
		WriteTimeout:  30 * time.Second,

		CircuitBreakerMaxRequests:         3,
		CircuitBreakerInterval:            60 * time.Second,
		CircuitBreakerTimeout:             30 * time.Second,
		CircuitBreakerMaxConsecutiveFails: 5,

		ShutdownTimeout: 30 * time.Second,
	}

	var err error
	if cfg.ListenPort, err = getEnvInt("QUADTREE_LISTEN_PORT", 4580); err != nil {
		return nil, err
	}
	if cfg.UpdateRate, err = getEnvInt("QUADTREE_UPDATE_RATE", cfg.UpdateRate); err != nil {
		return nil, err
	}
	if cfg.MaxSpectators, err = getEnvInt("QUADTREE_MAX_SPECTATORS", cfg.MaxSpectators); err != nil {
		return nil, err
	}
	if cfg.ReadTimeout, err = getEnvDuration("QUADTREE_READ_TIMEOUT", cfg.ReadTimeout); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getEnvDuration("QUADTREE_WRITE_TIMEOUT", cfg.WriteTimeout); err != nil {
		return nil, err
	}
	if cfg.CircuitBreakerMaxRequests, err = getEnvInt("QUADTREE_CB_MAX_REQUESTS", cfg.CircuitBreakerMaxRequests); err != nil {
		return nil, err
	}
	if cfg.CircuitBreakerInterval, err = getEnvDuration("QUADTREE_CB_INTERVAL", cfg.CircuitBreakerInterval); err != nil {
		return nil, err
	}
	if cfg.CircuitBreakerTimeout, err = getEnvDuration("QUADTREE_CB_TIMEOUT", cfg.CircuitBreakerTimeout); err != nil {
		return nil, err
	}
	if cfg.CircuitBreakerMaxConsecutiveFails, err = getEnvInt("QUADTREE_CB_MAX_FAILS", cfg.CircuitBreakerMaxConsecutiveFails); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("QUADTREE_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvironmentOverrides folds environment settings into a file or
// default SimConfig. Environment wins where both are set.
func ApplyEnvironmentOverrides(config *SimConfig) error {
	env, err := LoadConfigFromEnv()
	if err != nil {
		return err
	}

	if os.Getenv("QUADTREE_LISTEN_ADDR") != "" || os.Getenv("QUADTREE_LISTEN_PORT") != "" {
		config.Network.ListenAddress = fmt.Sprintf("%s:%d", env.ListenAddr, env.ListenPort)
	}
	if os.Getenv("QUADTREE_UPDATE_RATE") != "" {
		config.Network.UpdateRate = env.UpdateRate
	}
	if os.Getenv("QUADTREE_MAX_SPECTATORS") != "" {
		config.Network.MaxSpectators = env.MaxSpectators
	}
	if path := os.Getenv("QUADTREE_TELEMETRY_PATH"); path != "" {
		config.Telemetry.Path = path
	}
	return nil
}

// ListenAddress joins the configured address and port.
func (c *EnvironmentConfig) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.ListenAddr, c.ListenPort)
}

func (c *EnvironmentConfig) validate() error {
	if c.ListenPort < 1 || c.ListenPort > 65535 {
		return fmt.Errorf("QUADTREE_LISTEN_PORT out of range: %d", c.ListenPort)
	}
	if c.UpdateRate < 1 {
		return fmt.Errorf("QUADTREE_UPDATE_RATE must be at least 1, got %d", c.UpdateRate)
	}
	if c.MaxSpectators < 1 {
		return fmt.Errorf("QUADTREE_MAX_SPECTATORS must be at least 1, got %d", c.MaxSpectators)
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer in %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration in %s: %w", key, err)
	}
	return parsed, nil
}
