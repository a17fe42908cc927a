// Package config loads settings for the epicroadmap CLI and HTTP server.
//
// Settings are resolved from, in increasing priority: built-in defaults, a
// .epicroadmap.toml file in the working directory or $HOME (or an explicit
// path), and EPICROADMAP_* environment variables. Nested keys map to
// environment variables with underscores, e.g. server.addr becomes
// EPICROADMAP_SERVER_ADDR.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Defaults.
const (
	DefaultServerAddr     = ":8080"
	DefaultReadTimeout    = 10 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxBodyBytes   = 10 << 20
	DefaultShutdownPeriod = 10 * time.Second
	DefaultLogLevel       = "info"
)

// Config is the top-level configuration.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Backlog BacklogConfig `mapstructure:"backlog"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	ShutdownPeriod time.Duration `mapstructure:"shutdown_period"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// BacklogConfig points at the default backlog configuration document.
// An empty File means the stock Agile hierarchy.
type BacklogConfig struct {
	File string `mapstructure:"file"`
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Server.ShutdownPeriod < 0 {
		return fmt.Errorf("server.shutdown_period must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts the configured level name to a log level.
func (l LogConfig) ParseLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(l.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
