// Package config defines the application configuration and its loader. The
// core packages receive configuration values by injection and never read
// environment variables themselves; this package is the single place where
// files and the environment are consulted.
package config

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Config is the root configuration for the offshore leaks server.
type Config struct {
	Neo4j   Neo4jConfig   `mapstructure:"neo4j" yaml:"neo4j" validate:"required"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server" validate:"required"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// Neo4jConfig contains Neo4j connection settings.
type Neo4jConfig struct {
	URI                   string        `mapstructure:"uri" yaml:"uri" validate:"required"`
	Username              string        `mapstructure:"username" yaml:"username" validate:"required"`
	Password              string        `mapstructure:"password" yaml:"password" validate:"required"`
	Database              string        `mapstructure:"database" yaml:"database"`
	MaxConnectionPoolSize int           `mapstructure:"max_connection_pool_size" yaml:"max_connection_pool_size" validate:"min=1,max=1000"`
	ConnectionTimeout     time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout" validate:"min=1s"`
}

// ServerConfig contains API server and query settings.
type ServerConfig struct {
	Name            string        `mapstructure:"name" yaml:"name"`
	ListenAddress   string        `mapstructure:"listen_address" yaml:"listen_address" validate:"required"`
	Debug           bool          `mapstructure:"debug" yaml:"debug"`
	DefaultLimit    int           `mapstructure:"default_limit" yaml:"default_limit" validate:"min=1,max=1000"`
	MaxLimit        int           `mapstructure:"max_limit" yaml:"max_limit" validate:"min=1,max=1000"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout" yaml:"query_timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=1s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}

// DefaultConfig returns the configuration used when no file is present.
// The Neo4j password has no default and must come from file or environment.
func DefaultConfig() *Config {
	return &Config{
		Neo4j: Neo4jConfig{
			URI:                   "bolt://localhost:7687",
			Username:              "neo4j",
			Database:              "neo4j",
			MaxConnectionPoolSize: 50,
			ConnectionTimeout:     30 * time.Second,
		},
		Server: ServerConfig{
			Name:            "offshoreleaks-server",
			ListenAddress:   ":8080",
			DefaultLimit:    20,
			MaxLimit:        100,
			QueryTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return types.WrapError(types.CONFIG_VALIDATION_FAILED,
			"configuration validation failed", err)
	}
	if c.Server.DefaultLimit > c.Server.MaxLimit {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"default_limit cannot exceed max_limit")
	}
	return nil
}
