// Package config loads leaporm CLI configuration from leaporm.yaml,
// environment variables, and command-line flags.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/leaporm/pkg/adapter"
)

// Defaults used when neither config file nor flags provide a value.
const (
	DefaultEnv           = "dev"
	DefaultMigrationsDir = "migrations"
	DefaultTargetType    = "sqlite"
)

// Config is the fully resolved CLI configuration.
type Config struct {
	Environment   string                        `koanf:"environment"`
	Verbose       bool                          `koanf:"verbose"`
	MigrationsDir string                        `koanf:"migrations_dir"`
	Target        *TargetConfig                 `koanf:"target"`
	Environments  map[string]EnvironmentConfig  `koanf:"environments"`
}

// EnvironmentConfig holds per-environment overrides.
type EnvironmentConfig struct {
	MigrationsDir string        `koanf:"migrations_dir"`
	Target        *TargetConfig `koanf:"target"`
}

// TargetConfig describes the database the CLI talks to.
type TargetConfig struct {
	Type     string            `koanf:"type"`
	Path     string            `koanf:"path"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Database string            `koanf:"database"`
	User     string            `koanf:"user"`
	Password string            `koanf:"password"`
	Schema   string            `koanf:"schema"`
	Options  map[string]string `koanf:"options"`
	Pool     PoolConfig        `koanf:"pool"`
}

// PoolConfig tunes the connection pool. Durations accept Go syntax ("30m").
type PoolConfig struct {
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

// AdapterConfig converts the target into an adapter connection config.
func (t *TargetConfig) AdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     t.Type,
		Path:     t.Path,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
		Pool: adapter.PoolConfig{
			MaxOpenConns:    t.Pool.MaxOpenConns,
			MaxIdleConns:    t.Pool.MaxIdleConns,
			ConnMaxLifetime: t.Pool.ConnMaxLifetime,
			ConnMaxIdleTime: t.Pool.ConnMaxIdleTime,
		},
	}
}

// MergeTargetConfig merges two target configs, with override taking precedence.
func MergeTargetConfig(base, override *TargetConfig) *TargetConfig {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	merged.Options = make(map[string]string)
	for k, v := range base.Options {
		merged.Options[k] = v
	}

	if override.Type != "" {
		merged.Type = override.Type
	}
	if override.Path != "" {
		merged.Path = override.Path
	}
	if override.Host != "" {
		merged.Host = override.Host
	}
	if override.Port != 0 {
		merged.Port = override.Port
	}
	if override.Database != "" {
		merged.Database = override.Database
	}
	if override.User != "" {
		merged.User = override.User
	}
	if override.Password != "" {
		merged.Password = override.Password
	}
	if override.Schema != "" {
		merged.Schema = override.Schema
	}
	for k, v := range override.Options {
		merged.Options[k] = v
	}

	var zero PoolConfig
	if override.Pool != zero {
		merged.Pool = override.Pool
	}

	return &merged
}

// validateTarget checks that the target is usable before connecting.
func validateTarget(t *TargetConfig) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("target type not specified")
	}
	if t.Type == "postgres" && t.Database == "" {
		return fmt.Errorf("postgres target requires a database name")
	}
	return nil
}

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store logger in context.
type loggerKey struct{}

// WithConfig stores cfg in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from the command context.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	// Return default config if none in context
	return &Config{
		Environment:   DefaultEnv,
		MigrationsDir: DefaultMigrationsDir,
		Target:        &TargetConfig{Type: DefaultTargetType, Path: ":memory:"},
	}
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
