// Package config provides Viper-based configuration loading for the reroll backend.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the "host:port" listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig holds effect-catalog settings. An empty Dir selects the
// builtin compiled-in catalog.
type CatalogConfig struct {
	Dir           string        `mapstructure:"dir"`
	WatchInterval time.Duration `mapstructure:"watch_interval"`
}

// StoreConfig holds the run-archive settings. An empty Path disables saving.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// SimulationConfig holds batch defaults; requests may override both.
type SimulationConfig struct {
	Iterations       int `mapstructure:"iterations"`
	ShardCostPerRoll int `mapstructure:"shard_cost_per_roll"`
	MaxIterations    int `mapstructure:"max_iterations"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the full server configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Store      StoreConfig      `mapstructure:"store"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Load reads configuration from an optional YAML file and REROLL_* env vars,
// with defaults suitable for local use.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("catalog.dir", "")
	v.SetDefault("catalog.watch_interval", 10*time.Second)
	v.SetDefault("store.path", "")
	v.SetDefault("simulation.iterations", 10000)
	v.SetDefault("simulation.shard_cost_per_roll", 100)
	v.SetDefault("simulation.max_iterations", 200000)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetEnvPrefix("REROLL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Simulation.Iterations < 1 {
		return fmt.Errorf("simulation.iterations must be >= 1")
	}
	if c.Simulation.MaxIterations < c.Simulation.Iterations {
		return fmt.Errorf("simulation.max_iterations must be >= simulation.iterations")
	}
	if c.Simulation.ShardCostPerRoll < 1 {
		return fmt.Errorf("simulation.shard_cost_per_roll must be >= 1")
	}
	return nil
}
