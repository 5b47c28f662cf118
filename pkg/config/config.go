package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Event bus backends
const (
	EventsGoChannel = "gochannel"
	EventsRedis     = "redis"
)

// Config represents the application configuration
type Config struct {
	Zoo       ZooConfig       `mapstructure:"zoo"`
	Admission AdmissionConfig `mapstructure:"admission"`
	Store     StoreConfig     `mapstructure:"store"`
	Events    EventsConfig    `mapstructure:"events"`
	Log       LogConfig       `mapstructure:"log"`
}

// ZooConfig holds the demonstration cage settings
type ZooConfig struct {
	CageNumber   int `mapstructure:"cage_number"`
	CageCapacity int `mapstructure:"cage_capacity"`
}

// AdmissionConfig holds the cage admission rules
type AdmissionConfig struct {
	// SymmetricMixing also blocks non-predators from joining predator cages
	SymmetricMixing bool `mapstructure:"symmetric_mixing"`
}

// StoreConfig selects where animals and cages live
type StoreConfig struct {
	Backend  string `mapstructure:"backend"`
	RedisURL string `mapstructure:"redis_url"`

	// PrivateDB assigns a per-host Redis DB for development isolation
	PrivateDB bool `mapstructure:"private_db"`
}

// EventsConfig selects where domain events are published
type EventsConfig struct {
	Backend string `mapstructure:"backend"`
	Topic   string `mapstructure:"topic"`
	MaxLen  int64  `mapstructure:"max_len"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Environment string `mapstructure:"environment"`
	Encoding    string `mapstructure:"encoding"`
}

// Load loads configuration from defaults, an optional config file and
// ZOO_* environment variables. An empty path searches the default locations.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("zoo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/zoo")
	}

	v.SetEnvPrefix("ZOO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to read config file (optional unless explicitly given)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("zoo.cage_number", 1)
	v.SetDefault("zoo.cage_capacity", 2)

	v.SetDefault("admission.symmetric_mixing", false)

	v.SetDefault("store.backend", StoreMemory)
	v.SetDefault("store.redis_url", "redis://localhost:6379/0")
	v.SetDefault("store.private_db", false)

	v.SetDefault("events.backend", EventsGoChannel)
	v.SetDefault("events.topic", "zoo.events")
	v.SetDefault("events.max_len", 10000)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.environment", "development")
	v.SetDefault("log.encoding", "console")
}

// validateConfig validates the loaded configuration
func validateConfig(cfg *Config) error {
	if cfg.Zoo.CageCapacity < 1 {
		return fmt.Errorf("cage capacity must be at least 1, got %d", cfg.Zoo.CageCapacity)
	}

	if !contains([]string{StoreMemory, StoreRedis}, cfg.Store.Backend) {
		return fmt.Errorf("invalid store backend: %s", cfg.Store.Backend)
	}

	if !contains([]string{EventsGoChannel, EventsRedis}, cfg.Events.Backend) {
		return fmt.Errorf("invalid events backend: %s", cfg.Events.Backend)
	}

	if cfg.NeedsRedis() && cfg.Store.RedisURL == "" {
		return fmt.Errorf("redis url cannot be empty")
	}

	if cfg.Events.Topic == "" {
		return fmt.Errorf("events topic cannot be empty")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, cfg.Log.Level) {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}

	validEncodings := []string{"json", "console"}
	if !contains(validEncodings, cfg.Log.Encoding) {
		return fmt.Errorf("invalid log encoding: %s", cfg.Log.Encoding)
	}

	return nil
}

// NeedsRedis returns true if any component is configured to use Redis
func (c *Config) NeedsRedis() bool {
	return strings.EqualFold(c.Store.Backend, StoreRedis) || strings.EqualFold(c.Events.Backend, EventsRedis)
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
