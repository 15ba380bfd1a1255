package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string        `mapstructure:"PORT"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	DataFile           string        `mapstructure:"DATA_FILE"`
	OrdersFile         string        `mapstructure:"ORDERS_FILE"`
	RabbitMQURL        string        `mapstructure:"RABBITMQ_URL"`
	RabbitMQQueue      string        `mapstructure:"RABBITMQ_QUEUE"`
	ChannelPoolSize    int           `mapstructure:"CHANNEL_POOL_SIZE"`
	TracingEnabled     bool          `mapstructure:"TRACING_ENABLED"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"PORT":                 "3000",
	"LOG_LEVEL":            "info",
	"DATA_FILE":            "./data.json",
	"ORDERS_FILE":          "./orders.json",
	"RABBITMQ_URL":         "",
	"RABBITMQ_QUEUE":       "catalog_events",
	"CHANNEL_POOL_SIZE":    4,
	"TRACING_ENABLED":      false,
	"CORS_ALLOWED_ORIGINS": []string{"*"},
	"SHUTDOWN_TIMEOUT":     "10s",
}

// LoadConfig reads the environment, optionally overlaid by a .env file in
// dir. A missing .env file is not an error.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(filepath.Join(dir, ".env"))
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Printf("No .env file in %s, using environment only", dir)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.ChannelPoolSize <= 0 {
		cfg.ChannelPoolSize = defaults["CHANNEL_POOL_SIZE"].(int)
	}
	return &cfg, nil
}

// EventsEnabled reports whether change events should be published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}
