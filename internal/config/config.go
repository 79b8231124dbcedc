package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application settings.
type Config struct {
	Port             string        `mapstructure:"PORT" validate:"required"`
	DatabaseURL      string        `mapstructure:"DATABASE_URL"`
	FrontendURL      string        `mapstructure:"FRONTEND_URL" validate:"omitempty,url"`
	RabbitMQURL      string        `mapstructure:"RABBITMQ_URL" validate:"omitempty,url"`
	RabbitMQExchange string        `mapstructure:"RABBITMQ_EXCHANGE" validate:"required"`
	LogLevel         string        `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Env              string        `mapstructure:"APP_ENV" validate:"oneof=development production test"`
	ShutdownTimeout  time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads envFile (if it exists) into the process environment, then builds
// the Config from environment variables layered over defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("PORT", "3000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "products")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
