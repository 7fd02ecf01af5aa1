package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"catalog-dashboard/utils"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatasetSource string `env:"DATASET_SOURCE" envDefault:"csv" validate:"oneof=csv postgres"`
	DatasetPath   string `env:"DATASET_PATH" envDefault:"netflix_titles.csv" validate:"required_if=DatasetSource csv"`

	// CounterTypes are the literal type labels counted in the quick stats.
	CounterTypes []string `env:"COUNTER_TYPES" envSeparator:"," envDefault:"Movie,TV Show" validate:"dive,required"`
	TopN         int      `env:"TOP_N" envDefault:"10" validate:"min=1"`

	WordCloudWidth      int    `env:"WORDCLOUD_WIDTH" envDefault:"800" validate:"min=1"`
	WordCloudHeight     int    `env:"WORDCLOUD_HEIGHT" envDefault:"400" validate:"min=1"`
	WordCloudBackground string `env:"WORDCLOUD_BACKGROUND" envDefault:"black"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080" validate:"required"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"console" validate:"oneof=console json"`

	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"catalog"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"catalog123"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"catalog_db"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	MaxRetries int `env:"MAX_RETRIES" envDefault:"3" validate:"min=1"`
}

var validate = validator.New()

// Load reads the .env file, then the process environment, and validates the result.
func Load(logger *utils.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && logger != nil {
		logger.Warn("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// SourceName describes the configured dataset source for log lines,
// without leaking credentials.
func (c *Config) SourceName() string {
	if c.DatasetSource == "postgres" {
		u := url.URL{Scheme: "postgres", Host: c.PostgresHost + ":" + c.PostgresPort, Path: c.PostgresDB}
		return u.String()
	}
	return c.DatasetPath
}
