package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the main structure mapping the entire application configuration.
// This struct uses mapstructure tags to map YAML keys (and their ENV overrides) to Go struct fields.
type Config struct {
	// Server configuration section containing HTTP server settings
	Server struct {
		Port                   int `mapstructure:"port"`                     // HTTP server port (default: 8080)
		ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds"` // Grace period for in-flight requests and tasks
	} `mapstructure:"server"`

	// Database configuration section
	Database struct {
		Driver string `mapstructure:"driver"` // "sqlite" or "postgres"
		Name   string `mapstructure:"name"`   // SQLite database file name
		DSN    string `mapstructure:"dsn"`    // Postgres connection string
	} `mapstructure:"database"`

	// Auth configuration for JWT issuance
	Auth struct {
		JWTSecret             string `mapstructure:"jwt_secret"`
		Issuer                string `mapstructure:"issuer"`
		AccessTokenTTLMinutes int    `mapstructure:"access_token_ttl_minutes"`
		RefreshTokenTTLHours  int    `mapstructure:"refresh_token_ttl_hours"`
	} `mapstructure:"auth"`

	// Tasks configuration for the asynchronous task queue (visit tracking, emails)
	Tasks struct {
		BufferSize   int `mapstructure:"buffer_size"`    // Size of the task channel buffer
		WorkerCount  int `mapstructure:"worker_count"`   // Number of worker goroutines
		MaxRetries   int `mapstructure:"max_retries"`    // Retries after the first failed attempt
		RetryDelayMS int `mapstructure:"retry_delay_ms"` // Delay between attempts
	} `mapstructure:"tasks"`

	GeoIP struct {
		DBPath string `mapstructure:"db_path"` // MaxMind GeoLite2/GeoIP2 City database
	} `mapstructure:"geoip"`

	// Monitor configuration for the GeoIP database availability check
	Monitor struct {
		IntervalMinutes int `mapstructure:"interval_minutes"`
	} `mapstructure:"monitor"`

	Mail struct {
		Driver    string `mapstructure:"driver"` // "ses" or "log"
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"mail"`

	AWS struct {
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key"`
		Region          string `mapstructure:"region"`
	} `mapstructure:"aws"`

	Log struct {
		Level  string `mapstructure:"level"`  // debug, info, warn, error
		Format string `mapstructure:"format"` // json or text
	} `mapstructure:"log"`
}

// AccessTokenTTL returns the lifetime of access tokens.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.Auth.AccessTokenTTLMinutes) * time.Minute
}

// RefreshTokenTTL returns the lifetime of refresh tokens.
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.Auth.RefreshTokenTTLHours) * time.Hour
}

// RetryDelay returns the delay between two attempts of a failed task.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Tasks.RetryDelayMS) * time.Millisecond
}

// Validate checks the settings the HTTP server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required for the postgres driver"))
	}
	switch c.Mail.Driver {
	case "ses", "log":
	default:
		errs = append(errs, fmt.Errorf("mail.driver %q is not supported", c.Mail.Driver))
	}
	if c.Tasks.WorkerCount < 1 {
		errs = append(errs, errors.New("tasks.worker_count must be at least 1"))
	}
	if c.Monitor.IntervalMinutes < 1 {
		errs = append(errs, errors.New("monitor.interval_minutes must be at least 1"))
	}
	return errors.Join(errs...)
}

// LoadConfig loads the application configuration using Viper.
// A .env file, when present, is loaded into the environment first; environment
// variables then override the YAML file, which overrides the defaults.
func LoadConfig() (*Config, error) {
	// Missing .env is the normal case outside local development
	_ = godotenv.Load()

	// Replace dots with underscores in environment variable names
	// e.g., "auth.jwt_secret" becomes "AUTH_JWT_SECRET"
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Every key needs a default so that Unmarshal picks up its ENV override
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdown_timeout_seconds", 10)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.name", "catalog.db")
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.issuer", "catalog")
	viper.SetDefault("auth.access_token_ttl_minutes", 5)
	viper.SetDefault("auth.refresh_token_ttl_hours", 24)
	viper.SetDefault("tasks.buffer_size", 1000)
	viper.SetDefault("tasks.worker_count", 5)
	viper.SetDefault("tasks.max_retries", 3)
	viper.SetDefault("tasks.retry_delay_ms", 500)
	viper.SetDefault("geoip.db_path", "./geoip/GeoLite2-City.mmdb")
	viper.SetDefault("monitor.interval_minutes", 5)
	viper.SetDefault("mail.driver", "ses")
	viper.SetDefault("mail.from_email", "no-reply@example.com")
	viper.SetDefault("aws.access_key_id", "")
	viper.SetDefault("aws.secret_access_key", "")
	viper.SetDefault("aws.region", "us-east-1")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("config file not found, using defaults and environment")
		} else {
			// permissions, malformed YAML, etc.
			return nil, customerrors.ErrConfigLoad{Path: viper.ConfigFileUsed(), Reason: err.Error()}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}
