// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Discogs  DiscogsConfig  `yaml:"discogs"`
	Session  SessionConfig  `yaml:"session"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// DiscogsConfig defines Discogs API settings. ConsumerKey and ConsumerSecret
// usually arrive through environment expansion (${DISCOGS_CONSUMER_KEY}).
// They are not required at load time: endpoints that need them degrade to a
// configuration error response instead of preventing startup.
type DiscogsConfig struct {
	ConsumerKey     string          `yaml:"consumer_key"`
	ConsumerSecret  string          `yaml:"consumer_secret"`
	UserAgent       string          `yaml:"user_agent"`
	BaseURL         string          `yaml:"base_url"`
	RequestTokenURL string          `yaml:"request_token_url"`
	AuthorizeURL    string          `yaml:"authorize_url"`
	AccessTokenURL  string          `yaml:"access_token_url"`
	CallbackURL     string          `yaml:"callback_url"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// Configured reports whether the consumer key pair is present.
func (d *DiscogsConfig) Configured() bool {
	return d.ConsumerKey != "" && d.ConsumerSecret != ""
}

// RateLimitConfig defines Discogs API pacing. Discogs allows 60 authenticated
// calls per minute; the defaults stay under that.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// SessionConfig defines the cookie session used to hold the ephemeral OAuth
// request token between the authorize and callback steps.
type SessionConfig struct {
	Secret string        `yaml:"secret"`
	MaxAge time.Duration `yaml:"max_age"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyDiscogsDefaults(&cfg.Discogs)
	applySessionDefaults(&cfg.Session)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyDiscogsDefaults(d *DiscogsConfig) {
	if d.UserAgent == "" {
		d.UserAgent = "diggerweb/1.0"
	}
	if d.BaseURL == "" {
		d.BaseURL = "https://api.discogs.com"
	}
	if d.RequestTokenURL == "" {
		d.RequestTokenURL = "https://api.discogs.com/oauth/request_token"
	}
	if d.AuthorizeURL == "" {
		d.AuthorizeURL = "https://www.discogs.com/oauth/authorize"
	}
	if d.AccessTokenURL == "" {
		d.AccessTokenURL = "https://api.discogs.com/oauth/access_token"
	}
	applyRateLimitDefaults(&d.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 0.5
	}
	if r.Burst == 0 {
		r.Burst = 1
	}
}

func applySessionDefaults(s *SessionConfig) {
	if s.MaxAge == 0 {
		s.MaxAge = 10 * time.Minute
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}
	if cfg.Session.Secret == "" {
		errs = append(errs, fmt.Errorf("session.secret is required"))
	}

	return errors.Join(errs...)
}
