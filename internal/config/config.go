package config

import (
	"fmt"
	"strconv"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Defaults applied by Load when the environment leaves a value unset.
const (
	DefaultPort      = 3000
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Port the HTTP API listens on.
	// Environment variable: PORT
	Port int `koanf:"PORT"`

	// NotionToken is the integration token used when a request or flag
	// does not carry one.
	// Environment variable: NOTION_TOKEN
	NotionToken string `koanf:"NOTION_TOKEN"`

	// NotionDatabaseURL is the default target database.
	// Environment variable: NOTION_DATABASE_URL
	NotionDatabaseURL string `koanf:"NOTION_DATABASE_URL"`

	// Environment variable: LOG_LEVEL
	LogLevel string `koanf:"LOG_LEVEL"`

	// LogFormat is "console" or "json".
	// Environment variable: LOG_FORMAT
	LogFormat string `koanf:"LOG_FORMAT"`

	// Year pins the year of date headers. Zero infers it from the clock.
	// Environment variable: KEEP2NOTION_YEAR
	Year int `koanf:"KEEP2NOTION_YEAR"`

	// GCSCredentialsFile is a service account key used to read notes from
	// Cloud Storage. Empty means Application Default Credentials.
	// Environment variable: KEEP2NOTION_GCS_CREDENTIALS
	GCSCredentialsFile string `koanf:"KEEP2NOTION_GCS_CREDENTIALS"`
}

// Load reads the configuration from the environment and applies defaults.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values that cannot work.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 1 and 65535", c.Port)
	}
	if c.Year < 0 || c.Year > 9999 {
		return fmt.Errorf("invalid KEEP2NOTION_YEAR %d", c.Year)
	}
	return nil
}

// Addr is the listen address for the HTTP API.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
