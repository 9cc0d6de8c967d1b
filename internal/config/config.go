package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"sales_ledger/internal/sales"
)

// EnvPrefix is prepended to every environment variable, e.g. LEDGER_PORT.
const EnvPrefix = "LEDGER"

// Config represents the complete application configuration.
type Config struct {
	Port int `envconfig:"PORT" default:"8081"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"DEVELOPMENT" default:"false"`

	// RecordsFile is a JSON or YAML ledger; empty means the bundled sample data.
	RecordsFile string `envconfig:"RECORDS_FILE"`
	CacheSize   int    `envconfig:"CACHE_SIZE" default:"128"`

	// ReferenceDate pins "today" for presets, mainly for demos and tests.
	ReferenceDate string `envconfig:"REFERENCE_DATE"`
	TimeZone      string `envconfig:"TIME_ZONE" default:"Local"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.CacheSize < 0 {
		problems = append(problems, fmt.Sprintf("invalid cache size %d: must not be negative", c.CacheSize))
	}

	if c.RecordsFile != "" {
		if _, err := os.Stat(c.RecordsFile); err != nil {
			problems = append(problems, fmt.Sprintf("records file '%s' is not readable: %v", c.RecordsFile, err))
		}
	}

	if c.ReferenceDate != "" && !sales.Date(c.ReferenceDate).Valid() {
		problems = append(problems, fmt.Sprintf("invalid reference date '%s': must be YYYY-MM-DD", c.ReferenceDate))
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid time zone '%s': %v", c.TimeZone, err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Location returns the calendar used to resolve date presets.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Clock returns the reference time for presets: the pinned ReferenceDate
// when set, otherwise the current time in the configured location.
func (c *Config) Clock() func() time.Time {
	loc := c.Location()
	if c.ReferenceDate != "" {
		if t, err := time.ParseInLocation(sales.DateLayout, c.ReferenceDate, loc); err == nil {
			return func() time.Time { return t }
		}
	}
	return func() time.Time { return time.Now().In(loc) }
}
