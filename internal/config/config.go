// Package config loads fifa-stats settings from the environment.
//
// A .env file in the working directory is read first when present; variables
// already set in the environment take precedence over it. Command-line flags
// override the loaded values afterwards.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/fifa-stats/internal/fifa"
	"github.com/pfrederiksen/fifa-stats/internal/logger"
	"github.com/pfrederiksen/fifa-stats/internal/scraper"
)

// Config holds every tunable of a scrape run.
type Config struct {
	// Site
	BaseURL   string
	League    string
	Week      string
	UserAgent string

	// HTTP
	Timeout           time.Duration
	RetryDefaultWait  time.Duration
	MaxRetries        uint64
	RequestsPerMinute int

	// Extraction
	UnknownColumns fifa.ColumnPolicy

	// Output
	DataDir  string
	LogLevel logger.Level
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		BaseURL:          scraper.BaseURL,
		League:           fifa.DefaultLeague,
		Week:             fifa.DefaultWeek,
		UserAgent:        scraper.UserAgent,
		Timeout:          scraper.Timeout,
		RetryDefaultWait: scraper.DefaultRetryWait,
		UnknownColumns:   fifa.KeepUnknown,
		DataDir:          ".",
		LogLevel:         logger.LevelInfo,
	}
}

// Load reads .env (if present) and the FIFA_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, starting from Default.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Default()
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg.BaseURL = env("FIFA_BASE_URL", cfg.BaseURL)
	cfg.League = env("FIFA_LEAGUE", cfg.League)
	cfg.Week = env("FIFA_WEEK", cfg.Week)
	cfg.UserAgent = env("FIFA_USER_AGENT", cfg.UserAgent)
	cfg.DataDir = env("FIFA_DATA_DIR", cfg.DataDir)

	var err error
	if cfg.Timeout, err = duration(env("FIFA_HTTP_TIMEOUT", ""), cfg.Timeout); err != nil {
		return nil, fmt.Errorf("FIFA_HTTP_TIMEOUT: %w", err)
	}
	if cfg.RetryDefaultWait, err = duration(env("FIFA_RETRY_DEFAULT_WAIT", ""), cfg.RetryDefaultWait); err != nil {
		return nil, fmt.Errorf("FIFA_RETRY_DEFAULT_WAIT: %w", err)
	}

	if v := env("FIFA_MAX_RETRIES", ""); v != "" {
		if cfg.MaxRetries, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, fmt.Errorf("FIFA_MAX_RETRIES: %w", err)
		}
	}
	if v := env("FIFA_REQUESTS_PER_MINUTE", ""); v != "" {
		if cfg.RequestsPerMinute, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("FIFA_REQUESTS_PER_MINUTE: %w", err)
		}
	}
	if v := env("FIFA_LOG_LEVEL", ""); v != "" {
		if cfg.LogLevel, err = logger.ParseLevel(v); err != nil {
			return nil, fmt.Errorf("FIFA_LOG_LEVEL: %w", err)
		}
	}
	if v := env("FIFA_UNKNOWN_COLUMNS", ""); v != "" {
		if cfg.UnknownColumns, err = fifa.ParseColumnPolicy(v); err != nil {
			return nil, fmt.Errorf("FIFA_UNKNOWN_COLUMNS: %w", err)
		}
	}

	return cfg, cfg.Validate()
}

// duration accepts Go durations ("15s") or bare seconds ("15", "1.5").
func duration(v string, fallback time.Duration) (time.Duration, error) {
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		if math.IsNaN(secs) || math.IsInf(secs, 0) || math.Abs(secs) >= math.MaxInt64/float64(time.Second) {
			return 0, fmt.Errorf("duration %q out of range", v)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(v)
}

// Validate checks values that cannot be caught while parsing.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.League == "" || c.Week == "" {
		return fmt.Errorf("league and week are required")
	}
	if c.Timeout < 0 || c.RetryDefaultWait < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("requests per minute must not be negative")
	}
	return nil
}

// Client builds the page fetcher described by c.
func (c *Config) Client(log *logger.Logger, metrics *logger.Metrics) *scraper.Client {
	opts := []scraper.Option{
		scraper.WithUserAgent(c.UserAgent),
		scraper.WithRequestsPerMinute(c.RequestsPerMinute),
		scraper.WithLogger(log, metrics),
	}
	if c.Timeout > 0 {
		opts = append(opts, scraper.WithTimeout(c.Timeout))
	}
	return scraper.New(opts...)
}

// Site wires a fifa.Site around f.
func (c *Config) Site(f fifa.Fetcher, log *logger.Logger) *fifa.Site {
	site := fifa.NewSite(f)
	site.BaseURL = c.BaseURL
	site.League = c.League
	site.Week = c.Week
	site.Columns = c.UnknownColumns
	site.Log = log
	site.Retry = scraper.RetryPolicy{
		DefaultWait: c.RetryDefaultWait,
		MaxRetries:  c.MaxRetries,
	}
	return site
}
