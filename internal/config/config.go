// Package config loads the run configuration. Everything is optional and
// defaulted; environment references in the YAML are expanded before parsing
// so secrets can stay out of the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jobsift/jobsift/internal/adapter"
)

// Config is the root configuration for a pipeline run.
type Config struct {
	RosterPath string
	StorePath  string
	Outputs    OutputConfig
	Limits     LimitConfig
	Filters    FilterConfig
	Webhook    WebhookConfig
	HTTP       HTTPConfig
	Rate       RateConfig
	Workers    int
	Watch      WatchConfig
}

// OutputConfig names the two output tables.
type OutputConfig struct {
	Diff string `yaml:"diff"`
	Zero string `yaml:"zero"`
}

// LimitConfig bounds emitted rows.
type LimitConfig struct {
	PerCompany int `yaml:"per_company"`
	Total      int `yaml:"total"`
}

// FilterConfig restricts a run to a subset of the roster.
type FilterConfig struct {
	Companies []string `yaml:"companies"`
	ATS       []string `yaml:"ats"`
}

// WebhookConfig configures downstream delivery of the new-rows set.
// Delivery is skipped unless both fields are set.
type WebhookConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// HTTPConfig tunes the shared HTTP client.
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// RateConfig tunes per-host request pacing.
type RateConfig struct {
	PerHostRPS float64 `yaml:"per_host_rps"`
	Burst      int     `yaml:"burst"`
}

// WatchConfig drives the repeat-run mode.
type WatchConfig struct {
	Schedule string `yaml:"schedule"` // cron spec; empty disables watch
}

// rawConfig mirrors the YAML layout (snake_case, durations as strings).
type rawConfig struct {
	Roster  string        `yaml:"roster"`
	Store   string        `yaml:"store"`
	Outputs OutputConfig  `yaml:"outputs"`
	Limits  LimitConfig   `yaml:"limits"`
	Filters FilterConfig  `yaml:"filters"`
	Webhook WebhookConfig `yaml:"webhook"`
	HTTP    rawHTTPConfig `yaml:"http"`
	Rate    RateConfig    `yaml:"rate"`
	Workers int           `yaml:"workers"`
	Watch   WatchConfig   `yaml:"watch"`
}

type rawHTTPConfig struct {
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		RosterPath: "accounts.csv",
		StorePath:  "jobs.db",
		Outputs:    OutputConfig{Diff: "jobs_diff.csv", Zero: "jobs_zero.csv"},
		Limits:     LimitConfig{PerCompany: 50, Total: 1000},
		HTTP: HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: adapter.DefaultUserAgent,
		},
		Rate:    RateConfig{PerHostRPS: 4, Burst: 2},
		Workers: 4,
	}
}

// Load reads and parses the YAML config at path. A missing file yields the
// defaults when optional is true (the un-flagged default path); otherwise it
// is an error.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if raw.Roster != "" {
		cfg.RosterPath = raw.Roster
	}
	if raw.Store != "" {
		cfg.StorePath = raw.Store
	}
	if raw.Outputs.Diff != "" {
		cfg.Outputs.Diff = raw.Outputs.Diff
	}
	if raw.Outputs.Zero != "" {
		cfg.Outputs.Zero = raw.Outputs.Zero
	}
	if raw.Limits.PerCompany > 0 {
		cfg.Limits.PerCompany = raw.Limits.PerCompany
	}
	if raw.Limits.Total > 0 {
		cfg.Limits.Total = raw.Limits.Total
	}
	cfg.Filters = raw.Filters
	cfg.Webhook = raw.Webhook
	if raw.HTTP.Timeout != "" {
		d, err := time.ParseDuration(raw.HTTP.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse http.timeout %q: %w", raw.HTTP.Timeout, err)
		}
		cfg.HTTP.Timeout = d
	}
	if raw.HTTP.UserAgent != "" {
		cfg.HTTP.UserAgent = raw.HTTP.UserAgent
	}
	if raw.Rate.PerHostRPS > 0 {
		cfg.Rate.PerHostRPS = raw.Rate.PerHostRPS
	}
	if raw.Rate.Burst > 0 {
		cfg.Rate.Burst = raw.Rate.Burst
	}
	if raw.Workers > 0 {
		cfg.Workers = raw.Workers
	}
	cfg.Watch = raw.Watch

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Limits.PerCompany <= 0 {
		return fmt.Errorf("limits.per_company must be positive, got %d", cfg.Limits.PerCompany)
	}
	if cfg.Limits.Total <= 0 {
		return fmt.Errorf("limits.total must be positive, got %d", cfg.Limits.Total)
	}
	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %v", cfg.HTTP.Timeout)
	}
	if (cfg.Webhook.URL == "") != (cfg.Webhook.Token == "") {
		return fmt.Errorf("webhook.url and webhook.token must be set together")
	}
	return nil
}
