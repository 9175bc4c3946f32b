package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/beejlander/internal/cards/query"
	"github.com/ramonehamilton/beejlander/internal/cards/scryfall"
	"github.com/ramonehamilton/beejlander/internal/deckexport"
	"github.com/ramonehamilton/beejlander/internal/sampler"
)

// Config represents the application configuration.
type Config struct {
	// Price caps and border filter
	Filter FilterConfig `toml:"filter"`

	// Scryfall API access
	Scryfall ScryfallConfig `toml:"scryfall"`

	// Sample size and duplicate budget
	Sample SampleConfig `toml:"sample"`

	// Where and how results are written
	Output OutputConfig `toml:"output"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// FilterConfig holds the price caps as entered. They are kept as strings so
// a hand-edited file is validated the same way as the form fields.
type FilterConfig struct {
	IncludeSilverBordered bool   `toml:"include_silver_bordered"`
	CommonPrice           string `toml:"common_price"`
	UncommonPrice         string `toml:"uncommon_price"`
	RarePrice             string `toml:"rare_price"`
	LandPrice             string `toml:"land_price"`
}

// ScryfallConfig contains API client settings.
type ScryfallConfig struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout string `toml:"request_timeout"`  // e.g. "30s"
	RateLimitDelay string `toml:"rate_limit_delay"` // e.g. "100ms"
}

// SampleConfig contains sampling run settings.
type SampleConfig struct {
	TargetTotal        int `toml:"target_total"`
	DuplicateTolerance int `toml:"duplicate_tolerance"`
	ProgressEvery      int `toml:"progress_every"`
}

// OutputConfig contains result file settings.
type OutputConfig struct {
	Path      string `toml:"path"`       // empty selects a name from format and title
	Format    string `toml:"format"`     // plaintext, arena, mtgo, json or csv
	Title     string `toml:"title"`      // "// <title>" header line in plaintext output
	ChartPath string `toml:"chart_path"` // empty disables the HTML chart
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Filter: FilterConfig{
			IncludeSilverBordered: false,
			CommonPrice:           "0.1",
			UncommonPrice:         "0.25",
			RarePrice:             "2",
			LandPrice:             "0.2",
		},
		Scryfall: ScryfallConfig{
			BaseURL:        scryfall.DefaultBaseURL,
			RequestTimeout: "30s",
			RateLimitDelay: "100ms",
		},
		Sample: SampleConfig{
			TargetTotal:        sampler.DefaultTargetTotal,
			DuplicateTolerance: sampler.DefaultDuplicateTolerance,
			ProgressEvery:      sampler.DefaultProgressEvery,
		},
		Output: OutputConfig{
			Path:      deckexport.DefaultPath,
			Format:    string(deckexport.FormatPlainText),
			ChartPath: "",
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// DefaultPath returns ~/.beejlander/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".beejlander", "config.toml"), nil
}

// Load loads the configuration from path, or from DefaultPath when path is
// empty. Returns default config if the file doesn't exist. Keys missing from
// the file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save writes the configuration to path, or to DefaultPath when path is
// empty, creating the directory if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// Marshal to TOML
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values. Price errors are returned as
// the *query.ConfigError from Filter.
func (c *Config) Validate() error {
	if _, err := c.QueryFilter(); err != nil {
		return err
	}

	if _, err := c.RequestTimeout(); err != nil {
		return fmt.Errorf("invalid request timeout %q: %w", c.Scryfall.RequestTimeout, err)
	}
	if _, err := c.RateLimitDelay(); err != nil {
		return fmt.Errorf("invalid rate limit delay %q: %w", c.Scryfall.RateLimitDelay, err)
	}

	if err := c.Budget().Validate(); err != nil {
		return err
	}
	if c.Sample.ProgressEvery < 0 {
		return fmt.Errorf("progress interval cannot be negative: %d", c.Sample.ProgressEvery)
	}

	if _, err := deckexport.ParseFormat(c.Output.Format); err != nil {
		return err
	}

	return nil
}

// QueryFilter returns the validated price filter.
func (c *Config) QueryFilter() (query.FilterConfig, error) {
	return query.ParseFilterConfig(c.Filter.IncludeSilverBordered, [query.NumPriceFields]string{
		query.FieldCommon:   c.Filter.CommonPrice,
		query.FieldUncommon: c.Filter.UncommonPrice,
		query.FieldRare:     c.Filter.RarePrice,
		query.FieldLand:     c.Filter.LandPrice,
	})
}

// SetQueryFilter stores a validated filter back into the config.
func (c *Config) SetQueryFilter(f query.FilterConfig) {
	c.Filter = FilterConfig{
		IncludeSilverBordered: f.IncludeSilverBordered,
		CommonPrice:           query.FormatPrice(f.CommonPrice),
		UncommonPrice:         query.FormatPrice(f.UncommonPrice),
		RarePrice:             query.FormatPrice(f.RarePrice),
		LandPrice:             query.FormatPrice(f.LandPrice),
	}
}

// RequestTimeout returns the request timeout as a duration.
func (c *Config) RequestTimeout() (time.Duration, error) {
	return parseDuration(c.Scryfall.RequestTimeout)
}

// RateLimitDelay returns the pause between requests as a duration.
func (c *Config) RateLimitDelay() (time.Duration, error) {
	return parseDuration(c.Scryfall.RateLimitDelay)
}

// ClientConfig returns the Scryfall client settings.
func (c *Config) ClientConfig() (scryfall.ClientConfig, error) {
	timeout, err := c.RequestTimeout()
	if err != nil {
		return scryfall.ClientConfig{}, fmt.Errorf("invalid request timeout %q: %w", c.Scryfall.RequestTimeout, err)
	}
	delay, err := c.RateLimitDelay()
	if err != nil {
		return scryfall.ClientConfig{}, fmt.Errorf("invalid rate limit delay %q: %w", c.Scryfall.RateLimitDelay, err)
	}
	return scryfall.ClientConfig{
		BaseURL:        c.Scryfall.BaseURL,
		RequestTimeout: timeout,
		RateLimitDelay: delay,
	}, nil
}

// Budget returns the sampling budget.
func (c *Config) Budget() sampler.Budget {
	return sampler.Budget{
		TargetTotal:        c.Sample.TargetTotal,
		DuplicateTolerance: c.Sample.DuplicateTolerance,
	}
}

// ExportOptions returns the export settings for the output file.
func (c *Config) ExportOptions() (*deckexport.ExportOptions, error) {
	format, err := deckexport.ParseFormat(c.Output.Format)
	if err != nil {
		return nil, err
	}
	return &deckexport.ExportOptions{
		Format:        format,
		IncludeHeader: c.Output.Title != "",
		Title:         c.Output.Title,
	}, nil
}

// parseDuration treats an empty string as zero, which selects the client default.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration cannot be negative")
	}
	return d, nil
}
