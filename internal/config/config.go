package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultTickers is the compiled-in panel of Argentine equities.
var DefaultTickers = []string{
	"ALUA", "BBAR", "BMA", "BYMA", "CEPU", "COME", "CRES", "CVH",
	"EDN", "GGAL", "LOMA", "MIRG", "PAMP", "SUPV", "TECO2", "TGNO4",
	"TGSU2", "TRAN", "TXAR", "VALO", "YPFD", "AGRO", "BHIP", "BOLT",
	"BPAT", "CGPA2", "CTIO", "DGCE", "FERR", "HARG", "INVJ", "LEDE",
	"LONG", "METR", "MOLA", "MOLI", "MORI", "OEST", "RICH", "SAMI",
}

const (
	DefaultBaseURL           = "https://data912.com"
	DefaultMaxRetries        = 3
	DefaultRequestTimeout    = 30 * time.Second
	DefaultInterRequestDelay = 400 * time.Millisecond
	DefaultRetryBackoff      = time.Second
	DefaultOutputPath        = "data.json"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL           string        `yaml:"base_url"`
		Tickers           []string      `yaml:"tickers"`
		MaxRetries        int           `yaml:"max_retries"`
		RequestTimeout    time.Duration `yaml:"request_timeout"`
		InterRequestDelay time.Duration `yaml:"inter_request_delay"`
		RetryBackoff      time.Duration `yaml:"retry_backoff"`
	} `yaml:"data_source"`
	Output struct {
		Path       string `yaml:"path"`
		PanelTitle string `yaml:"panel_title"`
	} `yaml:"output"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // console or json
		File   string `yaml:"file"`
	} `yaml:"log"`
}

// Load starts from Default, then applies the YAML config at path and
// environment variable overrides (after reading an optional .env file).
// Only keys that are present override a default, so an explicit zero such
// as `inter_request_delay: 0s` is kept. A missing file is not an error.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration populated only with defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.DataSource.BaseURL = DefaultBaseURL
	cfg.DataSource.Tickers = append([]string(nil), DefaultTickers...)
	cfg.DataSource.MaxRetries = DefaultMaxRetries
	cfg.DataSource.RequestTimeout = DefaultRequestTimeout
	cfg.DataSource.InterRequestDelay = DefaultInterRequestDelay
	cfg.DataSource.RetryBackoff = DefaultRetryBackoff
	cfg.Output.Path = DefaultOutputPath
	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	return cfg
}

func (c *Config) applyEnv() error {
	var errs error

	if v := os.Getenv("BREADTH_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("BREADTH_TICKERS"); v != "" {
		c.DataSource.Tickers = ParseTickers(v)
	}
	if v := os.Getenv("BREADTH_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("BREADTH_MAX_RETRIES: %w", err))
		} else {
			c.DataSource.MaxRetries = n
		}
	}
	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"BREADTH_REQUEST_TIMEOUT", &c.DataSource.RequestTimeout},
		{"BREADTH_INTER_REQUEST_DELAY", &c.DataSource.InterRequestDelay},
		{"BREADTH_RETRY_BACKOFF", &c.DataSource.RetryBackoff},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		dur, err := time.ParseDuration(v)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", d.env, err))
			continue
		}
		*d.dst = dur
	}
	if v := os.Getenv("BREADTH_OUTPUT_PATH"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.Log.File = v
	}

	return errs
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs error

	if u, err := url.Parse(c.DataSource.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = errors.Join(errs, fmt.Errorf("data_source.base_url must be an absolute url, got %q", c.DataSource.BaseURL))
	}
	if len(c.DataSource.Tickers) == 0 {
		errs = errors.Join(errs, fmt.Errorf("data_source.tickers cannot be empty"))
	}
	for _, t := range c.DataSource.Tickers {
		if strings.TrimSpace(t) == "" || strings.ContainsAny(t, "/?# ") {
			errs = errors.Join(errs, fmt.Errorf("data_source.tickers: invalid symbol %q", t))
		}
	}
	if c.DataSource.MaxRetries < 1 {
		errs = errors.Join(errs, fmt.Errorf("data_source.max_retries must be at least 1"))
	}
	if c.DataSource.RequestTimeout <= 0 {
		errs = errors.Join(errs, fmt.Errorf("data_source.request_timeout must be positive"))
	}
	if c.DataSource.InterRequestDelay < 0 {
		errs = errors.Join(errs, fmt.Errorf("data_source.inter_request_delay cannot be negative"))
	}
	if c.DataSource.RetryBackoff < 0 {
		errs = errors.Join(errs, fmt.Errorf("data_source.retry_backoff cannot be negative"))
	}
	if c.Output.Path == "" {
		errs = errors.Join(errs, fmt.Errorf("output.path cannot be empty"))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = errors.Join(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}

	return errs
}

// ParseTickers splits a comma-separated symbol list, trimming blanks and
// upper-casing symbols.
func ParseTickers(s string) []string {
	parts := strings.Split(s, ",")
	tickers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			tickers = append(tickers, p)
		}
	}
	return tickers
}
