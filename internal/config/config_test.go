package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.DataSource.BaseURL)
	assert.Equal(t, DefaultTickers, cfg.DataSource.Tickers)
	assert.Equal(t, 40, len(cfg.DataSource.Tickers))
	assert.Equal(t, 3, cfg.DataSource.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.DataSource.RequestTimeout)
	assert.Equal(t, 400*time.Millisecond, cfg.DataSource.InterRequestDelay)
	assert.Equal(t, time.Second, cfg.DataSource.RetryBackoff)
	assert.Equal(t, "data.json", cfg.Output.Path)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
data_source:
  base_url: http://localhost:9000
  tickers: [GGAL, YPFD]
  max_retries: 5
  request_timeout: 10s
  retry_backoff: 250ms
output:
  path: out/report.json
`
	assert.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("BREADTH_TICKERS", " bma, alua ,")
	t.Setenv("BREADTH_INTER_REQUEST_DELAY", "1s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.DataSource.BaseURL)
	assert.Equal(t, []string{"BMA", "ALUA"}, cfg.DataSource.Tickers)
	assert.Equal(t, 5, cfg.DataSource.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.DataSource.RequestTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.DataSource.RetryBackoff)
	assert.Equal(t, time.Second, cfg.DataSource.InterRequestDelay)
	assert.Equal(t, "out/report.json", cfg.Output.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ExplicitZeroKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
data_source:
  inter_request_delay: 0s
`
	assert.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("BREADTH_RETRY_BACKOFF", "0")

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.DataSource.InterRequestDelay)
	assert.Equal(t, time.Duration(0), cfg.DataSource.RetryBackoff)
	assert.Equal(t, DefaultRequestTimeout, cfg.DataSource.RequestTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("BREADTH_MAX_RETRIES", "many")
	t.Setenv("BREADTH_RETRY_BACKOFF", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "BREADTH_MAX_RETRIES"))
	assert.True(t, strings.Contains(err.Error(), "BREADTH_RETRY_BACKOFF"))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("data_source: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(cfg *Config)
		wantErr     bool
		errContains []string
	}{
		{
			name:    "defaults are valid",
			modify:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name:        "relative base url",
			modify:      func(cfg *Config) { cfg.DataSource.BaseURL = "data912.com" },
			wantErr:     true,
			errContains: []string{"base_url"},
		},
		{
			name:        "bad ticker",
			modify:      func(cfg *Config) { cfg.DataSource.Tickers = []string{"GGAL", "A/B"} },
			wantErr:     true,
			errContains: []string{`invalid symbol "A/B"`},
		},
		{
			name: "multiple invalid fields",
			modify: func(cfg *Config) {
				cfg.DataSource.Tickers = nil
				cfg.DataSource.MaxRetries = 0
				cfg.DataSource.RequestTimeout = 0
				cfg.DataSource.InterRequestDelay = -time.Second
				cfg.DataSource.RetryBackoff = -time.Second
				cfg.Output.Path = ""
				cfg.Log.Format = "xml"
			},
			wantErr: true,
			errContains: []string{
				"tickers cannot be empty",
				"max_retries must be at least 1",
				"request_timeout must be positive",
				"inter_request_delay cannot be negative",
				"retry_backoff cannot be negative",
				"output.path cannot be empty",
				"log.format",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				for _, substr := range tt.errContains {
					assert.True(t, strings.Contains(err.Error(), substr))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseTickers(t *testing.T) {
	assert.Equal(t, []string{"GGAL", "YPFD"}, ParseTickers("ggal, YPFD,,"))
	assert.Equal(t, []string{}, ParseTickers(" "))
}
