package config

import "time"

// Config holds runtime settings for the CommHub CLI.
//
// Fields:
//   - APIBaseURL: root URL of the CommHub REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: location of the local credential database.
//   - KeyPath: location of the sealing-key file for stored credentials.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabasePath   string
	KeyPath        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "commhub.db"
	c.KeyPath = "commhub.key"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
