package config

import "time"

// Config holds runtime settings for the contactkeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the contactkeeper HTTP API.
//   - RequestTimeout: upper bound for a single API call, retries included.
//   - OnlineCheckInterval: how often the client probes the server health endpoint.
//   - SessionFile: path of the local SQLite file holding the saved session.
type Config struct {
	ServerURL           string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	SessionFile         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.SessionFile = "contactkeeper.db"
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
