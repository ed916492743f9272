// Package config handles configuration for the SafeRide CLI client.
package config

import "time"

// Config holds runtime settings for the SafeRide CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend REST endpoint.
//   - RequestTimeout: per-request deadline for backend calls.
//   - TokenStorePath: path of the local SQLite file holding the saved session.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	TokenStorePath     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.TokenStorePath = "saferide.db"
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
