// Package config loads runtime settings for the dailyDo CLI from defaults,
// an optional JSON file and command-line flags, in that order of precedence.
package config

// Config holds runtime settings for the dailyDo CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend HTTP endpoint.
type Config struct {
	ServerEndpointAddr string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
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
