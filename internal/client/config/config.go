package config

import "time"

// Config holds runtime settings for the NoticeEase CLI.
//
// Fields:
//   - BackendBaseURL: base URL of the account/messaging backend.
//   - ScraperBaseURL: base URL of the notice scraper API.
//   - ProviderBaseURL: base URL of the push messaging provider.
//   - VAPIDPublicKey: application key sent when registering a device token.
//   - DataDir: directory for the local database, cookie and token state.
//   - RequestTimeout: per-request timeout for outbound HTTP calls.
type Config struct {
	BackendBaseURL  string
	ScraperBaseURL  string
	ProviderBaseURL string
	VAPIDPublicKey  string
	DataDir         string
	RequestTimeout  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendBaseURL = "http://127.0.0.1:4000"
	c.ScraperBaseURL = "http://127.0.0.1:5000"
	c.ProviderBaseURL = "http://127.0.0.1:7000"
	c.VAPIDPublicKey = ""
	c.DataDir = ".noticeease"
	c.RequestTimeout = 10 * time.Second
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
