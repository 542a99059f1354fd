package config

// Config holds runtime settings for the NoticeEase background worker.
//
// Fields:
//   - AppBaseURL: origin the asset gateway proxies and caches.
//   - ProviderBaseURL: base URL of the push messaging provider.
//   - VAPIDPublicKey: application key used when re-registering a token.
//   - DataDir: directory for the asset cache and token state.
//   - GatewayAddr: listen address of the local asset gateway.
//   - ManifestPath: path to the precache manifest JSON.
//   - NotifyURL: shoutrrr service URL notifications are delivered to.
type Config struct {
	AppBaseURL      string
	ProviderBaseURL string
	VAPIDPublicKey  string
	DataDir         string
	GatewayAddr     string
	ManifestPath    string
	NotifyURL       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.AppBaseURL = "http://127.0.0.1:3000"
	c.ProviderBaseURL = "http://127.0.0.1:7000"
	c.VAPIDPublicKey = ""
	c.DataDir = ".noticeease"
	c.GatewayAddr = "127.0.0.1:8090"
	c.ManifestPath = "precache-manifest.json"
	c.NotifyURL = ""
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
