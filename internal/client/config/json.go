package config

import (
	"encoding/json"
	"os"
	"time"

	"noticeease/internal/flagx"
	"noticeease/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "10s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	BackendBaseURL  string         `json:"backend_base_url"`
	ScraperBaseURL  string         `json:"scraper_base_url"`
	ProviderBaseURL string         `json:"provider_base_url"`
	VAPIDPublicKey  string         `json:"vapid_public_key"`
	DataDir         string         `json:"data_dir"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies known fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.BackendBaseURL = jc.BackendBaseURL
	cfg.ScraperBaseURL = jc.ScraperBaseURL
	cfg.ProviderBaseURL = jc.ProviderBaseURL
	cfg.VAPIDPublicKey = jc.VAPIDPublicKey
	cfg.DataDir = jc.DataDir
	cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
}
