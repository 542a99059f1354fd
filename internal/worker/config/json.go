package config

import (
	"encoding/json"
	"os"

	"noticeease/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	AppBaseURL      string `json:"app_base_url"`
	ProviderBaseURL string `json:"provider_base_url"`
	VAPIDPublicKey  string `json:"vapid_public_key"`
	DataDir         string `json:"data_dir"`
	GatewayAddr     string `json:"gateway_addr"`
	ManifestPath    string `json:"manifest_path"`
	NotifyURL       string `json:"notify_url"`
}

// parseJson overlays Config with values loaded from a JSON file selected
// via the -c or -config flags. Missing flag means no JSON is loaded.
// Read or unmarshal errors panic; callers should recover if desired.
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

	cfg.AppBaseURL = jc.AppBaseURL
	cfg.ProviderBaseURL = jc.ProviderBaseURL
	cfg.VAPIDPublicKey = jc.VAPIDPublicKey
	cfg.DataDir = jc.DataDir
	cfg.GatewayAddr = jc.GatewayAddr
	cfg.ManifestPath = jc.ManifestPath
	cfg.NotifyURL = jc.NotifyURL
}
