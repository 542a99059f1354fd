// Package assetcache implements the worker's offline asset gateway: a
// local HTTP front over the app origin that precaches a manifest of
// build assets and falls back to the cached copy when the origin is
// unreachable.
package assetcache

import (
	"encoding/json"
	"fmt"
	"os"
)

// Entry is one precache manifest record. URL is an origin-relative path,
// Revision changes whenever the asset content changes.
type Entry struct {
	URL      string `json:"url"`
	Revision string `json:"revision"`
}

// LoadManifest reads a precache manifest from path.
func LoadManifest(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	for _, e := range entries {
		if e.URL == "" {
			return nil, fmt.Errorf("manifest entry without url")
		}
	}
	return entries, nil
}
