package assetcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"noticeease/internal/filex"
)

// CachedAsset is a cached response body plus the metadata needed to
// serve and garbage-collect it.
type CachedAsset struct {
	URL         string
	ContentType string
	Revision    string
	Body        []byte
}

// sidecar is the on-disk metadata record stored next to each body file.
type sidecar struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Revision    string `json:"revision"`
}

// Cache is a disk-backed asset cache. Each asset is two files under dir:
// the raw body named by the SHA-256 of its URL, and a JSON sidecar.
type Cache struct {
	dir string
}

// NewCache opens (creating if needed) a cache under dir.
func NewCache(dir string) (*Cache, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &Cache{dir: abs}, nil
}

func (c *Cache) bodyPath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}

// Put stores (or replaces) the asset for url.
func (c *Cache) Put(url, revision, contentType string, body []byte) error {
	path := c.bodyPath(url)
	if err := os.WriteFile(path, body, 0o660); err != nil {
		return fmt.Errorf("write body %s: %w", url, err)
	}

	meta, err := json.Marshal(sidecar{URL: url, ContentType: contentType, Revision: revision})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path+".json", meta, 0o660); err != nil {
		return fmt.Errorf("write sidecar %s: %w", url, err)
	}
	return nil
}

// Get returns the cached asset for url, or (nil, nil) when absent.
func (c *Cache) Get(url string) (*CachedAsset, error) {
	path := c.bodyPath(url)

	meta, err := os.ReadFile(path + ".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var sc sidecar
	if err := json.Unmarshal(meta, &sc); err != nil {
		return nil, fmt.Errorf("corrupt sidecar %s: %w", url, err)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &CachedAsset{URL: sc.URL, ContentType: sc.ContentType, Revision: sc.Revision, Body: body}, nil
}

// Remove deletes the asset for url. Missing assets are not an error.
func (c *Cache) Remove(url string) error {
	path := c.bodyPath(url)
	for _, p := range []string{path + ".json", path} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// URLs lists the URLs of every cached asset.
func (c *Cache) URLs() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		meta, err := os.ReadFile(filepath.Join(c.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var sc sidecar
		if err := json.Unmarshal(meta, &sc); err != nil {
			continue
		}
		urls = append(urls, sc.URL)
	}
	return urls, nil
}
