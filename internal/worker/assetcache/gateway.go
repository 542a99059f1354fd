package assetcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"noticeease/internal/logging"
)

// shellURL is the cached document served when the origin is unreachable
// and the request asks for a page.
const shellURL = "/index.html"

// Gateway is the local HTTP front over the app origin. Requests for
// precached assets are answered network-first with a cache fallback;
// everything else is network-only, except page requests, which fall back
// to the cached app shell.
type Gateway struct {
	origin    string
	cache     *Cache
	precached map[string]string
	httpc     *http.Client
	logger    logging.Logger
	echo      *echo.Echo
}

// NewGateway builds a gateway over origin with the given precache
// manifest.
func NewGateway(origin string, cache *Cache, manifest []Entry, logger logging.Logger) *Gateway {
	precached := make(map[string]string, len(manifest))
	for _, e := range manifest {
		precached[e.URL] = e.Revision
	}

	g := &Gateway{
		origin:    strings.TrimRight(origin, "/"),
		cache:     cache,
		precached: precached,
		httpc:     &http.Client{},
		logger:    logger,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Any("/*", g.handle)
	g.echo = e

	return g
}

// Echo exposes the underlying server for startup and shutdown.
func (g *Gateway) Echo() *echo.Echo {
	return g.echo
}

func (g *Gateway) fetch(ctx context.Context, url string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.origin+url, nil)
	if err != nil {
		return "", nil, err
	}

	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}
	return resp.Header.Get(echo.HeaderContentType), body, nil
}

// Install precaches every manifest entry. Any single failure fails the
// install; a partial precache must not be activated.
func (g *Gateway) Install(ctx context.Context) error {
	for url, revision := range g.precached {
		cached, err := g.cache.Get(url)
		if err != nil {
			return err
		}
		if cached != nil && cached.Revision == revision {
			continue
		}

		contentType, body, err := g.fetch(ctx, url)
		if err != nil {
			return fmt.Errorf("install: %w", err)
		}
		if err := g.cache.Put(url, revision, contentType, body); err != nil {
			return err
		}
		g.logger.Debug(ctx, "precached asset", "url", url, "revision", revision)
	}
	return nil
}

// Activate drops cached assets that are no longer in the manifest or
// whose revision went stale.
func (g *Gateway) Activate(ctx context.Context) error {
	urls, err := g.cache.URLs()
	if err != nil {
		return err
	}

	for _, url := range urls {
		revision, ok := g.precached[url]
		if ok {
			cached, err := g.cache.Get(url)
			if err != nil {
				return err
			}
			if cached != nil && cached.Revision == revision {
				continue
			}
		}
		if err := g.cache.Remove(url); err != nil {
			return err
		}
		g.logger.Debug(ctx, "evicted stale asset", "url", url)
	}
	return nil
}

// isPageRequest reports whether the request asks for a document rather
// than a subresource.
func isPageRequest(req *http.Request) bool {
	if req.Header.Get("Sec-Fetch-Dest") == "document" {
		return true
	}
	return strings.Contains(req.Header.Get(echo.HeaderAccept), "text/html")
}

func (g *Gateway) serveCached(c echo.Context, asset *CachedAsset) error {
	contentType := asset.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Blob(http.StatusOK, contentType, asset.Body)
}

// handle answers one request per the caching strategy.
func (g *Gateway) handle(c echo.Context) error {
	ctx := c.Request().Context()
	url := c.Request().URL.Path

	revision, precached := g.precached[url]

	contentType, body, err := g.fetch(ctx, url)
	if err == nil {
		if precached {
			if putErr := g.cache.Put(url, revision, contentType, body); putErr != nil {
				g.logger.Warn(ctx, "failed to refresh cached asset", "url", url, "error", putErr)
			}
		}
		if contentType == "" {
			contentType = echo.MIMEOctetStream
		}
		return c.Blob(http.StatusOK, contentType, body)
	}

	g.logger.Debug(ctx, "origin fetch failed", "url", url, "error", err)

	if precached {
		cached, cacheErr := g.cache.Get(url)
		if cacheErr == nil && cached != nil {
			return g.serveCached(c, cached)
		}
	}

	if isPageRequest(c.Request()) {
		shell, cacheErr := g.cache.Get(shellURL)
		if cacheErr == nil && shell != nil {
			return g.serveCached(c, shell)
		}
	}

	return c.NoContent(http.StatusBadGateway)
}
