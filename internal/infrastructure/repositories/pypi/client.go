// Package pypi looks up package releases on the PyPI JSON API.
package pypi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/tidwall/gjson"

	"github.com/anvaymayekar/sira-console/internal/manifest"
)

const (
	// DefaultBaseURL is the public package index.
	DefaultBaseURL = "https://pypi.org"

	requestTimeout  = 15 * time.Second
	cacheExpiration = 10 * time.Minute
	cachePurge      = 30 * time.Minute
)

// Client queries the index for the latest release of a package. Responses
// are cached so a doctor run probes each name at most once.
type Client struct {
	BaseURL string

	http  *http.Client
	cache *cache.Cache
}

// NewClient creates a client against the public index.
func NewClient() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
		cache:   cache.New(cacheExpiration, cachePurge),
	}
}

// LatestVersion returns the newest release of the named package.
func (it *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	canonical := manifest.CanonicalName(name)

	if cached, found := it.cache.Get(canonical); found {
		return cached.(string), nil
	}

	url := fmt.Sprintf("%s/pypi/%s/json", it.BaseURL, canonical)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := it.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch release data for %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for %q", resp.StatusCode, name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read release data for %q: %w", name, err)
	}

	version := gjson.GetBytes(body, "info.version").String()
	if version == "" {
		return "", fmt.Errorf("no release version found for %q", name)
	}

	it.cache.Set(canonical, version, cache.DefaultExpiration)

	return version, nil
}
