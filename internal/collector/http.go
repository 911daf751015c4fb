package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"MetalStack/internal/cache"
)

// NewHTTPClient builds the client shared by the HTTP fetchers, with optional
// proxy support.
func NewHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// cachedGetter performs GET requests through a response cache.
type cachedGetter struct {
	client *http.Client
	cache  cache.Cache
	ttl    time.Duration
	header http.Header
}

// get returns the body for endpoint?params. key identifies the request in the
// cache and must not carry credentials.
func (g *cachedGetter) get(ctx context.Context, key, endpoint string, params url.Values) ([]byte, error) {
	if !isFresh(ctx) {
		body, ok, err := g.cache.Get(key, g.ttl)
		if err != nil {
			log.WithError(err).Warn("cache read failed")
		} else if ok {
			log.WithField("key", key).Debug("cache hit")
			return body, nil
		}
	}

	u := endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	for k, vs := range g.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: API error %d: %s", ErrRateLimited, resp.StatusCode, string(body))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: API error %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
	return body, nil
}

// store caches a body that has been decoded successfully.
func (g *cachedGetter) store(key string, body []byte) {
	if err := g.cache.Put(key, body); err != nil {
		log.WithError(err).Warn("cache write failed")
	}
}
