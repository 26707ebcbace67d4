package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Getter is the HTTP GET capability the chart pipeline depends on. out must
// be a pointer to the expected shape.
type Getter interface {
	Get(ctx context.Context, url string, useCache bool, out any) error
}

// Client fetches PokeAPI resources, optionally through a Cache.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Cache   Cache // nil disables caching
	Headers map[string]string
	Log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, cache Cache, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Cache:   cache,
		Log:     log,
	}
}

var defaultHeaders = map[string]string{
	"Content-Type": "application/json",
	"Accept":       "application/json",
}

// Get decodes the JSON body at url into out. Relative URLs are resolved
// against BaseURL. With useCache, a cached body short-circuits the request
// and fresh bodies are stored; cache failures are logged, never returned.
func (c *Client) Get(ctx context.Context, url string, useCache bool, out any) error {
	full := c.Resolve(url)

	if useCache && c.Cache != nil {
		body, ok, err := c.Cache.Get(ctx, full)
		if err != nil {
			c.Log.Warn().Err(err).Str("url", full).Msg("cache read failed")
		}
		if ok {
			if err := json.Unmarshal(body, out); err == nil {
				return nil
			}
			c.Log.Warn().Str("url", full).Msg("cached body undecodable, refetching")
		}
	}

	body, err := c.fetch(ctx, full)
	if err != nil {
		c.Log.Error().Err(err).Str("url", full).Msg("GET error")
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &NetworkError{URL: full, Err: fmt.Errorf("decode: %w", err)}
	}

	if useCache && c.Cache != nil {
		if err := c.Cache.Put(ctx, full, body); err != nil {
			c.Log.Warn().Err(err).Str("url", full).Msg("cache write failed")
		}
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("build request: %w", err)}
	}
	for k, v := range c.headers() {
		req.Header.Set(k, v)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &NetworkError{URL: url, Status: resp.StatusCode, Err: errors.New(strings.TrimSpace(string(body)))}
	}
	return body, nil
}

func (c *Client) headers() map[string]string {
	out := maps.Clone(defaultHeaders)
	maps.Copy(out, c.Headers)
	return out
}

// Resolve returns the absolute URL a request for url goes to; it is also the
// cache key.
func (c *Client) Resolve(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") || c.BaseURL == "" {
		return url
	}
	return c.BaseURL + "/" + strings.TrimLeft(url, "/")
}
