// Package catalog proxies the TMDB API behind an in-memory TTL cache.
//
// All queries go through a single fetch primitive keyed by the full
// request signature (endpoint + sorted params), so distinct pages,
// search terms and genres never collide. Responses are cached for 30
// minutes; upstream failures are never cached and never retried.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/RusilKoirala/rusil-stream/internal/metrics"
)

const (
	defaultCacheTTL = 30 * time.Minute
	requestTimeout  = 10 * time.Second
)

// UnavailableError reports a non-2xx response or transport failure from
// the upstream catalog API.
type UnavailableError struct {
	Status int
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog unavailable: %v", e.Err)
	}
	return fmt.Sprintf("catalog unavailable: upstream status %d", e.Status)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Client wraps the TMDB API. Construct with New; a Client is safe for
// concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *ttlCache
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests inject a
// counting transport).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock replaces the cache clock.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.cache.now = now }
}

// WithTTL overrides the 30 minute cache TTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache.ttl = ttl }
}

func New(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      newTTLCache(defaultCacheTTL, time.Now),
		logger:     logger.With("component", "catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch is the single primitive behind every catalog query. It builds
// the canonical request signature from endpoint plus all params
// (url.Values.Encode sorts keys), serves an unexpired cached payload
// without a network call, and otherwise performs one GET against the
// upstream. Only 2xx responses are cached.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api_key", c.apiKey)

	sig := endpoint + "?" + q.Encode()

	if payload, ok := c.cache.get(sig); ok {
		metrics.CatalogCacheHits.Inc()
		return payload, nil
	}
	metrics.CatalogCacheMisses.Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+sig, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.CatalogUpstreamDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	metrics.CatalogUpstreamDuration.WithLabelValues(strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("catalog upstream error", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, &UnavailableError{Status: resp.StatusCode}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}

	c.cache.set(sig, payload)
	return payload, nil
}
