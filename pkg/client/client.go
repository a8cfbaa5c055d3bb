// Package client provides the PokéAPI list client with retry,
// error classification, and optional response caching.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/avdejs/pokefetch/pkg/cache"
)

// Prometheus metrics for list fetch operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_requests_total",
		Help: "Total PokéAPI requests by status",
	}, []string{"status"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pokeapi_request_duration_seconds",
		Help:    "PokéAPI list fetch duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_errors_total",
		Help: "Total PokéAPI errors by kind",
	}, []string{"kind"})
)

// Default endpoints and limits.
const (
	// DefaultBaseURL is the PokéAPI list endpoint.
	DefaultBaseURL = "https://pokeapi.co/api/v2/pokemon"

	// DefaultImageURLTemplate is the official-artwork sprite location.
	// The trailing identifier of an entry URL is interpolated into it.
	DefaultImageURLTemplate = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%s.png"

	// DefaultLimit is the page size used when the caller passes none.
	DefaultLimit = 100
)

// Client fetches paginated Pokémon lists.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the list endpoint, without query parameters.
	BaseURL string

	// ImageURLTemplate is the artwork URL with one %s verb for the identifier.
	ImageURLTemplate string

	// UserAgent header sent with every request.
	UserAgent string

	// Timeout applies to each individual HTTP attempt.
	Timeout time.Duration

	// Retry controls transient-failure retry behavior.
	Retry RetryConfig

	// Cache is an optional page cache. Nil disables caching.
	Cache *cache.Manager
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:          DefaultBaseURL,
		ImageURLTemplate: DefaultImageURLTemplate,
		UserAgent:        userAgent,
		Timeout:          30 * time.Second,
		Retry:            DefaultRetryConfig(),
	}
}

// New creates a new PokéAPI client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.ImageURLTemplate == "" {
		cfg.ImageURLTemplate = DefaultImageURLTemplate
	}
	if !strings.Contains(cfg.ImageURLTemplate, "%s") {
		return nil, fmt.Errorf("image URL template must contain a %%s verb")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	logger := log.With().Str("component", "pokeapi-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  cfg.Cache,
		config: cfg,
		logger: logger,
	}, nil
}

// FetchList fetches one page of the Pokémon index.
//
// Transient failures (5xx, transport errors) are retried with a fixed
// delay; everything else fails immediately with a classified *APIError.
func (c *Client) FetchList(ctx context.Context, offset, limit int) (*Page, error) {
	startTime := time.Now()
	defer func() {
		requestDuration.Observe(time.Since(startTime).Seconds())
	}()

	key := cache.PageKey{Offset: offset, Limit: limit}
	if c.cache != nil {
		if page, err := c.getCached(ctx, key); err == nil {
			return page, nil
		}
	}

	reqURL, err := c.listURL(offset, limit)
	if err != nil {
		errorsTotal.WithLabelValues(string(KindUnknown)).Inc()
		return nil, &APIError{Kind: KindUnknown, Reason: "build request URL", Err: err}
	}

	var page *Page
	var apiErr *APIError

	attempts, retryErr := retryTransient(ctx, c.config.Retry, func(attempt int) (ErrorKind, error) {
		page, apiErr = c.fetchOnce(ctx, reqURL, attempt)
		if apiErr != nil {
			errorsTotal.WithLabelValues(string(apiErr.Kind)).Inc()
			return apiErr.Kind, apiErr
		}
		return "", nil
	})

	if retryErr != nil {
		// Cancellation during the retry delay surfaces as-is, not as the
		// last classified failure.
		if apiErr != nil && !errors.Is(retryErr, ErrContextCancelled) {
			apiErr.Attempts = attempts
			return nil, apiErr
		}
		return nil, retryErr
	}

	if c.cache != nil {
		c.storeCached(ctx, key, page)
	}

	return page, nil
}

// fetchOnce performs a single HTTP attempt and classifies the outcome.
func (c *Client) fetchOnce(ctx context.Context, reqURL string, attempt int) (*Page, *APIError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &APIError{Kind: KindUnknown, Reason: "create request", Err: err}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("url", reqURL).
		Int("attempt", attempt).
		Msg("Executing list request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", reqURL).Msg("HTTP request failed")
		requestsTotal.WithLabelValues("network_error").Inc()
		return nil, &APIError{Kind: KindNetwork, Reason: "transport failure", Err: err}
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if kind := classifyStatus(resp.StatusCode); kind != "" {
		c.logger.Warn().
			Str("url", reqURL).
			Int("status", resp.StatusCode).
			Str("error_kind", string(kind)).
			Msg("List request error")
		return nil, &APIError{
			Kind:       kind,
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Reason: "read response body", Err: err}
	}

	page, err := parsePage(body, c.config.ImageURLTemplate)
	if err != nil {
		// Malformed JSON is not transient
		return nil, &APIError{Kind: KindInvalidResponse, Reason: "malformed list body", Err: err}
	}

	return page, nil
}

// listURL builds the paginated list URL.
func (c *Client) listURL(offset, limit int) (string, error) {
	u, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// getCached returns the cached page for key, or an error on miss.
func (c *Client) getCached(ctx context.Context, key cache.PageKey) (*Page, error) {
	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache get error")
		}
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(entry.Data, &page); err != nil {
		// Corrupt entry, drop it and refetch
		_ = c.cache.Delete(ctx, key)
		return nil, err
	}

	c.logger.Debug().Str("key", key.String()).Msg("Serving page from cache")
	return &page, nil
}

// storeCached caches the parsed page under key. Failures only log;
// caching is best effort.
func (c *Client) storeCached(ctx context.Context, key cache.PageKey, page *Page) {
	entry, err := cache.NewEntry(page)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to create cache entry")
		return
	}

	if err := c.cache.Set(ctx, key, entry); err != nil {
		c.logger.Warn().Err(err).Str("key", key.String()).Msg("Failed to cache page")
		return
	}

	c.logger.Debug().
		Str("key", key.String()).
		Int("entries", len(page.Pokemon)).
		Msg("Cached page")
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
