// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package tvmaze

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinemora/internal/cache"
	"github.com/tomtom215/cinemora/internal/config"
	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/metrics"
	"github.com/tomtom215/cinemora/internal/models"
)

var (
	// ErrNotFound is returned when TVMaze answers 404.
	ErrNotFound = errors.New("tvmaze: not found")

	// ErrUnavailable wraps failures that are not the caller's fault: the
	// breaker is open, the upstream keeps rate limiting or returns 5xx.
	ErrUnavailable = errors.New("tvmaze: service unavailable")
)

// maxErrorBodySize limits how much of an error response is kept.
const maxErrorBodySize = 64 * 1024

// Client talks to the public TVMaze API. All methods are safe for
// concurrent use. Outbound calls are paced by a token bucket, guarded by
// a circuit breaker and coalesced per cache key.
type Client struct {
	baseURL       string
	userAgent     string
	http          *http.Client
	limiter       *rate.Limiter
	breaker       *gobreaker.CircuitBreaker[[]byte]
	group         singleflight.Group
	cache         cache.Cacher
	cacheTTL      time.Duration
	searchTimeout time.Duration
	pageTimeout   time.Duration

	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient builds a client from cfg. c may be nil to disable caching.
func NewClient(cfg *config.TVMazeConfig, c cache.Cacher) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	searchTimeout := cfg.SearchTimeout
	if searchTimeout <= 0 {
		searchTimeout = 10 * time.Second
	}
	pageTimeout := cfg.PageTimeout
	if pageTimeout <= 0 {
		pageTimeout = 15 * time.Second
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:      cfg.UserAgent,
		http:           &http.Client{Timeout: 30 * time.Second},
		limiter:        rate.NewLimiter(limit, 1),
		breaker:        newBreaker(),
		cache:          c,
		cacheTTL:       cfg.CacheTTL,
		searchTimeout:  searchTimeout,
		pageTimeout:    pageTimeout,
		maxRetries:     3,
		retryBaseDelay: time.Second,
	}
}

// SearchShows runs a TVMaze search and returns the clean matches mapped to
// catalog series. A blank query returns an empty slice without a request.
func (c *Client) SearchShows(ctx context.Context, query string) ([]models.Series, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []models.Series{}, nil
	}

	key := "tvmaze:search:" + strings.ToLower(q)
	if out, ok := lookup[[]models.Series](ctx, c, key); ok {
		return out, nil
	}

	v, err := c.shared(ctx, key, func(ctx context.Context) (interface{}, error) {
		var results []searchResult
		params := url.Values{"q": {q}}
		if err := c.getJSON(ctx, "search", "/search/shows?"+params.Encode(), c.searchTimeout, &results); err != nil {
			return nil, err
		}
		shows := make([]*Show, 0, len(results))
		for _, r := range results {
			if r.Show != nil {
				shows = append(shows, r.Show)
			}
		}
		out := CleanSeries(shows)
		c.store(ctx, key, out)
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("search shows %q: %w", q, err)
	}
	return v.([]models.Series), nil
}

// GetShow fetches one show. It returns (nil, nil) when the show exists
// but is filtered out, and ErrNotFound when TVMaze does not know it.
func (c *Client) GetShow(ctx context.Context, id int64) (*models.Series, error) {
	key := "tvmaze:show:" + strconv.FormatInt(id, 10)
	if out, ok := lookup[models.Series](ctx, c, key); ok {
		return &out, nil
	}

	v, err := c.shared(ctx, key, func(ctx context.Context) (interface{}, error) {
		var show Show
		if err := c.getJSON(ctx, "show", "/shows/"+strconv.FormatInt(id, 10), c.searchTimeout, &show); err != nil {
			return nil, err
		}
		if !IsCleanShow(&show) {
			return (*models.Series)(nil), nil
		}
		mapped := MapShow(&show)
		c.store(ctx, key, mapped)
		return &mapped, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get show %d: %w", id, err)
	}
	return v.(*models.Series), nil
}

// ShowsPage returns one page of the TVMaze show index. Pages past the end
// of the index answer 404, which is reported as an empty page.
func (c *Client) ShowsPage(ctx context.Context, page int) ([]*Show, error) {
	var shows []*Show
	err := c.getJSON(ctx, "shows", "/shows?page="+strconv.Itoa(page), c.pageTimeout, &shows)
	if errors.Is(err, ErrNotFound) {
		return []*Show{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("shows page %d: %w", page, err)
	}
	return shows, nil
}

// shared runs fetch once per key for all concurrent callers. The fetch is
// detached from the caller's cancellation, so one client disconnecting does
// not fail the others; each fetch still has its own request timeout. A
// canceled caller stops waiting and gets its context error.
func (c *Client) shared(ctx context.Context, key string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		return fetch(detached)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func lookup[T any](ctx context.Context, c *Client, key string) (T, bool) {
	if c.cache == nil {
		var zero T
		return zero, false
	}
	out, ok := cache.GetJSON[T](ctx, c.cache, key)
	metrics.RecordCacheLookup("tvmaze", ok)
	return out, ok
}

func (c *Client) store(ctx context.Context, key string, value interface{}) {
	if c.cache == nil {
		return
	}
	if err := cache.SetJSON(ctx, c.cache, key, value, c.cacheTTL); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Failed to cache TVMaze response")
	}
}

// getJSON performs a paced, breaker-guarded GET and decodes the body.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, timeout time.Duration, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	body, err := c.execute(func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return c.doRequestWithRateLimit(ctx, c.baseURL+path)
	})
	recorded := err
	if errors.Is(err, ErrNotFound) {
		recorded = nil
	}
	metrics.RecordTVMazeRequest(endpoint, time.Since(start), recorded)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// doRequestWithRateLimit performs a GET, retrying HTTP 429 with exponential
// backoff (1s, 2s, 4s) or the server's Retry-After.
func (c *Client) doRequestWithRateLimit(ctx context.Context, reqURL string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			defer resp.Body.Close()
			return io.ReadAll(resp.Body)
		case resp.StatusCode == http.StatusNotFound:
			_ = resp.Body.Close()
			return nil, ErrNotFound
		case resp.StatusCode != http.StatusTooManyRequests:
			body := readBodyForError(resp.Body)
			_ = resp.Body.Close()
			err := fmt.Errorf("request failed with status %d: %s", resp.StatusCode, body)
			if resp.StatusCode >= 500 {
				err = errors.Join(ErrUnavailable, err)
			}
			return nil, err
		}

		_ = resp.Body.Close()
		if attempt >= c.maxRetries {
			return nil, errors.Join(ErrUnavailable, fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries))
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// readBodyForError reads at most 64KB of an error response.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
