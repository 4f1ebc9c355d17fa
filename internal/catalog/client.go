// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/models"
)

// Endpoint labels used in metrics and logs.
const (
	endpointSearch          = "search"
	endpointRecommendations = "recommendations"
	endpointDetail          = "detail"
	endpointTop             = "top"
	endpointBrowse          = "browse"
)

// Client talks to the Jikan v4 API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[interface{}]
	maxAttempts int
	backoff     time.Duration
	searchLimit int
	logger      zerolog.Logger

	// sleep waits for d or until ctx is done; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the component logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Jikan client from configuration.
func NewClient(cfg config.CatalogConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1)),
		maxAttempts: max(cfg.MaxAttempts, 1),
		backoff:     cfg.Backoff,
		searchLimit: cfg.SearchLimit,
		logger:      logging.WithComponent("catalog"),
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = newBreaker(c.logger, cfg.BreakerFailureRatio, cfg.BreakerMinRequests, cfg.BreakerOpenTimeout)
	return c
}

// SearchAnime searches titles. Results keep Jikan's relevance order.
func (c *Client) SearchAnime(ctx context.Context, query string, limit int) ([]models.AnimeRecord, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var out jikanList[jikanAnime]
	if err := c.get(ctx, endpointSearch, "/anime", params, &out); err != nil {
		return nil, err
	}
	return toRecords(out.Data), nil
}

// GetRecommendations returns the related-title seeds for an anime.
func (c *Client) GetRecommendations(ctx context.Context, id int) ([]models.RecommendationSeed, error) {
	var out jikanList[jikanRecommendation]
	if err := c.get(ctx, endpointRecommendations, fmt.Sprintf("/anime/%d/recommendations", id), nil, &out); err != nil {
		return nil, err
	}
	seeds := make([]models.RecommendationSeed, 0, len(out.Data))
	for i := range out.Data {
		if out.Data[i].Entry.MalID == 0 || out.Data[i].Entry.Title == "" {
			continue
		}
		seeds = append(seeds, out.Data[i].toSeed())
	}
	return seeds, nil
}

// BreakerState reports the circuit breaker state: closed, half-open or open.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// GetAnime fetches full detail for one anime.
func (c *Client) GetAnime(ctx context.Context, id int) (models.AnimeRecord, error) {
	var out jikanSingle[jikanAnime]
	if err := c.get(ctx, endpointDetail, fmt.Sprintf("/anime/%d", id), nil, &out); err != nil {
		return models.AnimeRecord{}, err
	}
	// A record without an id or title cannot be shown.
	if out.Data == nil || out.Data.MalID == 0 || out.Data.Title == "" {
		return models.AnimeRecord{}, ErrNotFound
	}
	return out.Data.toRecord(), nil
}

// TopAnime returns the top-ranked anime.
func (c *Client) TopAnime(ctx context.Context, limit int) ([]models.AnimeRecord, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var out jikanList[jikanAnime]
	if err := c.get(ctx, endpointTop, "/top/anime", params, &out); err != nil {
		return nil, err
	}
	return toRecords(out.Data), nil
}

// BrowseAnime returns one page of the filtered anime search.
func (c *Client) BrowseAnime(ctx context.Context, q models.BrowseQuery) (models.AnimePage, error) {
	page := max(q.Page, 1)
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.SFW {
		params.Set("sfw", "true")
	}
	if q.Genres != "" {
		params.Set("genres", q.Genres)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	if q.OrderBy != "" {
		params.Set("order_by", q.OrderBy)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}

	var out jikanList[jikanAnime]
	if err := c.get(ctx, endpointBrowse, "/anime", params, &out); err != nil {
		return models.AnimePage{}, err
	}
	return models.AnimePage{
		Items:      toRecords(out.Data),
		Pagination: out.Pagination.toModel(page),
	}, nil
}

func toRecords(in []jikanAnime) []models.AnimeRecord {
	out := make([]models.AnimeRecord, 0, len(in))
	for i := range in {
		if in[i].MalID == 0 || in[i].Title == "" {
			continue
		}
		out = append(out, in[i].toRecord())
	}
	return out
}

// get performs one logical GET through the breaker and decodes the body
// into out.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	start := time.Now()
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.doWithRetry(ctx, endpoint, reqURL, out)
	})
	c.recordOutcome(endpoint, err, time.Since(start))
	return err
}

func (c *Client) recordOutcome(endpoint string, err error, elapsed time.Duration) {
	outcome := "success"
	switch {
	case err == nil:
	case isBreakerRejection(err):
		outcome = "rejected"
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case isClientError(err):
		outcome = "client_error"
	default:
		outcome = "failure"
	}
	if outcome == "success" || outcome == "not_found" || outcome == "client_error" {
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	} else if outcome == "failure" {
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
	}
	metrics.RecordCatalogRequest(endpoint, outcome, elapsed)
}

// doWithRetry issues the request up to maxAttempts times. Between attempts
// it waits backoff x attempt, or the server's Retry-After on a 429.
func (c *Client) doWithRetry(ctx context.Context, endpoint, reqURL string, out interface{}) error {
	log := logging.Scoped(ctx, c.logger)

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retryAfter, err := c.doOnce(ctx, endpoint, reqURL, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == c.maxAttempts {
			break
		}

		delay := c.backoff * time.Duration(attempt)
		if retryAfter > 0 {
			delay = retryAfter
		}
		log.Warn().Err(err).
			Str("endpoint", endpoint).
			Int("attempt", attempt).
			Int("max_attempts", c.maxAttempts).
			Dur("delay", delay).
			Msg("Catalog request failed, retrying")
		metrics.RecordCatalogRetry(endpoint)

		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
	}
	return lastErr
}

// doOnce performs a single HTTP attempt. The returned duration is the
// server's Retry-After hint, if any.
func (c *Client) doOnce(ctx context.Context, endpoint, reqURL string, out interface{}) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("catalog %s: request failed: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return 0, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &HTTPStatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       readBodyForError(resp.Body),
		}
		return parseRetryAfter(resp.Header.Get("Retry-After")), statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, &DecodeError{Endpoint: endpoint, Err: err}
	}
	return 0, nil
}

// parseRetryAfter reads the delay-seconds form of Retry-After (RFC 9110).
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
