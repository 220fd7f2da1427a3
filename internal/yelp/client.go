package yelp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dogparks/internal/observability"
)

const (
	DefaultBaseURL = "https://api.yelp.com"
	searchPath     = "/v3/businesses/search"

	// MaxLimit is the largest page Yelp serves for a business search.
	MaxLimit = 20

	SortByDistance = "distance"
)

var (
	// ErrUpstream marks every failure that originates at, or on the way to, Yelp.
	ErrUpstream     = errors.New("yelp upstream failure")
	ErrInvalidLimit = fmt.Errorf("search limit must be between 1 and %d", MaxLimit)
)

// APIError is returned for a non-2xx search response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yelp API error: status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error { return ErrUpstream }

// Query describes one business search. Empty fields are not sent.
type Query struct {
	Term       string
	Categories string
	Category   string
	Location   string
	SortBy     string
	Limit      int
}

func (q Query) values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("term", q.Term)
	set("categories", q.Categories)
	set("category", q.Category)
	set("location", q.Location)
	set("sort_by", q.SortBy)
	v.Set("limit", strconv.Itoa(q.Limit))
	return v
}

// label names the query in metrics; it is always one of a few fixed strings.
func (q Query) label() string {
	if q.Term != "" {
		return q.Term
	}
	return q.Categories
}

// Client searches businesses through the Yelp Fusion API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
}

// NewClient creates a Yelp client. Every request is bounded by timeout.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
	}
}

// Search runs one business search and returns the records in Yelp's order.
// Failures are not retried.
func (c *Client) Search(ctx context.Context, q Query) ([]Business, error) {
	if q.Limit < 1 || q.Limit > MaxLimit {
		return nil, ErrInvalidLimit
	}

	start := time.Now()
	businesses, err := c.doRequest(ctx, q)
	c.observe(q, start, len(businesses), err)
	return businesses, err
}

func (c *Client) doRequest(ctx context.Context, q Query) ([]Business, error) {
	fullURL := c.baseURL + searchPath + "?" + q.values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: search request: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}

	return searchResp.Businesses, nil
}

func (c *Client) observe(q Query, start time.Time, results int, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.SearchRequests.WithLabelValues(q.label(), outcome).Inc()
	c.metrics.SearchDuration.WithLabelValues(q.label()).Observe(time.Since(start).Seconds())
	if err == nil {
		c.metrics.SearchResults.Observe(float64(results))
	}
}
