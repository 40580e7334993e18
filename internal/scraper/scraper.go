package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fifa-stats/internal/logger"
	"golang.org/x/time/rate"
)

const (
	BaseURL   = "https://sofifa.com"
	UserAgent = "Mozilla/5.0"
	Timeout   = 30 * time.Second
)

// StatusError is returned for any non-2xx response. Header is kept so the
// retry policy can read Retry-After from a 429.
type StatusError struct {
	URL    string
	Code   int
	Header http.Header
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.Code, e.URL)
}

// RateLimited reports whether the server asked us to slow down.
func (e *StatusError) RateLimited() bool {
	return e.Code == http.StatusTooManyRequests
}

// Client fetches sofifa pages.
type Client struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	log       *logger.Logger
	metrics   *logger.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithUserAgent overrides the identifying User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client = &http.Client{Timeout: d}
	}
}

// WithRequestsPerMinute paces requests. Zero or less disables pacing.
func WithRequestsPerMinute(rpm int) Option {
	return func(c *Client) {
		if rpm <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
	}
}

// WithLogger sets the logger and metrics tracker used for fetch diagnostics.
func WithLogger(l *logger.Logger, m *logger.Metrics) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
		if m != nil {
			c.metrics = m
		}
	}
}

// New creates a new Client
func New(opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent: UserAgent,
		log:       logger.Default(),
		metrics:   logger.DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch issues a single GET for url and parses the body.
func (c *Client) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.log.Debug("Fetching page", logger.Fields{"url": url})
	c.metrics.IncrCounter("fetch.requests")
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.IncrCounter("fetch.errors")
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.RecordTiming("fetch", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{URL: url, Code: resp.StatusCode, Header: resp.Header.Clone()}
		if statusErr.RateLimited() {
			c.metrics.IncrCounter("fetch.rate_limited")
		} else {
			c.metrics.IncrCounter("fetch.errors")
		}
		return nil, statusErr
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// FetchPage fetches url and reduces it to its first table.
func (c *Client) FetchPage(ctx context.Context, url string) (Page, error) {
	doc, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return PageOf(doc.Selection), nil
}
