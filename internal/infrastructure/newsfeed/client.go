// Package newsfeed implements the Webz news API client backing the landing
// page. The upstream is best-effort: callers are expected to tolerate an
// error and render without stories.
package newsfeed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/newsdesk/newsreader/internal/api/metrics"
	"github.com/newsdesk/newsreader/internal/core/domain"
)

const (
	defaultBaseURL = "https://api.webz.io"
	defaultTimeout = 5 * time.Second
	defaultQuery   = "news"

	summaryLimit = 280
)

// Client fetches stories from the Webz "news API lite" endpoint.
type Client struct {
	http   *resty.Client
	apiKey string
}

// Option tweaks a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL. Used for self-hosted proxies
// and tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(baseURL)
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json"),
		apiKey: apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// lite mirrors the upstream response; only the fields the landing page
// needs are decoded.
type lite struct {
	Posts []litePost `json:"posts"`
}

type litePost struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Text      string    `json:"text"`
	Published time.Time `json:"published"`
	Thread    struct {
		Site string `json:"site"`
	} `json:"thread"`
}

// TopStories fetches up to limit stories matching query. An empty query
// falls back to a generic feed.
func (c *Client) TopStories(ctx context.Context, query string, limit int) ([]domain.NewsItem, error) {
	if query == "" {
		query = defaultQuery
	}

	var body lite
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("token", c.apiKey).
		SetQueryParam("q", query).
		SetQueryParam("size", strconv.Itoa(limit)).
		SetResult(&body).
		Get("/newsApiLite")
	metrics.NewsfeedRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.NewsfeedRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("newsfeed request: %w", err)
	}
	if resp.IsError() {
		metrics.NewsfeedRequestsTotal.WithLabelValues("upstream_status").Inc()
		return nil, fmt.Errorf("newsfeed request: upstream returned %d", resp.StatusCode())
	}
	metrics.NewsfeedRequestsTotal.WithLabelValues("ok").Inc()

	items := make([]domain.NewsItem, 0, len(body.Posts))
	for _, post := range body.Posts {
		if post.Title == "" || post.URL == "" {
			continue
		}
		items = append(items, domain.NewsItem{
			Title:     post.Title,
			URL:       post.URL,
			Source:    post.Thread.Site,
			Summary:   truncate(post.Text, summaryLimit),
			Published: post.Published,
		})
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
