// Package reddit fetches subreddit listings, keyword searches and discussion
// threads from Reddit's public JSON endpoints.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ajitpratap0/lumina/internal/models"
)

const (
	// DefaultBaseURL is the public Reddit web host.
	DefaultBaseURL = "https://www.reddit.com"
	// DefaultUserAgent identifies the dashboard to Reddit.
	DefaultUserAgent = "lumina/1.0 (personal dashboard)"
	// SearchLabel is the source label used when a search hit carries no subreddit.
	SearchLabel = "Reddit Search"

	listingLimit = 25
	maxBodyBytes = 8 << 20
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL overrides the Reddit host (useful for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client is a Reddit JSON API client. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a new Reddit client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Listing fetches the hot listing of a subreddit and maps it to feed items.
func (c *Client) Listing(ctx context.Context, subreddit string) ([]models.FeedItem, error) {
	sub := strings.TrimPrefix(strings.TrimSpace(subreddit), "r/")
	endpoint := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", c.baseURL, url.PathEscape(sub), listingLimit)

	var l listing
	if err := c.getJSON(ctx, endpoint, &l); err != nil {
		return nil, fmt.Errorf("fetching r/%s: %w", sub, err)
	}
	items := mapListing(l, "r/"+sub)
	c.logger.Debug("reddit listing fetched", "subreddit", sub, "items", len(items))
	return items, nil
}

// Search runs a site-wide keyword search.
func (c *Client) Search(ctx context.Context, query string) ([]models.FeedItem, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("sort", "relevance")
	q.Set("limit", fmt.Sprint(listingLimit))
	q.Set("type", "link")
	endpoint := c.baseURL + "/search.json?" + q.Encode()

	var l listing
	if err := c.getJSON(ctx, endpoint, &l); err != nil {
		return nil, fmt.Errorf("searching reddit for %q: %w", query, err)
	}
	items := mapListing(l, SearchLabel)
	c.logger.Debug("reddit search fetched", "query", query, "items", len(items))
	return items, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
