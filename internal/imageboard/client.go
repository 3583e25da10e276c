// Package imageboard reads board catalogs from 4chan-compatible imageboards.
package imageboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ajitpratap0/lumina/internal/models"
	"github.com/ajitpratap0/lumina/pkg/textutil"
)

const (
	fourChanAPI    = "https://a.4cdn.org"
	fourChanImages = "https://i.4cdn.org"

	// unfilteredLimit caps the thread count when no search terms are given.
	unfilteredLimit = 15
	captionRunes    = 60
	maxBodyBytes    = 16 << 20
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

// WithRelay routes catalog requests through a CORS relay that takes the
// target in its "url" query parameter (e.g. https://api.allorigins.win/raw).
func WithRelay(relayURL string) ClientOption {
	return func(c *Client) {
		c.relay = relayURL
	}
}

// WithBaseURL sends API and image requests for every domain to u (useful for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
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

// Client fetches imageboard catalogs.
type Client struct {
	httpClient HTTPClient
	relay      string
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a new imageboard client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog fetches the catalog of domain/board and maps its threads to feed
// items. With terms, only threads whose subject or comment contains any term
// (case-insensitive) are kept; without, the first 15 threads are used.
// Threads without an attached file are dropped.
func (c *Client) Catalog(ctx context.Context, domain, board string, terms []string) ([]models.FeedItem, error) {
	apiBase, imgBase := c.hosts(domain)
	target := fmt.Sprintf("%s/%s/catalog.json", apiBase, board)

	pages, err := c.fetchCatalog(ctx, c.viaRelay(target))
	if err != nil {
		return nil, fmt.Errorf("fetching %s/%s catalog: %w", domain, board, err)
	}

	var threads []thread
	for _, p := range pages {
		threads = append(threads, p.Threads...)
	}
	threads = filterThreads(threads, normalizeTerms(terms))

	items := make([]models.FeedItem, 0, len(threads))
	for i := range threads {
		if item, ok := mapThread(&threads[i], domain, board, imgBase); ok {
			items = append(items, item)
		}
	}
	c.logger.Debug("imageboard catalog fetched", "domain", domain, "board", board, "threads", len(threads), "items", len(items))
	return items, nil
}

func (c *Client) hosts(domain string) (apiBase, imgBase string) {
	switch {
	case c.baseURL != "":
		return c.baseURL, c.baseURL
	case strings.Contains(domain, "4chan.org") || strings.Contains(domain, "4channel.org"):
		return fourChanAPI, fourChanImages
	default:
		return "https://" + domain, "https://" + domain
	}
}

func (c *Client) viaRelay(target string) string {
	if c.relay == "" {
		return target
	}
	sep := "?"
	if strings.Contains(c.relay, "?") {
		sep = "&"
	}
	return c.relay + sep + "url=" + url.QueryEscape(target)
}

func (c *Client) fetchCatalog(ctx context.Context, endpoint string) ([]page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var pages []page
	if err := json.Unmarshal(body, &pages); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return pages, nil
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(t, "#")))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func filterThreads(threads []thread, terms []string) []thread {
	if len(terms) == 0 {
		if len(threads) > unfilteredLimit {
			return threads[:unfilteredLimit]
		}
		return threads
	}
	out := threads[:0:0]
	for _, t := range threads {
		content := strings.ToLower(t.Sub + " " + t.Com)
		for _, term := range terms {
			if strings.Contains(content, term) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func mapThread(t *thread, domain, board, imgBase string) (models.FeedItem, bool) {
	if t.Tim == 0 {
		return models.FeedItem{}, false
	}
	tim := strconv.FormatInt(t.Tim, 10)
	no := strconv.FormatInt(t.No, 10)

	kind := models.MediaImage
	switch strings.ToLower(t.Ext) {
	case ".webm", ".mp4":
		kind = models.MediaShortVideo
	case ".gif":
		kind = models.MediaAnimatedLoop
	}

	body := strings.TrimSpace(textutil.StripTags(t.Com))
	caption := t.Sub
	if caption == "" {
		caption = textutil.Truncate(body, captionRunes)
	}
	if caption == "" {
		caption = "Thread " + no
	}
	name := t.Name
	if name == "" {
		name = "Anonymous"
	}
	w, h := models.NormalizeDimensions(t.W, t.H)

	return models.FeedItem{
		ID:           fmt.Sprintf("%s-%s-%s", domain, board, no),
		Type:         kind,
		Caption:      caption,
		BodyText:     body,
		Author:       models.Author{Name: name, Handle: "Anonymous"},
		Source:       domain + "/" + board,
		Timestamp:    time.Unix(t.Time, 0).UTC(),
		AspectRatio:  models.ClassifyAspect(w, h),
		Width:        w,
		Height:       h,
		Likes:        t.Replies,
		MediaURL:     fmt.Sprintf("%s/%s/%s%s", imgBase, board, tim, t.Ext),
		ThumbnailURL: fmt.Sprintf("%s/%s/%ss.jpg", imgBase, board, tim),
		Tags:         []string{"/" + board + "/"},
		Permalink:    fmt.Sprintf("https://%s/%s/thread/%s", domain, board, no),
	}, true
}

type page struct {
	Page    int      `json:"page"`
	Threads []thread `json:"threads"`
}

type thread struct {
	No      int64  `json:"no"`
	Sub     string `json:"sub"`
	Com     string `json:"com"`
	Name    string `json:"name"`
	Tim     int64  `json:"tim"`
	Ext     string `json:"ext"`
	W       int    `json:"w"`
	H       int    `json:"h"`
	Time    int64  `json:"time"`
	Replies int64  `json:"replies"`
}
