// Package rss fetches RSS/web feeds and maps their entries to feed items,
// passing every item through an Enricher.
package rss

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/ajitpratap0/lumina/internal/models"
	"github.com/ajitpratap0/lumina/pkg/textutil"
)

const (
	bodyPreviewRunes = 200
	placeholderBase  = "https://picsum.photos/seed/"
	maxBodyBytes     = 8 << 20
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

// WithRelay routes feed requests through a CORS relay taking a "url" parameter.
func WithRelay(relayURL string) ClientOption {
	return func(c *Client) {
		c.relay = relayURL
	}
}

// WithEnricher replaces the default enrichment registry.
func WithEnricher(e *Enricher) ClientOption {
	return func(c *Client) {
		if e != nil {
			c.enricher = e
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

// withClock is used by tests to pin the fallback timestamp.
func withClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// Client fetches RSS feeds.
type Client struct {
	httpClient HTTPClient
	relay      string
	enricher   *Enricher
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient creates a new RSS client with the default enricher.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		enricher:   DefaultEnricher(),
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads feedURL and maps each <item>. label names the source and is
// used as the author when an entry has no dc:creator.
func (c *Client) Fetch(ctx context.Context, feedURL, label string) ([]models.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.viaRelay(feedURL), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned HTTP %d for %s", resp.StatusCode, feedURL)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	var doc rssDoc
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]models.FeedItem, 0, len(doc.Channel.Items))
	for i := range doc.Channel.Items {
		item := c.mapItem(&doc.Channel.Items[i], label, i)
		items = append(items, c.enricher.Enrich(item))
	}
	c.logger.Debug("rss feed fetched", "url", feedURL, "items", len(items))
	return items, nil
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

func (c *Client) mapItem(it *rssItem, label string, index int) models.FeedItem {
	title := strings.TrimSpace(it.Title)
	if title == "" {
		title = "Untitled"
	}
	link := strings.TrimSpace(it.Link)
	creator := strings.TrimSpace(it.DCCreator)
	if creator == "" {
		creator = label
	}

	media := firstImageSrc(it.ContentEncoded)
	if media == "" {
		media = firstImageSrc(it.Desc)
	}
	if media == "" {
		media = placeholderBase + url.PathEscape(title) + "/800/600"
	}

	id := link
	if id == "" {
		id = strings.TrimSpace(it.GUID)
	}
	if id == "" {
		id = fmt.Sprintf("rss-%d-%d", c.now().UnixNano(), index)
	}

	ts := parsePubDate(it.PubDate)
	if ts.IsZero() {
		ts = c.now().UTC()
	}

	return models.FeedItem{
		ID:          id,
		Type:        models.MediaImage,
		Caption:     title,
		BodyText:    textutil.Truncate(textutil.StripTags(it.Desc), bodyPreviewRunes) + "...",
		Author:      models.Author{Name: creator, Handle: creator},
		Source:      label,
		Timestamp:   ts,
		AspectRatio: models.AspectPortrait,
		Width:       800,
		Height:      1200,
		MediaURL:    media,
		Permalink:   link,
	}
}

// firstImageSrc returns the src of the first <img> in an HTML fragment.
func firstImageSrc(fragment string) string {
	if fragment == "" {
		return ""
	}
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "img" {
				continue
			}
			for _, a := range tok.Attr {
				if a.Key == "src" && a.Val != "" {
					return a.Val
				}
			}
		}
	}
}

func parsePubDate(s string) time.Time {
	s = strings.TrimSpace(s)
	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// rssDoc and rssItem are private XML parsing structs.
type rssDoc struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title          string `xml:"title"`
	Link           string `xml:"link"`
	DCCreator      string `xml:"creator"`
	PubDate        string `xml:"pubDate"`
	Desc           string `xml:"description"`
	ContentEncoded string `xml:"encoded"`
	GUID           string `xml:"guid"`
}
