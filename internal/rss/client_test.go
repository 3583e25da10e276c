package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/lumina/internal/models"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Test Blog</title>
    <item>
      <title>Hello World</title>
      <link>https://blog.example.com/p/hello-world</link>
      <dc:creator>Jane Doe</dc:creator>
      <pubDate>Mon, 01 Jan 2024 12:00:00 +0000</pubDate>
      <description><![CDATA[<p>Intro <img src="https://cdn.example.com/desc.jpg"> text</p>]]></description>
      <content:encoded><![CDATA[<div><img alt="x" src="https://cdn.example.com/hero.jpg"/></div>]]></content:encoded>
    </item>
    <item>
      <title></title>
      <link>https://blog.example.com/p/untitled</link>
      <pubDate>not a date</pubDate>
      <description><![CDATA[<b>Bold</b> summary]]></description>
    </item>
    <item>
      <title>Height comparison</title>
      <link>https://femdom-pov.me/princess-lexie-height-comparison-joi/</link>
      <description>banner only</description>
    </item>
  </channel>
</rss>`

func TestClient_Fetch_MapsItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedXML)
	}))
	t.Cleanup(server.Close)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	client := NewClient(withClock(func() time.Time { return now }))
	items, err := client.Fetch(context.Background(), server.URL+"/feed", "My Blog")
	require.NoError(t, err)
	require.Len(t, items, 3)

	first := items[0]
	assert.Equal(t, "https://blog.example.com/p/hello-world", first.ID)
	assert.Equal(t, "Hello World", first.Caption)
	assert.Equal(t, "Jane Doe", first.Author.Name)
	assert.Equal(t, "My Blog", first.Source)
	assert.Equal(t, "https://cdn.example.com/hero.jpg", first.MediaURL, "content:encoded wins over description")
	assert.Equal(t, "Intro  text...", first.BodyText)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), first.Timestamp.UTC())
	assert.Equal(t, models.AspectPortrait, first.AspectRatio)
	assert.Equal(t, 800, first.Width)
	assert.Equal(t, 1200, first.Height)

	second := items[1]
	assert.Equal(t, "Untitled", second.Caption)
	assert.Equal(t, "My Blog", second.Author.Name, "label stands in for a missing creator")
	assert.Equal(t, "https://picsum.photos/seed/Untitled/800/600", second.MediaURL)
	assert.Equal(t, "Bold summary...", second.BodyText)
	assert.Equal(t, now, second.Timestamp)

	third := items[2]
	assert.Len(t, third.GalleryURLs, 3)
	assert.Equal(t, third.GalleryURLs[0], third.MediaURL)
	assert.Contains(t, third.Tags, "spider-enriched")
	assert.Contains(t, third.Tags, "height-difference")
	assert.True(t, strings.HasPrefix(third.BodyText, "Extracted content"))
}

func TestClient_Fetch_Latin1Feed(t *testing.T) {
	latin1 := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<rss version=\"2.0\"><channel><title>Caf\xe9</title>" +
		"<item><title>Cr\xe8me br\xfbl\xe9e</title><link>https://cafe.example.fr/creme</link>" +
		"<description>D\xe9licieux</description></item>" +
		"</channel></rss>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, latin1)
	}))
	t.Cleanup(server.Close)

	items, err := NewClient().Fetch(context.Background(), server.URL, "Cafe")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Crème brûlée", items[0].Caption)
	assert.Equal(t, "https://cafe.example.fr/creme", items[0].Permalink)
	assert.Contains(t, items[0].BodyText, "Délicieux")
}

func TestClient_Fetch_ViaRelay(t *testing.T) {
	var target string
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target = r.URL.Query().Get("url")
		fmt.Fprint(w, `<rss><channel></channel></rss>`)
	}))
	t.Cleanup(relay.Close)

	items, err := NewClient(WithRelay(relay.URL+"/raw")).Fetch(context.Background(), "https://blog.example.com/rss?x=1", "Web")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, "https://blog.example.com/rss?x=1", target)
}

func TestClient_Fetch_Errors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(server.Close)
		_, err := NewClient().Fetch(context.Background(), server.URL, "Web")
		require.Error(t, err)
	})
	t.Run("malformed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `<rss><channel><item>`)
		}))
		t.Cleanup(server.Close)
		_, err := NewClient().Fetch(context.Background(), server.URL, "Web")
		require.Error(t, err)
	})
}

func TestEnricher_PassesThroughUnmatched(t *testing.T) {
	e := DefaultEnricher()
	in := models.FeedItem{ID: "a", Permalink: "https://example.com/other", Tags: []string{"x"}}
	out := e.Enrich(in)
	assert.Equal(t, in, out)

	noLink := models.FeedItem{ID: "b"}
	assert.Equal(t, noLink, e.Enrich(noLink))
}

func TestEnricher_DoesNotMutateInput(t *testing.T) {
	e := NewEnricher(Enrichment{Pattern: "deep", Gallery: []string{"g1", "g2"}, Tags: []string{"rich"}})
	tags := make([]string, 1, 4)
	tags[0] = "orig"
	in := models.FeedItem{ID: "a", Permalink: "https://x/DEEP/page", Tags: tags, MediaURL: "m"}

	out := e.Enrich(in)
	assert.Equal(t, []string{"orig", "rich"}, out.Tags)
	assert.Equal(t, "g1", out.MediaURL)
	assert.Equal(t, []string{"orig"}, in.Tags)
	assert.Equal(t, "orig", tags[:2][0])
	assert.Empty(t, tags[:2][1], "backing array untouched")
	assert.Equal(t, "m", in.MediaURL)
}

func TestFirstImageSrc(t *testing.T) {
	assert.Equal(t, "a.png", firstImageSrc(`<p>hi</p><IMG SRC="a.png"><img src="b.png">`))
	assert.Equal(t, "", firstImageSrc(`<img alt="no src">`))
	assert.Equal(t, "", firstImageSrc(""))
}
