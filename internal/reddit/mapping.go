package reddit

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/ajitpratap0/lumina/internal/models"
)

var directImagePattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif)$`)

func mapListing(l listing, fallbackLabel string) []models.FeedItem {
	items := make([]models.FeedItem, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		if child.Kind != "" && child.Kind != "t3" {
			continue
		}
		var p post
		if err := json.Unmarshal(child.Data, &p); err != nil {
			continue
		}
		if item, ok := mapPost(&p, fallbackLabel); ok {
			items = append(items, item)
		}
	}
	return items
}

// mapPost resolves a post's media in order: gallery, direct image link,
// preview image (upgraded to hosted video when present), self-text.
// Posts with neither media nor self-text are dropped.
func mapPost(p *post, fallbackLabel string) (models.FeedItem, bool) {
	var (
		mediaURL     string
		thumbnailURL string
		width        int
		height       int
		kind         = models.MediaImage
		tags         []string
		gallery      []string
	)

	if len(p.CrosspostParentList) > 0 {
		tags = append(tags, "x-post:"+prefixed(p.CrosspostParentList[0].SubredditNamePrefixed, p.CrosspostParentList[0].Subreddit))
	}

	if p.IsGallery && p.GalleryData != nil && len(p.MediaMetadata) > 0 {
		for _, gi := range p.GalleryData.Items {
			meta, ok := p.MediaMetadata[gi.MediaID]
			if !ok {
				continue
			}
			u := meta.S.U
			if u == "" {
				u = meta.S.GIF
			}
			if u == "" {
				continue
			}
			if len(gallery) == 0 {
				width, height = meta.S.X, meta.S.Y
			}
			gallery = append(gallery, unescapeAmp(u))
		}
		if len(gallery) > 0 {
			mediaURL = gallery[0]
		}
	}

	if mediaURL == "" && directImagePattern.MatchString(p.URL) {
		mediaURL = p.URL
		if strings.HasSuffix(strings.ToLower(p.URL), ".gif") {
			kind = models.MediaAnimatedLoop
		}
	}

	if mediaURL == "" && p.Preview != nil && len(p.Preview.Images) > 0 && p.Preview.Images[0].Source.URL != "" {
		src := p.Preview.Images[0].Source
		preview := unescapeAmp(src.URL)
		mediaURL = preview
		width, height = src.Width, src.Height

		if v := p.redditVideo(); (p.IsVideo || p.PostHint == "hosted:video") && v != "" {
			kind = models.MediaShortVideo
			mediaURL = v
			thumbnailURL = preview
		}
	}

	if mediaURL == "" {
		if p.Selftext == "" {
			return models.FeedItem{}, false
		}
		kind = models.MediaText
		width, height = 800, 600
	}

	width, height = models.NormalizeDimensions(width, height)
	if len(gallery) < 2 {
		gallery = nil
	}

	source := fallbackLabel
	if sub := subredditName(p); sub != "" {
		source = "r/" + sub
	}

	return models.FeedItem{
		ID:           p.ID,
		Type:         kind,
		Caption:      p.Title,
		BodyText:     p.Selftext,
		Author:       models.Author{Name: p.Author, Handle: "u/" + p.Author},
		Source:       source,
		Timestamp:    unixTime(p.CreatedUTC),
		AspectRatio:  models.ClassifyAspect(width, height),
		Width:        width,
		Height:       height,
		Likes:        p.Score,
		MediaURL:     mediaURL,
		ThumbnailURL: thumbnailURL,
		Tags:         tags,
		GalleryURLs:  gallery,
		Permalink:    p.Permalink,
	}, true
}

func (p *post) redditVideo() string {
	for _, m := range []*media{p.SecureMedia, p.Media} {
		if m != nil && m.RedditVideo != nil && m.RedditVideo.FallbackURL != "" {
			return m.RedditVideo.FallbackURL
		}
	}
	return ""
}

func subredditName(p *post) string {
	if p.Subreddit != "" {
		return p.Subreddit
	}
	return strings.TrimPrefix(p.SubredditNamePrefixed, "r/")
}

func prefixed(namePrefixed, name string) string {
	if namePrefixed != "" {
		return namePrefixed
	}
	return "r/" + name
}

func unescapeAmp(s string) string {
	return strings.ReplaceAll(s, "&amp;", "&")
}

func unixTime(sec float64) time.Time {
	return time.Unix(int64(sec), 0).UTC()
}
