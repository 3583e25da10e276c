package reddit

import "encoding/json"

// listing is the envelope of every Reddit "Listing" response.
type listing struct {
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type post struct {
	ID                    string  `json:"id"`
	Title                 string  `json:"title"`
	Selftext              string  `json:"selftext"`
	Author                string  `json:"author"`
	Subreddit             string  `json:"subreddit"`
	SubredditNamePrefixed string  `json:"subreddit_name_prefixed"`
	URL                   string  `json:"url"`
	Permalink             string  `json:"permalink"`
	Score                 int64   `json:"score"`
	CreatedUTC            float64 `json:"created_utc"`
	PostHint              string  `json:"post_hint"`
	IsVideo               bool    `json:"is_video"`
	IsGallery             bool    `json:"is_gallery"`

	SecureMedia *media `json:"secure_media"`
	Media       *media `json:"media"`

	Preview *struct {
		Images []struct {
			Source imageSource `json:"source"`
		} `json:"images"`
	} `json:"preview"`

	MediaMetadata map[string]galleryMedia `json:"media_metadata"`
	GalleryData   *struct {
		Items []struct {
			MediaID string `json:"media_id"`
		} `json:"items"`
	} `json:"gallery_data"`

	CrosspostParentList []crosspost `json:"crosspost_parent_list"`
}

type media struct {
	RedditVideo *struct {
		FallbackURL string `json:"fallback_url"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
	} `json:"reddit_video"`
}

type imageSource struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type galleryMedia struct {
	Status string `json:"status"`
	S      struct {
		U   string `json:"u"`
		GIF string `json:"gif"`
		X   int    `json:"x"`
		Y   int    `json:"y"`
	} `json:"s"`
}

type crosspost struct {
	ID                    string `json:"id"`
	Title                 string `json:"title"`
	Subreddit             string `json:"subreddit"`
	SubredditNamePrefixed string `json:"subreddit_name_prefixed"`
	Permalink             string `json:"permalink"`
}

type comment struct {
	ID         string          `json:"id"`
	Author     string          `json:"author"`
	Body       string          `json:"body"`
	Score      int64           `json:"score"`
	CreatedUTC float64         `json:"created_utc"`
	Replies    json.RawMessage `json:"replies"`
}
