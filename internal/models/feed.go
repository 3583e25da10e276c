package models

import "time"

// MediaType classifies the primary content of a feed item.
type MediaType string

const (
	MediaImage        MediaType = "image"
	MediaShortVideo   MediaType = "short"
	MediaAnimatedLoop MediaType = "gif"
	MediaText         MediaType = "text"
)

// ValidMediaTypes is the set of all valid media types.
var ValidMediaTypes = []MediaType{
	MediaImage,
	MediaShortVideo,
	MediaAnimatedLoop,
	MediaText,
}

// IsValid returns true if the media type is recognized.
func (mt MediaType) IsValid() bool {
	for _, v := range ValidMediaTypes {
		if mt == v {
			return true
		}
	}
	return false
}

// AspectRatio is the display classifier derived from pixel dimensions.
type AspectRatio string

const (
	AspectWidescreen AspectRatio = "widescreen"
	AspectPortrait   AspectRatio = "portrait"
	AspectSquare     AspectRatio = "square"
)

// DefaultDimension is used for both width and height when the origin does not report them.
const DefaultDimension = 800

// ClassifyAspect derives the aspect classifier from width/height.
// Unknown dimensions classify as square.
func ClassifyAspect(width, height int) AspectRatio {
	if width <= 0 || height <= 0 {
		return AspectSquare
	}
	ratio := float64(width) / float64(height)
	switch {
	case ratio > 1.2:
		return AspectWidescreen
	case ratio < 0.8:
		return AspectPortrait
	default:
		return AspectSquare
	}
}

// NormalizeDimensions substitutes the square fallback when either dimension is unknown.
func NormalizeDimensions(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		return DefaultDimension, DefaultDimension
	}
	return width, height
}

// Author identifies who posted a feed item.
type Author struct {
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Condition describes the state of an item offered for sale.
type Condition string

const (
	ConditionNew      Condition = "New"
	ConditionLikeNew  Condition = "Like New"
	ConditionUsed     Condition = "Used"
	ConditionFair     Condition = "Fair"
	ConditionPreOrder Condition = "Pre-order"
)

// FeedItem is one normalized unit of aggregated content.
// Items are built by a source adapter and never mutated afterwards.
type FeedItem struct {
	ID           string      `json:"id"`
	Type         MediaType   `json:"type"`
	Caption      string      `json:"caption"`
	BodyText     string      `json:"bodyText,omitempty"`
	Author       Author      `json:"author"`
	Source       string      `json:"source"`
	Timestamp    time.Time   `json:"timestamp"`
	AspectRatio  AspectRatio `json:"aspectRatio"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Likes        int64       `json:"likes"`
	MediaURL     string      `json:"mediaUrl,omitempty"`
	ThumbnailURL string      `json:"thumbnailUrl,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
	GalleryURLs  []string    `json:"galleryUrls,omitempty"`
	Permalink    string      `json:"permalink,omitempty"`

	Price     *float64  `json:"price,omitempty"`
	Currency  string    `json:"currency,omitempty"`
	Condition Condition `json:"condition,omitempty"`
	IsSold    bool      `json:"isSold,omitempty"`
}

// Displayable reports whether the item has enough media to be rendered.
// Text items are always displayable; unknown media types never are.
func (f *FeedItem) Displayable() bool {
	if !f.Type.IsValid() {
		return false
	}
	if f.Type == MediaText {
		return true
	}
	return f.MediaURL != "" || len(f.GalleryURLs) > 0
}

// Comment is one discussion reply attached to a thread.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Score     int64     `json:"score"`
	Timestamp time.Time `json:"timestamp"`
	Replies   []Comment `json:"replies,omitempty"`
}

// RelatedThreadType says how a related thread is connected to the selected item.
type RelatedThreadType string

const (
	RelatedCrosspost RelatedThreadType = "crosspost"
	RelatedMention   RelatedThreadType = "mention"
)

// RelatedThread links a thread in another community to the selected item.
type RelatedThread struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Subreddit string            `json:"subreddit"`
	URL       string            `json:"url"`
	Type      RelatedThreadType `json:"type"`
}

// ThreadContext is the on-demand discussion context of one feed item.
type ThreadContext struct {
	Comments       []Comment       `json:"comments"`
	BodyText       string          `json:"bodyText,omitempty"`
	RelatedThreads []RelatedThread `json:"relatedThreads"`
}

// MockPostCount is how many synthetic posts are requested per fallback.
const MockPostCount = 8

// MockPost is one synthetic post as returned by an AI generator. Type is the
// raw model output and may hold anything.
type MockPost struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Caption        string `json:"caption"`
	AuthorName     string `json:"authorName"`
	AuthorHandle   string `json:"authorHandle"`
	SourcePlatform string `json:"sourcePlatform"`
	Likes          int64  `json:"likes"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	BodyText       string `json:"bodyText"`
}
