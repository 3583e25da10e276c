package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAspect(t *testing.T) {
	assert.Equal(t, AspectWidescreen, ClassifyAspect(1920, 1080))
	assert.Equal(t, AspectPortrait, ClassifyAspect(600, 800))
	assert.Equal(t, AspectSquare, ClassifyAspect(800, 800))
	assert.Equal(t, AspectSquare, ClassifyAspect(1200, 1000), "1.2 exactly is not widescreen")
	assert.Equal(t, AspectSquare, ClassifyAspect(800, 1000), "0.8 exactly is not portrait")
	assert.Equal(t, AspectSquare, ClassifyAspect(0, 600))
	assert.Equal(t, AspectSquare, ClassifyAspect(600, 0))
}

func TestNormalizeDimensions(t *testing.T) {
	w, h := NormalizeDimensions(0, 500)
	assert.Equal(t, DefaultDimension, w)
	assert.Equal(t, DefaultDimension, h)

	w, h = NormalizeDimensions(640, 480)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestFeedItem_Displayable(t *testing.T) {
	assert.True(t, (&FeedItem{Type: MediaText}).Displayable())
	assert.False(t, (&FeedItem{Type: MediaImage}).Displayable())
	assert.True(t, (&FeedItem{Type: MediaImage, MediaURL: "https://x/y.jpg"}).Displayable())
	assert.True(t, (&FeedItem{Type: MediaShortVideo, GalleryURLs: []string{"a"}}).Displayable())
	assert.False(t, (&FeedItem{Type: "video", MediaURL: "https://x/y.mp4"}).Displayable())
	assert.False(t, (&FeedItem{MediaURL: "https://x/y.jpg"}).Displayable())
}

func TestMediaType_IsValid(t *testing.T) {
	for _, mt := range ValidMediaTypes {
		assert.True(t, mt.IsValid())
	}
	assert.False(t, MediaType("video").IsValid())
}

func TestFilterState_CloneDoesNotAlias(t *testing.T) {
	f := FilterState{Persons: []string{"Laufey"}, Sources: []string{"r/unixporn"}, SortBy: SortTop}
	c := f.Clone()
	c.Sources[0] = "r/other"
	c.Persons = append(c.Persons, "x")

	assert.Equal(t, []string{"r/unixporn"}, f.Sources)
	assert.Equal(t, []string{"Laufey"}, f.Persons)
	assert.NotNil(t, c.Tags)
}

func TestFilterState_IsEmpty(t *testing.T) {
	assert.True(t, InitialFilters().IsEmpty())
	assert.True(t, FilterState{SearchQuery: "   "}.IsEmpty())
	assert.False(t, FilterState{Tags: []string{"#irl"}}.IsEmpty())
	assert.Equal(t, SortRandom, InitialFilters().SortBy)
}

func TestIdentityProfile_VisibleSources(t *testing.T) {
	p := IdentityProfile{Sources: []SourceLink{
		{Platform: PlatformReddit, ID: "a"},
		{Platform: PlatformReddit, ID: "b", Hidden: true},
		{Platform: PlatformInstagram, ID: "c"},
	}}
	visible := p.VisibleSources()
	assert.Len(t, visible, 2)
	assert.Equal(t, "a", visible[0].ID)
	assert.Equal(t, "c", p.FirstSource(PlatformInstagram))
	assert.Equal(t, "", p.FirstSource(PlatformTikTok))
}

func TestValidators(t *testing.T) {
	assert.True(t, ThemeKanagawa.IsValid())
	assert.False(t, Theme("neon").IsValid())
	assert.True(t, SortLatest.IsValid())
	assert.False(t, SortOption("oldest").IsValid())
	assert.True(t, Platform4chan.IsValid())
	assert.False(t, PlatformType("myspace").IsValid())
	assert.True(t, DraftPublished.IsValid())
	assert.True(t, AcquisitionOrdered.IsValid())
	assert.True(t, LibraryArchived.IsValid())
	assert.False(t, LibraryStatus("lost").IsValid())
}
