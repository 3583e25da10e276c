package source

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajitpratap0/lumina/internal/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Descriptor
		ok   bool
	}{
		{"r/unixporn", Subreddit("unixporn"), true},
		{"R/LocalLLaMA", Subreddit("LocalLLaMA"), true},
		{"4chan", Imageboard(FourChanDomain, "b"), true},
		{"4chan/", Imageboard(FourChanDomain, "b"), true},
		{"4chan/wsg", Imageboard(FourChanDomain, "wsg"), true},
		{"boards.4chan.org/g", Imageboard("boards.4chan.org", "g"), true},
		{"https://www.8kun.top/p", Imageboard("8kun.top", "p"), true},
		{"boards.example.net/b", Imageboard("boards.example.net", "b"), true},
		{"https://www.img.board.xyz/pol", Imageboard("img.board.xyz", "pol"), true},
		{"https://example.net/rss/feed.xml", Imageboard("example.net", "rss"), true},
		{"http://localhost:8080/feed", Feed("http://localhost:8080/feed", "Web"), true},
		{"depop", Descriptor{}, false},
		{"", Descriptor{}, false},
		{"r/", Descriptor{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescriptor_Key(t *testing.T) {
	assert.Equal(t, Subreddit("unixporn").Key(), Subreddit("r/UnixPorn").Key())
	assert.NotEqual(t, Subreddit("g").Key(), Imageboard(FourChanDomain, "g").Key())
	assert.Equal(t, Search("Rice").Key(), Search("rice").Key())
}

func TestParse_Deterministic(t *testing.T) {
	a, okA := Parse("https://lainchan.org/Λ")
	b, okB := Parse("https://lainchan.org/Λ")
	assert.Equal(t, okA, okB)
	assert.Equal(t, a, b)
}

func TestFromLink(t *testing.T) {
	tests := []struct {
		name string
		link models.SourceLink
		want Descriptor
		ok   bool
	}{
		{"reddit", models.SourceLink{Platform: models.PlatformReddit, ID: "TaylorSwift"}, Subreddit("TaylorSwift"), true},
		{"reddit prefixed", models.SourceLink{Platform: models.PlatformReddit, ID: "r/laufey"}, Subreddit("laufey"), true},
		{"4chan with board", models.SourceLink{Platform: models.Platform4chan, ID: "4chan/b"}, Imageboard(FourChanDomain, "b"), true},
		{"4chan bare board", models.SourceLink{Platform: models.Platform4chan, ID: "wsg"}, Imageboard(FourChanDomain, "wsg"), true},
		{"imageboard", models.SourceLink{Platform: models.PlatformImageboard, ID: "8kun.top/p"}, Imageboard("8kun.top", "p"), true},
		{"imageboard trailing slash", models.SourceLink{Platform: models.PlatformImageboard, ID: "https://8kun.top/p/"}, Imageboard("8kun.top", "p"), true},
		{"imageboard multi segment", models.SourceLink{Platform: models.PlatformImageboard, ID: "/lainchan.org//tech/res/"}, Imageboard("lainchan.org", "tech"), true},
		{"imageboard empty", models.SourceLink{Platform: models.PlatformImageboard, ID: "//"}, Descriptor{}, false},
		{"web", models.SourceLink{Platform: models.PlatformWeb, ID: "https://blog.example.com/rss", Label: "Blog"}, Feed("https://blog.example.com/rss", "Blog"), true},
		{"web default label", models.SourceLink{Platform: models.PlatformWeb, ID: "https://blog.example.com/rss"}, Feed("https://blog.example.com/rss", "Web"), true},
		{"instagram", models.SourceLink{Platform: models.PlatformInstagram, ID: "laufey"}, Descriptor{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromLink(tt.link)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescriptor_String(t *testing.T) {
	assert.Equal(t, "r/unixporn", Subreddit("unixporn").String())
	assert.Equal(t, "boards.4chan.org/g", Imageboard(FourChanDomain, "g").String())
	assert.Equal(t, `search:"zit"`, Search("zit").String())
	assert.Equal(t, Subreddit("Unixporn").Key(), Subreddit("unixporn").Key())
}
