// Package source defines the tagged source descriptor that tells the feed
// service which adapter to call and with which parameters.
package source

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ajitpratap0/lumina/internal/models"
)

// Kind selects the adapter a descriptor is dispatched to.
type Kind string

const (
	KindSubreddit  Kind = "subreddit"
	KindSearch     Kind = "search"
	KindImageboard Kind = "imageboard"
	KindFeed       Kind = "feed"
)

// FourChanDomain is the canonical domain for 4chan boards.
const FourChanDomain = "boards.4chan.org"

// DefaultFourChanBoard is used when "4chan" is given without a board.
const DefaultFourChanBoard = "b"

// Descriptor is one concrete adapter call.
// Only the fields relevant to Kind are set.
type Descriptor struct {
	Kind      Kind   `json:"kind"`
	Subreddit string `json:"subreddit,omitempty"`
	Query     string `json:"query,omitempty"`
	Domain    string `json:"domain,omitempty"`
	Board     string `json:"board,omitempty"`
	URL       string `json:"url,omitempty"`
	Label     string `json:"label,omitempty"`
}

// Subreddit returns a listing descriptor for name ("r/" prefix tolerated).
func Subreddit(name string) Descriptor {
	return Descriptor{Kind: KindSubreddit, Subreddit: trimSubredditPrefix(name)}
}

// Search returns a keyword search descriptor.
func Search(query string) Descriptor {
	return Descriptor{Kind: KindSearch, Query: query}
}

// Imageboard returns a catalog descriptor for domain/board.
func Imageboard(domain, board string) Descriptor {
	return Descriptor{Kind: KindImageboard, Domain: domain, Board: board}
}

// Feed returns an RSS descriptor. label defaults to "Web".
func Feed(url, label string) Descriptor {
	if label == "" {
		label = "Web"
	}
	return Descriptor{Kind: KindFeed, URL: url, Label: label}
}

// String renders the descriptor in the form a user would type it.
func (d Descriptor) String() string {
	switch d.Kind {
	case KindSubreddit:
		return "r/" + d.Subreddit
	case KindSearch:
		return fmt.Sprintf("search:%q", d.Query)
	case KindImageboard:
		return d.Domain + "/" + d.Board
	case KindFeed:
		return d.URL
	default:
		return string(d.Kind)
	}
}

// Key identifies a descriptor for duplicate detection.
func (d Descriptor) Key() string {
	return string(d.Kind) + "|" + strings.ToLower(d.String())
}

var imageboardPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?((?:[a-z0-9-]+\.)+(?:org|net|com|top|xyz))/([a-z0-9]+)`)

// Parse classifies a user-typed source string. Rules are tried in order:
//
//	r/<name>                 subreddit listing
//	4chan, 4chan/<board>     boards.4chan.org catalog (board "b" by default)
//	<host>.<tld>/<board>     generic imageboard catalog (dotted host, tld org|net|com|top|xyz)
//	anything with "http"     RSS/web feed
//
// Anything else yields ok == false. Matching is case-insensitive; the subreddit
// name and feed URL keep their original case.
func Parse(s string) (Descriptor, bool) {
	raw := strings.TrimSpace(s)
	lower := strings.ToLower(raw)

	switch {
	case lower == "":
		return Descriptor{}, false
	case strings.HasPrefix(lower, "r/"):
		name := strings.Trim(raw[2:], "/ ")
		if name == "" {
			return Descriptor{}, false
		}
		return Subreddit(name), true
	case lower == "4chan" || strings.HasPrefix(lower, "4chan/"):
		board := strings.Trim(strings.TrimPrefix(lower, "4chan"), "/")
		if board == "" {
			board = DefaultFourChanBoard
		}
		return Imageboard(FourChanDomain, board), true
	}

	if m := imageboardPattern.FindStringSubmatch(lower); m != nil {
		return Imageboard(m[1], m[2]), true
	}
	if strings.Contains(lower, "http") {
		return Feed(raw, "Web"), true
	}
	return Descriptor{}, false
}

// FromLink maps an identity source link to a descriptor. Platforms without a
// live adapter return ok == false.
//
// Imageboard link ids are normalized by stripping any scheme and surrounding
// slashes, then splitting on "/" and dropping empty segments. The domain is the
// first segment (always boards.4chan.org for the 4chan platform) and the board
// is the second segment when present, else the first.
func FromLink(link models.SourceLink) (Descriptor, bool) {
	switch link.Platform {
	case models.PlatformReddit:
		name := trimSubredditPrefix(link.ID)
		if name == "" {
			return Descriptor{}, false
		}
		return Subreddit(name), true
	case models.Platform4chan, models.PlatformImageboard:
		segs := linkSegments(link.ID)
		if len(segs) == 0 {
			return Descriptor{}, false
		}
		board := segs[0]
		if len(segs) > 1 {
			board = segs[1]
		}
		domain := segs[0]
		if link.Platform == models.Platform4chan {
			domain = FourChanDomain
		}
		return Imageboard(domain, board), true
	case models.PlatformWeb:
		if strings.TrimSpace(link.ID) == "" {
			return Descriptor{}, false
		}
		return Feed(link.ID, link.Label), true
	default:
		return Descriptor{}, false
	}
}

func linkSegments(id string) []string {
	id = strings.TrimSpace(id)
	if i := strings.Index(id, "://"); i >= 0 {
		id = id[i+3:]
	}
	parts := strings.Split(strings.Trim(id, "/"), "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func trimSubredditPrefix(name string) string {
	name = strings.TrimSpace(name)
	if len(name) >= 2 && strings.EqualFold(name[:2], "r/") {
		name = name[2:]
	}
	return strings.Trim(name, "/")
}
