package reddit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ajitpratap0/lumina/internal/models"
)

// ErrEmptyThread is returned when the thread response carries no post.
var ErrEmptyThread = errors.New("thread response has no post")

// Thread is the unfiltered discussion payload of one post.
type Thread struct {
	BodyText   string
	Comments   []models.Comment
	Crossposts []models.RelatedThread
}

// Thread fetches a post and its top comments (two levels deep).
// permalink may be site-relative ("/r/x/comments/...") or an absolute reddit URL.
func (c *Client) Thread(ctx context.Context, permalink string) (*Thread, error) {
	path := permalink
	if strings.HasPrefix(strings.ToLower(path), "http") {
		u, err := url.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("parsing permalink: %w", err)
		}
		path = u.Path
	}
	path = strings.TrimRight(path, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	endpoint := fmt.Sprintf("%s%s.json?limit=40&depth=2&sort=top", c.baseURL, path)

	var listings []listing
	if err := c.getJSON(ctx, endpoint, &listings); err != nil {
		return nil, fmt.Errorf("fetching thread %s: %w", path, err)
	}
	if len(listings) == 0 || len(listings[0].Data.Children) == 0 {
		return nil, ErrEmptyThread
	}

	var p post
	if err := json.Unmarshal(listings[0].Data.Children[0].Data, &p); err != nil {
		return nil, fmt.Errorf("decoding thread post: %w", err)
	}

	t := &Thread{
		BodyText:   p.Selftext,
		Crossposts: make([]models.RelatedThread, 0, len(p.CrosspostParentList)),
	}
	for _, cp := range p.CrosspostParentList {
		t.Crossposts = append(t.Crossposts, models.RelatedThread{
			ID:        cp.ID,
			Title:     cp.Title,
			Subreddit: prefixed(cp.SubredditNamePrefixed, cp.Subreddit),
			URL:       c.baseURL + cp.Permalink,
			Type:      models.RelatedCrosspost,
		})
	}
	if len(listings) > 1 {
		t.Comments = mapComments(listings[1].Data.Children, 2)
	}
	if t.Comments == nil {
		t.Comments = []models.Comment{}
	}
	return t, nil
}

// mapComments maps "t1" children; "more" placeholders are skipped.
// depth counts the current level, so depth 2 includes one level of replies.
func mapComments(children []thing, depth int) []models.Comment {
	if depth <= 0 {
		return nil
	}
	out := make([]models.Comment, 0, len(children))
	for _, child := range children {
		if child.Kind == "more" {
			continue
		}
		var cm comment
		if err := json.Unmarshal(child.Data, &cm); err != nil {
			continue
		}
		out = append(out, models.Comment{
			ID:        cm.ID,
			Author:    cm.Author,
			Body:      cm.Body,
			Score:     cm.Score,
			Timestamp: unixTime(cm.CreatedUTC),
			Replies:   mapComments(replyChildren(cm.Replies), depth-1),
		})
	}
	return out
}

// replyChildren decodes the "replies" field, which Reddit sends as an empty
// string when there are none and as a Listing otherwise.
func replyChildren(raw json.RawMessage) []thing {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var l listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil
	}
	return l.Data.Children
}
