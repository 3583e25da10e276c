// Package discussion loads the comment thread and related threads for one
// feed item on demand.
package discussion

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ajitpratap0/lumina/internal/metrics"
	"github.com/ajitpratap0/lumina/internal/models"
	"github.com/ajitpratap0/lumina/internal/moderation"
	"github.com/ajitpratap0/lumina/internal/reddit"
)

// MaxReplies is the number of replies kept under each top-level comment.
const MaxReplies = 2

// ImageboardBody is the body text of the imageboard placeholder context.
const ImageboardBody = "Viewing imageboard thread..."

// ThreadFetcher fetches the raw discussion of a reddit post.
type ThreadFetcher interface {
	Thread(ctx context.Context, permalink string) (*reddit.Thread, error)
}

// Service builds thread contexts.
type Service struct {
	threads ThreadFetcher
	filter  moderation.Filter
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a discussion service. A nil filter uses the default
// keyword filter.
func NewService(threads ThreadFetcher, filter moderation.Filter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if filter == nil {
		filter = moderation.NewFilter(logger)
	}
	return &Service{threads: threads, filter: filter, logger: logger, now: time.Now}
}

// ThreadContext returns the discussion for permalink. knownBody is the body
// text the caller already holds; the returned BodyText is the longer of it and
// the fetched self-text. It never fails: fetch errors produce an empty context
// that keeps knownBody.
func (s *Service) ThreadContext(ctx context.Context, permalink, knownBody string) models.ThreadContext {
	metrics.Inc(metrics.ThreadContextTotal)
	empty := models.ThreadContext{Comments: []models.Comment{}, BodyText: knownBody, RelatedThreads: []models.RelatedThread{}}

	switch {
	case strings.TrimSpace(permalink) == "":
		return empty
	case isImageboard(permalink):
		tc := s.imageboardPlaceholder()
		tc.BodyText = MergeBody(knownBody, tc.BodyText)
		return tc
	case isAbsolute(permalink) && !isReddit(permalink):
		return empty
	}

	t, err := s.threads.Thread(ctx, permalink)
	if err != nil {
		s.logger.Warn("thread fetch failed", "permalink", permalink, "error", err)
		return empty
	}

	comments := moderation.Comments(s.filter, t.Comments)
	for i := range comments {
		replies := moderation.Comments(s.filter, comments[i].Replies)
		if len(replies) > MaxReplies {
			replies = replies[:MaxReplies]
		}
		comments[i].Replies = replies
	}
	related := t.Crossposts
	if related == nil {
		related = []models.RelatedThread{}
	}
	return models.ThreadContext{Comments: comments, BodyText: MergeBody(knownBody, t.BodyText), RelatedThreads: related}
}

func (s *Service) imageboardPlaceholder() models.ThreadContext {
	now := s.now().UTC()
	return models.ThreadContext{
		Comments: []models.Comment{
			{ID: "1", Author: "Anonymous", Body: ">> OP based", Timestamp: now},
			{ID: "2", Author: "Anonymous", Body: "checked", Timestamp: now},
		},
		BodyText:       ImageboardBody,
		RelatedThreads: []models.RelatedThread{},
	}
}

// MergeBody returns the longer of the known and fetched body texts.
func MergeBody(known, fetched string) string {
	if len(fetched) > len(known) {
		return fetched
	}
	return known
}

func isImageboard(permalink string) bool {
	lower := strings.ToLower(permalink)
	if strings.Contains(lower, "4chan.org") || strings.Contains(lower, "4channel.org") {
		return true
	}
	if !isAbsolute(permalink) || isReddit(permalink) {
		return false
	}
	u, err := url.Parse(permalink)
	return err == nil && strings.Contains(u.Path, "/thread/")
}

func isAbsolute(permalink string) bool {
	lower := strings.ToLower(permalink)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isReddit(permalink string) bool {
	u, err := url.Parse(permalink)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "reddit.com" || strings.HasSuffix(host, ".reddit.com")
}
