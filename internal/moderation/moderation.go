// Package moderation filters low-quality and spam comments out of discussion
// threads.
package moderation

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ajitpratap0/lumina/internal/metrics"
	"github.com/ajitpratap0/lumina/internal/models"
)

// Filter decides whether a comment is shown.
type Filter interface {
	Accept(c models.Comment) bool
}

// HeuristicFilter uses keyword rules.
type HeuristicFilter struct {
	logger *slog.Logger
}

// NewFilter creates a keyword-based comment filter.
func NewFilter(logger *slog.Logger) *HeuristicFilter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HeuristicFilter{logger: logger}
}

const (
	botAuthor    = "automoderator"
	minBodyRunes = 3
)

// linkPatterns match bodies that carry a link.
var linkPatterns = []string{"http", "www.", ".com/"}

// spamPatterns match solicitation and link-shortener spam.
var spamPatterns = []string{
	"dm me", "message me", "telegram", "whatsapp", "bio", "promo",
	"leaks", "onlyfans", "fansly", "talk dirty", "hot video", "check my",
	"link in", "s.id", "bit.ly", "t.me", "snapchat", "snap",
}

// Accept reports whether c should be shown.
func (f *HeuristicFilter) Accept(c models.Comment) bool {
	if reason := rejectReason(c); reason != "" {
		metrics.Inc(metrics.CommentsRejected)
		f.logger.Debug("comment rejected", "id", c.ID, "reason", reason)
		return false
	}
	return true
}

func rejectReason(c models.Comment) string {
	if strings.EqualFold(c.Author, botAuthor) {
		return "bot"
	}
	body := strings.ToLower(c.Body)
	for _, p := range linkPatterns {
		if strings.Contains(body, p) {
			return "link"
		}
	}
	for _, p := range spamPatterns {
		if strings.Contains(body, p) {
			return "spam"
		}
	}
	if utf8.RuneCountInString(c.Body) < minBodyRunes {
		return "short"
	}
	return ""
}

// Comments returns the accepted comments of cs, in order. Never nil.
func Comments(f Filter, cs []models.Comment) []models.Comment {
	out := make([]models.Comment, 0, len(cs))
	for i := range cs {
		if f.Accept(cs[i]) {
			out = append(out, cs[i])
		}
	}
	return out
}
