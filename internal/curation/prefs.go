package curation

import (
	"context"
	"strings"

	"github.com/ajitpratap0/lumina/internal/fixtures"
	"github.com/ajitpratap0/lumina/internal/models"
)

// FollowedTags returns the followed tags, each with a leading "#".
func (s *Store) FollowedTags(ctx context.Context) []string {
	return load(ctx, s, KeyFollowedTags, fixtures.FollowedTags)
}

// FollowTag adds tag, normalized to a leading "#". Following a tag twice is a no-op.
func (s *Store) FollowTag(ctx context.Context, tag string) ([]string, error) {
	tag = normalizeTag(tag)
	if tag == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tags := s.FollowedTags(ctx)
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return tags, nil
		}
	}
	tags = append(tags, tag)
	if err := s.put(ctx, KeyFollowedTags, tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// UnfollowTag removes tag. Removing a tag that is not followed is a no-op.
func (s *Store) UnfollowTag(ctx context.Context, tag string) ([]string, error) {
	tag = normalizeTag(tag)

	s.mu.Lock()
	defer s.mu.Unlock()

	tags := s.FollowedTags(ctx)
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !strings.EqualFold(t, tag) {
			out = append(out, t)
		}
	}
	if len(out) == len(tags) {
		return tags, nil
	}
	if err := s.put(ctx, KeyFollowedTags, out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeTag(tag string) string {
	tag = strings.TrimLeft(strings.TrimSpace(tag), "#")
	if tag == "" {
		return ""
	}
	return "#" + tag
}

// Theme returns the selected theme.
func (s *Store) Theme(ctx context.Context) models.Theme {
	t := load(ctx, s, KeyTheme, func() models.Theme { return models.ThemeDefault })
	if !t.IsValid() {
		return models.ThemeDefault
	}
	return t
}

// SetTheme selects t. Only known themes are accepted.
func (s *Store) SetTheme(ctx context.Context, t models.Theme) error {
	if !t.IsValid() {
		return ErrInvalidTheme
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(ctx, KeyTheme, t)
}
