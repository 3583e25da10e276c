// Package feed runs one feed refresh: plan, fetch every directive in
// parallel, aggregate, then fall back to fixtures or generated posts.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/lumina/internal/aggregator"
	"github.com/ajitpratap0/lumina/internal/fixtures"
	"github.com/ajitpratap0/lumina/internal/metrics"
	"github.com/ajitpratap0/lumina/internal/models"
	"github.com/ajitpratap0/lumina/internal/planner"
	"github.com/ajitpratap0/lumina/internal/source"
)

// Origin says where the items of a Result came from.
type Origin string

const (
	OriginLive      Origin = "live"
	OriginFixtures  Origin = "fixtures"
	OriginGenerated Origin = "generated"
	OriginEmpty     Origin = "empty"
)

// Result is the outcome of one refresh. Items is never nil.
type Result struct {
	Items  []models.FeedItem `json:"items"`
	Origin Origin            `json:"origin"`
}

// Planner produces the directives for a filter.
type Planner interface {
	Plan(ctx context.Context, f models.FilterState) []planner.Directive
}

// RedditAPI serves subreddit listings and searches.
type RedditAPI interface {
	Listing(ctx context.Context, subreddit string) ([]models.FeedItem, error)
	Search(ctx context.Context, query string) ([]models.FeedItem, error)
}

// CatalogAPI serves imageboard catalogs.
type CatalogAPI interface {
	Catalog(ctx context.Context, domain, board string, terms []string) ([]models.FeedItem, error)
}

// FeedAPI serves RSS feeds.
type FeedAPI interface {
	Fetch(ctx context.Context, feedURL, label string) ([]models.FeedItem, error)
}

// Generator produces synthetic posts when nothing else matched.
type Generator interface {
	GenerateMockPosts(ctx context.Context, f models.FilterState, graphContext string, n int) ([]models.MockPost, error)
}

// Identities resolves authors to representative images and builds prompt context.
type Identities interface {
	FindByText(ctx context.Context, query string) (*models.IdentityProfile, bool)
	PickImage(ctx context.Context, id string) string
	PromptContext(ctx context.Context, names []string) string
}

// Deps are the collaborators of a Service. Adapters left nil are skipped;
// Generator nil disables the generated fallback.
type Deps struct {
	Planner    Planner
	Reddit     RedditAPI
	Catalog    CatalogAPI
	RSS        FeedAPI
	Identities Identities
	Generator  Generator
	Shuffler   aggregator.Shuffler
	Logger     *slog.Logger
}

// Service runs feed refreshes. Concurrent refreshes are independent.
type Service struct {
	deps Deps
	now  func() time.Time
}

// NewService creates a feed service.
func NewService(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Shuffler == nil {
		deps.Shuffler = globalShuffler{}
	}
	return &Service{deps: deps, now: time.Now}
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Refresh plans f, runs every directive concurrently and returns once all of
// them settled. Adapter failures degrade to empty results.
func (s *Service) Refresh(ctx context.Context, f models.FilterState) Result {
	metrics.Inc(metrics.FeedRefreshTotal)
	dirs := s.deps.Planner.Plan(ctx, f)

	// Slot results by directive index so flattening follows plan order.
	results := make([][]models.FeedItem, len(dirs))
	var eg errgroup.Group
	for i, d := range dirs {
		eg.Go(func() error {
			results[i] = s.dispatch(ctx, d)
			return nil
		})
	}
	_ = eg.Wait()

	items := aggregator.Aggregate(results, f.SortBy, s.deps.Shuffler)
	s.deps.Logger.Info("feed refreshed", "directives", len(dirs), "items", len(items))
	if len(items) > 0 {
		return Result{Items: items, Origin: OriginLive}
	}
	return s.fallback(ctx, f)
}

func (s *Service) dispatch(ctx context.Context, d planner.Directive) []models.FeedItem {
	var (
		items []models.FeedItem
		err   error
	)
	src := d.Source
	switch {
	case src.Kind == source.KindSubreddit && s.deps.Reddit != nil:
		items, err = s.deps.Reddit.Listing(ctx, src.Subreddit)
	case src.Kind == source.KindSearch && s.deps.Reddit != nil:
		items, err = s.deps.Reddit.Search(ctx, src.Query)
	case src.Kind == source.KindImageboard && s.deps.Catalog != nil:
		items, err = s.deps.Catalog.Catalog(ctx, src.Domain, src.Board, d.Terms)
	case src.Kind == source.KindFeed && s.deps.RSS != nil:
		items, err = s.deps.RSS.Fetch(ctx, src.URL, src.Label)
	default:
		s.deps.Logger.Debug("no adapter for directive", "source", src.String())
		return nil
	}
	metrics.Inc(metrics.AdapterCallsTotal)
	if err != nil {
		metrics.Inc(metrics.AdapterFailuresTotal)
		s.deps.Logger.Warn("adapter failed", "source", src.String(), "error", err)
		return nil
	}

	out := items[:0:0]
	for i := range items {
		if items[i].Displayable() {
			out = append(out, items[i])
		}
	}
	return out
}

func (s *Service) fallback(ctx context.Context, f models.FilterState) Result {
	if matched := fixtures.Match(fixtures.FeedItems(s.now()), f); len(matched) > 0 {
		metrics.Inc(metrics.FeedFallbackFixtures)
		s.deps.Logger.Info("using fixture fallback", "items", len(matched))
		return Result{Items: aggregator.Aggregate([][]models.FeedItem{matched}, f.SortBy, s.deps.Shuffler), Origin: OriginFixtures}
	}

	if s.deps.Generator != nil {
		if items := s.generate(ctx, f); len(items) > 0 {
			metrics.Inc(metrics.FeedFallbackGenerated)
			return Result{Items: aggregator.Aggregate([][]models.FeedItem{items}, f.SortBy, s.deps.Shuffler), Origin: OriginGenerated}
		}
	}

	metrics.Inc(metrics.FeedEmptyTotal)
	return Result{Items: []models.FeedItem{}, Origin: OriginEmpty}
}

func (s *Service) generate(ctx context.Context, f models.FilterState) []models.FeedItem {
	var graphContext string
	if s.deps.Identities != nil {
		graphContext = s.deps.Identities.PromptContext(ctx, f.Persons)
	}
	posts, err := s.deps.Generator.GenerateMockPosts(ctx, f, graphContext, models.MockPostCount)
	if err != nil {
		metrics.Inc(metrics.GenerationFailures)
		s.deps.Logger.Warn("mock generation failed", "error", err)
		return nil
	}

	now := s.now().UTC()
	items := make([]models.FeedItem, 0, len(posts))
	for i := range posts {
		items = append(items, s.fromMock(ctx, &posts[i], i, now))
	}
	return items
}

func (s *Service) fromMock(ctx context.Context, p *models.MockPost, index int, now time.Time) models.FeedItem {
	width, height := p.Width, p.Height
	if width <= 0 {
		width = 600
	}
	if height <= 0 {
		height = 800
	}
	id := p.ID
	if id == "" {
		id = fmt.Sprintf("gen-%d-%d", now.UnixMilli(), index)
	}

	kind := models.MediaImage
	media := fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", url.PathEscape(id), width, height)
	if s.deps.Identities != nil {
		profile, ok := s.deps.Identities.FindByText(ctx, p.AuthorName)
		if !ok {
			profile, ok = s.deps.Identities.FindByText(ctx, p.Caption)
		}
		if ok {
			media = s.deps.Identities.PickImage(ctx, profile.ID)
		}
	}
	if mt := models.MediaType(strings.ToLower(strings.TrimSpace(p.Type))); !mt.IsValid() {
		s.deps.Logger.Debug("mock post has unknown type, rendering as image", "id", id, "type", p.Type)
	} else if mt == models.MediaText {
		kind = models.MediaText
		media = ""
	}
	likes := p.Likes
	if likes == 0 {
		likes = 100
	}

	return models.FeedItem{
		ID:          id,
		Type:        kind,
		Caption:     p.Caption,
		BodyText:    p.BodyText,
		Author:      models.Author{Name: p.AuthorName, Handle: p.AuthorHandle},
		Source:      p.SourcePlatform,
		Timestamp:   now,
		AspectRatio: models.ClassifyAspect(width, height),
		Width:       width,
		Height:      height,
		Likes:       likes,
		MediaURL:    media,
	}
}
