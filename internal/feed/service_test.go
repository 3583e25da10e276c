package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ajitpratap0/lumina/internal/models"
	"github.com/ajitpratap0/lumina/internal/planner"
	"github.com/ajitpratap0/lumina/internal/source"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, 12, 24, 12, 0, 0, 0, time.UTC)

type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

type staticPlanner []planner.Directive

func (p staticPlanner) Plan(context.Context, models.FilterState) []planner.Directive { return p }

type fakeReddit struct {
	mu       sync.Mutex
	listings map[string][]models.FeedItem
	failing  map[string]bool
	delay    map[string]time.Duration
	calls    []string
}

func (f *fakeReddit) Listing(ctx context.Context, sub string) ([]models.FeedItem, error) {
	f.mu.Lock()
	f.calls = append(f.calls, sub)
	d := f.delay[sub]
	f.mu.Unlock()
	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.failing[sub] {
		return nil, errors.New("status 503")
	}
	return f.listings[sub], nil
}

func (f *fakeReddit) Search(_ context.Context, q string) ([]models.FeedItem, error) {
	return []models.FeedItem{item("search-"+q, 1)}, nil
}

type fakeCatalog struct{ terms []string }

func (f *fakeCatalog) Catalog(_ context.Context, domain, board string, terms []string) ([]models.FeedItem, error) {
	f.terms = terms
	return []models.FeedItem{item(domain+"-"+board+"-1", 1)}, nil
}

type fakeGenerator struct {
	posts []models.MockPost
	err   error
	ctx   string
}

func (g *fakeGenerator) GenerateMockPosts(_ context.Context, _ models.FilterState, graphContext string, _ int) ([]models.MockPost, error) {
	g.ctx = graphContext
	return g.posts, g.err
}

type fakeIdentities struct{}

func (fakeIdentities) FindByText(_ context.Context, q string) (*models.IdentityProfile, bool) {
	if strings.Contains(strings.ToLower(q), "laufey") {
		return &models.IdentityProfile{ID: "laufey", Name: "Laufey"}, true
	}
	return nil, false
}

func (fakeIdentities) PickImage(_ context.Context, id string) string {
	return "https://img.example/" + id + ".jpg"
}

func (fakeIdentities) PromptContext(_ context.Context, names []string) string {
	return "ctx:" + strings.Join(names, ",")
}

func item(id string, likes int64) models.FeedItem {
	return models.FeedItem{
		ID:       id,
		Type:     models.MediaImage,
		MediaURL: "https://img.example/" + id,
		Likes:    likes,
	}
}

func newTestService(deps Deps) *Service {
	if deps.Shuffler == nil {
		deps.Shuffler = noShuffle{}
	}
	deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewService(deps)
	s.now = func() time.Time { return fixedNow }
	return s
}

func ids(items []models.FeedItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func TestRefresh_PreservesPlanOrderAcrossConcurrentDirectives(t *testing.T) {
	reddit := &fakeReddit{
		listings: map[string][]models.FeedItem{
			"a": {item("a1", 1), item("a2", 2)},
			"b": {item("b1", 3)},
			"c": {item("c1", 4)},
		},
		// The first directive finishes last.
		delay: map[string]time.Duration{"a": 30 * time.Millisecond},
	}
	s := newTestService(Deps{
		Planner: staticPlanner{
			{Source: source.Subreddit("a")},
			{Source: source.Subreddit("b")},
			{Source: source.Subreddit("c")},
		},
		Reddit: reddit,
	})

	res := s.Refresh(context.Background(), models.FilterState{SortBy: models.SortRandom})

	assert.Equal(t, OriginLive, res.Origin)
	assert.Equal(t, []string{"a1", "a2", "b1", "c1"}, ids(res.Items))
	assert.Len(t, reddit.calls, 3)
}

func TestRefresh_FailedAdapterDegradesToEmpty(t *testing.T) {
	reddit := &fakeReddit{
		listings: map[string][]models.FeedItem{"ok": {item("ok1", 1)}},
		failing:  map[string]bool{"down": true},
	}
	s := newTestService(Deps{
		Planner: staticPlanner{{Source: source.Subreddit("down")}, {Source: source.Subreddit("ok")}},
		Reddit:  reddit,
	})

	res := s.Refresh(context.Background(), models.FilterState{})
	assert.Equal(t, OriginLive, res.Origin)
	assert.Equal(t, []string{"ok1"}, ids(res.Items))
}

func TestRefresh_DropsUndisplayableAndDuplicates(t *testing.T) {
	noMedia := models.FeedItem{ID: "bare", Type: models.MediaImage}
	text := models.FeedItem{ID: "txt", Type: models.MediaText}
	reddit := &fakeReddit{listings: map[string][]models.FeedItem{
		"a": {item("x", 1), noMedia, text},
		"b": {item("x", 99)},
	}}
	s := newTestService(Deps{
		Planner: staticPlanner{{Source: source.Subreddit("a")}, {Source: source.Subreddit("b")}},
		Reddit:  reddit,
	})

	res := s.Refresh(context.Background(), models.FilterState{})
	assert.Equal(t, []string{"x", "txt"}, ids(res.Items))
	assert.Equal(t, int64(1), res.Items[0].Likes)
}

func TestRefresh_SortTop(t *testing.T) {
	reddit := &fakeReddit{listings: map[string][]models.FeedItem{
		"a": {item("low", 1), item("high", 50)},
		"b": {item("mid", 10)},
	}}
	s := newTestService(Deps{
		Planner: staticPlanner{{Source: source.Subreddit("a")}, {Source: source.Subreddit("b")}},
		Reddit:  reddit,
	})

	res := s.Refresh(context.Background(), models.FilterState{SortBy: models.SortTop})
	assert.Equal(t, []string{"high", "mid", "low"}, ids(res.Items))
}

func TestRefresh_PassesTermsToCatalog(t *testing.T) {
	catalog := &fakeCatalog{}
	s := newTestService(Deps{
		Planner: staticPlanner{{Source: source.Imageboard(source.FourChanDomain, "b"), Terms: []string{"irl"}}},
		Catalog: catalog,
	})

	res := s.Refresh(context.Background(), models.FilterState{})
	require.Len(t, res.Items, 1)
	assert.Equal(t, []string{"irl"}, catalog.terms)
}

func TestRefresh_FallsBackToFixtures(t *testing.T) {
	// Every live source fails; the bundled fixtures still match the person.
	reddit := &fakeReddit{failing: map[string]bool{"TaylorSwift": true}}
	s := newTestService(Deps{
		Planner: staticPlanner{{Source: source.Subreddit("TaylorSwift")}},
		Reddit:  reddit,
	})

	res := s.Refresh(context.Background(), models.FilterState{Persons: []string{"Taylor Swift"}})

	assert.Equal(t, OriginFixtures, res.Origin)
	require.NotEmpty(t, res.Items)
	for _, it := range res.Items {
		assert.Contains(t, strings.ToLower(it.Author.Name+" "+it.Source), "taylor")
	}
}

func TestRefresh_GeneratedFallback(t *testing.T) {
	gen := &fakeGenerator{posts: []models.MockPost{
		{ID: "g1", Type: "image", Caption: "Laufey live in Reykjavik", AuthorName: "fan", Width: 1200, Height: 600},
		{Type: "image", Caption: "something else"},
		{ID: "g3", Type: "text", Caption: "thoughts", BodyText: "long form"},
	}}
	s := newTestService(Deps{
		Planner:    staticPlanner{},
		Identities: fakeIdentities{},
		Generator:  gen,
	})

	f := models.FilterState{Persons: []string{"Nobody Matches"}, SortBy: models.SortRandom}
	res := s.Refresh(context.Background(), f)

	require.Equal(t, OriginGenerated, res.Origin)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "ctx:Nobody Matches", gen.ctx)

	first := res.Items[0]
	assert.Equal(t, "g1", first.ID)
	assert.Equal(t, "https://img.example/laufey.jpg", first.MediaURL)
	assert.Equal(t, models.AspectWidescreen, first.AspectRatio)
	assert.Equal(t, int64(100), first.Likes)

	second := res.Items[1]
	assert.True(t, strings.HasPrefix(second.ID, "gen-"))
	assert.Equal(t, 600, second.Width)
	assert.Equal(t, 800, second.Height)
	assert.Contains(t, second.MediaURL, "https://picsum.photos/seed/")
	assert.True(t, strings.HasSuffix(second.MediaURL, "/600/800"))

	third := res.Items[2]
	assert.Equal(t, models.MediaText, third.Type)
	assert.Empty(t, third.MediaURL)
	assert.True(t, third.Displayable())
}

func TestRefresh_GeneratedUnknownTypeRendersAsImage(t *testing.T) {
	gen := &fakeGenerator{posts: []models.MockPost{
		{ID: "odd", Type: "carousel", Caption: "slides"},
		{ID: "loud", Type: " TEXT ", Caption: "shouting", BodyText: "body"},
	}}
	s := newTestService(Deps{Planner: staticPlanner{}, Generator: gen})

	res := s.Refresh(context.Background(), models.FilterState{SearchQuery: "zzzz-no-fixture-has-this", SortBy: models.SortRandom})
	require.Equal(t, OriginGenerated, res.Origin)
	require.Len(t, res.Items, 2)
	assert.Equal(t, models.MediaImage, res.Items[0].Type)
	assert.NotEmpty(t, res.Items[0].MediaURL)
	assert.Equal(t, models.MediaText, res.Items[1].Type)
	assert.Empty(t, res.Items[1].MediaURL)
}

func TestRefresh_GeneratorErrorYieldsEmpty(t *testing.T) {
	s := newTestService(Deps{
		Planner:   staticPlanner{},
		Generator: &fakeGenerator{err: errors.New("provider unavailable")},
	})

	res := s.Refresh(context.Background(), models.FilterState{SearchQuery: "zzzz-no-fixture-has-this"})
	assert.Equal(t, OriginEmpty, res.Origin)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestRefresh_NoGeneratorYieldsEmpty(t *testing.T) {
	s := newTestService(Deps{Planner: staticPlanner{{Source: source.Feed("https://example.com/rss", "")}}})

	res := s.Refresh(context.Background(), models.FilterState{Tags: []string{"no-such-tag-anywhere"}})
	assert.Equal(t, OriginEmpty, res.Origin)
	assert.NotNil(t, res.Items)
}
