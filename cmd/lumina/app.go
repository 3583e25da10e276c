package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ajitpratap0/lumina/internal/ai"
	"github.com/ajitpratap0/lumina/internal/config"
	"github.com/ajitpratap0/lumina/internal/curation"
	"github.com/ajitpratap0/lumina/internal/discussion"
	"github.com/ajitpratap0/lumina/internal/feed"
	"github.com/ajitpratap0/lumina/internal/identity"
	"github.com/ajitpratap0/lumina/internal/imageboard"
	"github.com/ajitpratap0/lumina/internal/moderation"
	"github.com/ajitpratap0/lumina/internal/planner"
	"github.com/ajitpratap0/lumina/internal/reader"
	"github.com/ajitpratap0/lumina/internal/reddit"
	"github.com/ajitpratap0/lumina/internal/rss"
	"github.com/ajitpratap0/lumina/internal/store"
)

// app holds the wired components shared by the commands.
type app struct {
	kv         store.KV
	identities *identity.Graph
	curation   *curation.Store
	assistant  *ai.Assistant
	feed       *feed.Service
	threads    *discussion.Service
	reader     *reader.Chat
}

func newApp(ctx context.Context, logger *slog.Logger) (*app, error) {
	kv, err := store.NewSQLiteStore(cfg.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	a := &app{
		kv:         kv,
		identities: identity.NewGraph(kv, logger),
		curation:   curation.New(kv, logger),
	}

	provider, err := newProvider(ctx, logger)
	if err != nil {
		// Without AI the feed still works; expansion and generation are skipped.
		logger.Warn("AI provider unavailable", "error", err)
	}
	a.assistant = ai.NewAssistant(provider, logger)

	redditClient := reddit.NewClient(
		reddit.WithHTTPClient(&http.Client{Timeout: cfg.Reddit.Timeout}),
		reddit.WithBaseURL(cfg.Reddit.BaseURL),
		reddit.WithUserAgent(cfg.Reddit.UserAgent),
		reddit.WithLogger(logger),
	)
	catalog := imageboard.NewClient(
		imageboard.WithHTTPClient(&http.Client{Timeout: cfg.Imageboard.Timeout}),
		imageboard.WithRelay(cfg.Imageboard.Relay),
		imageboard.WithLogger(logger),
	)
	feeds := rss.NewClient(
		rss.WithHTTPClient(&http.Client{Timeout: cfg.RSS.Timeout}),
		rss.WithRelay(cfg.RSS.Relay),
		rss.WithEnricher(rss.DefaultEnricher()),
		rss.WithLogger(logger),
	)

	var chatter reader.Chatter
	plannerOpts := []planner.Option{planner.WithExploreProbability(cfg.Feed.ExploreProbability)}
	deps := feed.Deps{
		Reddit:     redditClient,
		Catalog:    catalog,
		RSS:        feeds,
		Identities: a.identities,
		Logger:     logger,
	}
	if a.assistant != nil {
		chatter = a.assistant
		plannerOpts = append(plannerOpts, planner.WithExpander(a.assistant))
		if cfg.Feed.GenerateFallback {
			deps.Generator = a.assistant
		}
	}
	deps.Planner = planner.New(a.identities, logger, plannerOpts...)

	a.feed = feed.NewService(deps)
	a.threads = discussion.NewService(redditClient, moderation.NewFilter(logger), logger)
	a.reader = reader.NewChat(chatter, cfg.Reader.ContentBudget, logger)
	return a, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

// newProvider builds the configured AI provider. It returns nil and no error
// when AI is disabled or no key is set.
func newProvider(ctx context.Context, logger *slog.Logger) (ai.Provider, error) {
	switch cfg.ResolveProvider() {
	case config.ProviderClaude:
		logger.Debug("using Claude provider", "config", cfg.Claude.String())
		return ai.NewClaudeProvider(cfg.Claude.APIKey, cfg.Claude.Model, logger), nil
	case config.ProviderGemini:
		logger.Debug("using Gemini provider", "config", cfg.Gemini.String())
		p, err := ai.NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("creating gemini provider: %w", err)
		}
		return p, nil
	}
	return nil, nil
}
