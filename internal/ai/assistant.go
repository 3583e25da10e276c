package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ajitpratap0/lumina/internal/models"
	"github.com/ajitpratap0/lumina/pkg/textutil"
)

const maxSuggestedSubreddits = 5

// Assistant implements the dashboard's AI features on top of a Provider.
type Assistant struct {
	provider Provider
	logger   *slog.Logger
}

// NewAssistant returns nil when provider is nil so callers can keep a single
// "capability absent" check.
func NewAssistant(provider Provider, logger *slog.Logger) *Assistant {
	if provider == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{provider: provider, logger: logger}
}

// ProviderName reports which backend is in use.
func (a *Assistant) ProviderName() string {
	if a == nil {
		return ""
	}
	return a.provider.Name()
}

const expansionPromptTemplate = `The user is searching for <query>%s</query> in a visual media feed application.
Identify 3-5 existing, popular Reddit subreddits that would contain high-quality images or videos matching this intent. Do not include the r/ prefix.
Also provide a refined search term if the user's query is vague.

Respond with a JSON object: {"relevantSubreddits": ["..."], "refinedSearchTerm": "..."}`

type expansionResponse struct {
	RelevantSubreddits []string `json:"relevantSubreddits"`
	RefinedSearchTerm  string   `json:"refinedSearchTerm"`
}

// ExpandQuery suggests up to five subreddits and a refined search term.
func (a *Assistant) ExpandQuery(ctx context.Context, query string) ([]string, string, error) {
	if a == nil {
		return nil, "", ErrUnavailable
	}
	text, err := a.provider.Complete(ctx, Request{
		System:      "You map search intents to Reddit communities.",
		Messages:    []Message{{Role: RoleUser, Text: fmt.Sprintf(expansionPromptTemplate, textutil.EscapeXML(query))}},
		JSON:        true,
		Temperature: ptr(0.3),
		MaxTokens:   512,
	})
	if err != nil {
		return nil, "", fmt.Errorf("expanding query: %w", err)
	}

	var resp expansionResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, "", fmt.Errorf("parsing expansion response: %w (raw: %s)", err, textutil.Truncate(text, 200))
	}

	subs := make([]string, 0, len(resp.RelevantSubreddits))
	for _, s := range resp.RelevantSubreddits {
		s = strings.Trim(strings.TrimPrefix(strings.TrimSpace(s), "r/"), "/")
		if s != "" {
			subs = append(subs, s)
		}
		if len(subs) == maxSuggestedSubreddits {
			break
		}
	}
	refined := strings.TrimSpace(resp.RefinedSearchTerm)
	if refined == "" {
		refined = query
	}
	a.logger.Debug("query expanded", "query", query, "subreddits", subs, "refined", refined)
	return subs, refined, nil
}

const mockPromptTemplate = `Generate %d mock social media posts.
Filters: %s %s
Tags: %s
Sources: %s
Context: %s

Respond with a JSON object {"items": [...]} where every item has: id, type (one of image, short, gif, text), caption, authorName, authorHandle, sourcePlatform, likes, width, height and optionally bodyText.`

type mockResponse struct {
	Items []models.MockPost `json:"items"`
}

// GenerateMockPosts asks the model for up to n synthetic posts matching the
// filters. graphContext is the identity prompt context for the selected persons.
func (a *Assistant) GenerateMockPosts(ctx context.Context, f models.FilterState, graphContext string, n int) ([]models.MockPost, error) {
	if a == nil {
		return nil, ErrUnavailable
	}
	if n <= 0 {
		n = models.MockPostCount
	}
	prompt := fmt.Sprintf(mockPromptTemplate, n,
		strings.Join(f.Persons, ", "), f.SearchQuery,
		strings.Join(f.Tags, ", "),
		strings.Join(f.Sources, ", "),
		graphContext)

	text, err := a.provider.Complete(ctx, Request{
		System:   "You generate realistic placeholder posts for a media dashboard.",
		Messages: []Message{{Role: RoleUser, Text: prompt}},
		JSON:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("generating mock posts: %w", err)
	}

	var resp mockResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		// Some models return the bare array.
		var items []models.MockPost
		if err2 := json.Unmarshal([]byte(text), &items); err2 != nil {
			return nil, fmt.Errorf("parsing mock posts: %w (raw: %s)", err, textutil.Truncate(text, 200))
		}
		resp.Items = items
	}
	if len(resp.Items) > n {
		resp.Items = resp.Items[:n]
	}
	a.logger.Info("generated mock posts", "count", len(resp.Items))
	return resp.Items, nil
}

// Chat sends a conversation and returns the model's answer.
func (a *Assistant) Chat(ctx context.Context, system string, history []Message, question string) (string, error) {
	if a == nil {
		return "", ErrUnavailable
	}
	msgs := make([]Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: RoleUser, Text: question})

	answer, err := a.provider.Complete(ctx, Request{System: system, Messages: msgs})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return answer, nil
}
