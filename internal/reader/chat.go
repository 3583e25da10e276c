// Package reader answers questions about a library document using the
// configured AI provider.
package reader

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ajitpratap0/lumina/internal/ai"
	"github.com/ajitpratap0/lumina/internal/models"
	"github.com/ajitpratap0/lumina/pkg/textutil"
)

// DefaultContentBudget caps the document excerpt sent with each question, in tokens.
const DefaultContentBudget = 3000

// FallbackAnswer is returned when the model produced no text.
const FallbackAnswer = "I couldn't generate a response."

const (
	instruction = "Answer concisely and reference the text where possible."
	noContent   = "No full content available, rely on summary and general knowledge."
)

// Chatter sends a conversation to a model.
type Chatter interface {
	Chat(ctx context.Context, system string, history []ai.Message, question string) (string, error)
}

// Chat is a reading assistant bound to one AI provider.
type Chat struct {
	ai     Chatter
	budget int
	logger *slog.Logger
}

// NewChat creates a reading assistant. budget <= 0 uses DefaultContentBudget.
func NewChat(c Chatter, budget int, logger *slog.Logger) *Chat {
	if budget <= 0 {
		budget = DefaultContentBudget
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Chat{ai: c, budget: budget, logger: logger}
}

// Ask answers question about item given the earlier turns of the conversation.
// It returns ai.ErrUnavailable when no provider is configured.
func (c *Chat) Ask(ctx context.Context, item models.LibraryItem, history []ai.Message, question string) (string, error) {
	if c == nil || c.ai == nil {
		return "", ai.ErrUnavailable
	}
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("empty question")
	}

	system := instruction + "\n\n" + DocumentContext(item, c.budget)
	answer, err := c.ai.Chat(ctx, system, history, question)
	if err != nil {
		c.logger.Warn("reader chat failed", "item", item.ID, "error", err)
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return FallbackAnswer, nil
	}
	return answer, nil
}

// DocumentContext renders item as the reference text for a chat. Content is
// truncated to roughly budget tokens.
func DocumentContext(item models.LibraryItem, budget int) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful reading assistant. You are answering questions about the following document:\n")
	fmt.Fprintf(&sb, "Title: %s\nAuthor: %s\nSummary: %s\n\n", item.Title, item.Author, item.Summary)

	sb.WriteString("Content/Excerpt:\n")
	if item.Content == "" {
		sb.WriteString(noContent)
	} else {
		sb.WriteString(textutil.TruncateToTokenBudget(item.Content, budget))
	}
	sb.WriteString("\n\nHighlights made by user:\n")
	for _, h := range item.Highlights {
		fmt.Fprintf(&sb, "- %s (Note: %s)\n", h.Text, h.Note)
	}
	return sb.String()
}
