package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeProvider completes requests with the Anthropic Messages API.
type ClaudeProvider struct {
	client *anthropic.Client
	model  string
	logger *slog.Logger
}

// NewClaudeProvider creates a Claude-backed provider. Extra request options
// (base URL, retries) are passed to the SDK client.
func NewClaudeProvider(apiKey, model string, logger *slog.Logger, opts ...option.RequestOption) *ClaudeProvider {
	if logger == nil {
		logger = slog.Default()
	}
	c := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &ClaudeProvider{
		client: &c,
		model:  model,
		logger: logger,
	}
}

// Name implements Provider.
func (p *ClaudeProvider) Name() string { return "claude" }

// Complete implements Provider.
func (p *ClaudeProvider) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	msgs := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Text)
		if m.Role == RoleModel {
			msgs = append(msgs, anthropic.NewAssistantMessage(block))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(block))
		}
	}

	system := req.System
	if req.JSON {
		system = strings.TrimSpace(system + "\nOutput only valid JSON.")
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages:  msgs,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}

	var responseText string
	for i := range resp.Content {
		if resp.Content[i].Type == "text" {
			responseText = strings.TrimSpace(resp.Content[i].Text)
			break
		}
	}
	if responseText == "" {
		return "", fmt.Errorf("empty response from Claude")
	}
	p.logger.Debug("claude completion", "model", p.model, "chars", len(responseText))
	if req.JSON {
		responseText = stripCodeFence(responseText)
	}
	return responseText, nil
}
