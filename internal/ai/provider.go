// Package ai wraps the optional generative text capability: query expansion,
// synthetic feed generation and reader chat. Every caller treats a nil
// *Assistant as "capability absent".
package ai

import (
	"context"
	"errors"
	"strings"
)

// ErrUnavailable is returned when no provider is configured.
var ErrUnavailable = errors.New("AI capability unavailable")

// Role is the speaker of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of a conversation.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Request is a provider-neutral completion request.
type Request struct {
	System   string
	Messages []Message
	// JSON asks the provider for a bare JSON document.
	JSON        bool
	Temperature *float64
	MaxTokens   int
}

// Provider performs one completion.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

const defaultMaxTokens = 2048

// stripCodeFence removes a surrounding ```json ... ``` fence models sometimes add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func ptr[T any](v T) *T { return &v }
