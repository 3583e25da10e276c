package config

import (
	"strings"
	"testing"
)

// validCfg returns a fully-valid Config for mutation testing.
func validCfg() *Config {
	return &Config{
		AI:      AIConfig{Provider: ProviderAuto},
		Reddit:  RedditConfig{BaseURL: "https://www.reddit.com"},
		Feed:    FeedConfig{ExploreProbability: DefaultExploreProbability},
		Reader:  ReaderConfig{ContentBudget: 3000},
		Store:   StoreConfig{Path: "/tmp/lumina.db"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		API:     APIConfig{ListenAddr: DefaultListenAddr},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validCfg().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown provider", func(c *Config) { c.AI.Provider = "openai" }, "ai.provider"},
		{"empty reddit url", func(c *Config) { c.Reddit.BaseURL = "" }, "reddit.base_url"},
		{"probability above 1", func(c *Config) { c.Feed.ExploreProbability = 1.5 }, "explore_probability"},
		{"negative probability", func(c *Config) { c.Feed.ExploreProbability = -0.1 }, "explore_probability"},
		{"zero budget", func(c *Config) { c.Reader.ContentBudget = 0 }, "content_budget"},
		{"empty store path", func(c *Config) { c.Store.Path = "" }, "store.path"},
		{"empty listen addr", func(c *Config) { c.API.ListenAddr = "" }, "listen_addr"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCfg()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestResolveProvider(t *testing.T) {
	tests := []struct {
		name      string
		provider  string
		claude    string
		gemini    string
		wantValue string
	}{
		{"auto prefers claude", ProviderAuto, "sk-ant", "g-key", ProviderClaude},
		{"auto falls back to gemini", ProviderAuto, "", "g-key", ProviderGemini},
		{"auto without keys", ProviderAuto, "", "", ProviderNone},
		{"explicit gemini", ProviderGemini, "sk-ant", "g-key", ProviderGemini},
		{"explicit claude without key", ProviderClaude, "", "g-key", ProviderNone},
		{"explicit none", ProviderNone, "sk-ant", "g-key", ProviderNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCfg()
			cfg.AI.Provider = tt.provider
			cfg.Claude.APIKey = tt.claude
			cfg.Gemini.APIKey = tt.gemini
			if got := cfg.ResolveProvider(); got != tt.wantValue {
				t.Fatalf("ResolveProvider() = %q, want %q", got, tt.wantValue)
			}
		})
	}
}

func TestAPIKeysMasked(t *testing.T) {
	c := ClaudeConfig{APIKey: "sk-ant-0123456789abcdef", Model: "m"}
	if s := c.String(); strings.Contains(s, "0123456789") || !strings.Contains(s, "sk-a****cdef") {
		t.Fatalf("key not masked: %s", s)
	}
	g := GeminiConfig{APIKey: "short"}
	if s := g.String(); !strings.Contains(s, "***") || strings.Contains(s, "short") {
		t.Fatalf("short key not masked: %s", s)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test-key-123")
	t.Setenv("LUMINA_API_LISTEN_ADDR", "127.0.0.1:9999")
	t.Setenv("LUMINA_FEED_EXPLORE_PROBABILITY", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Claude.APIKey != "sk-ant-test-key-123" {
		t.Errorf("claude key = %q", cfg.Claude.APIKey)
	}
	if cfg.API.ListenAddr != "127.0.0.1:9999" {
		t.Errorf("listen addr = %q", cfg.API.ListenAddr)
	}
	if cfg.Feed.ExploreProbability != 0.5 {
		t.Errorf("explore probability = %v", cfg.Feed.ExploreProbability)
	}
	if cfg.ResolveProvider() != ProviderClaude {
		t.Errorf("provider = %q", cfg.ResolveProvider())
	}
}

func TestLoad_InvalidEnvFailsValidation(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LUMINA_AI_PROVIDER", "openai")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error")
	}
}
