package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultListenAddr keeps the API on loopback.
	DefaultListenAddr = "127.0.0.1:7777"

	// DefaultExploreProbability is the chance that exploration mode adds an imageboard.
	DefaultExploreProbability = 0.2
)

// AI provider selectors.
const (
	ProviderAuto   = "auto"
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Config holds all configuration for lumina.
type Config struct {
	AI         AIConfig         `mapstructure:"ai"`
	Claude     ClaudeConfig     `mapstructure:"claude"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Reddit     RedditConfig     `mapstructure:"reddit"`
	Imageboard ImageboardConfig `mapstructure:"imageboard"`
	RSS        RSSConfig        `mapstructure:"rss"`
	Feed       FeedConfig       `mapstructure:"feed"`
	Reader     ReaderConfig     `mapstructure:"reader"`
	Store      StoreConfig      `mapstructure:"store"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	API        APIConfig        `mapstructure:"api"`
}

// AIConfig selects the completion provider.
// "auto" prefers Claude, then Gemini, depending on which key is set.
type AIConfig struct {
	Provider string `mapstructure:"provider"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	AuthToken  string `mapstructure:"auth_token"`
}

// ClaudeConfig holds Anthropic Claude API settings.
type ClaudeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// String returns a safe representation of ClaudeConfig with the API key masked.
func (c ClaudeConfig) String() string {
	return fmt.Sprintf("ClaudeConfig{APIKey:%s, Model:%s}", maskAPIKey(c.APIKey), c.Model)
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// String returns a safe representation of GeminiConfig with the API key masked.
func (c GeminiConfig) String() string {
	return fmt.Sprintf("GeminiConfig{APIKey:%s, Model:%s}", maskAPIKey(c.APIKey), c.Model)
}

// maskAPIKey shows first 4 + last 4 chars, replacing the middle with asterisks.
func maskAPIKey(key string) string {
	const visible = 4
	if len(key) <= visible*2 {
		return "***"
	}
	return key[:visible] + "****" + key[len(key)-visible:]
}

// RedditConfig holds the Reddit public JSON endpoint settings.
type RedditConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ImageboardConfig holds catalog fetch settings. An empty relay fetches directly.
type ImageboardConfig struct {
	Relay   string        `mapstructure:"relay"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RSSConfig holds feed fetch settings. An empty relay fetches directly.
type RSSConfig struct {
	Relay   string        `mapstructure:"relay"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FeedConfig tunes feed refreshes.
type FeedConfig struct {
	ExploreProbability float64 `mapstructure:"explore_probability"`
	GenerateFallback   bool    `mapstructure:"generate_fallback"`
}

// ReaderConfig tunes the reading assistant.
type ReaderConfig struct {
	ContentBudget int `mapstructure:"content_budget"`
}

// StoreConfig holds the local persistence location.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("ai.provider", ProviderAuto)
	v.SetDefault("claude.model", "claude-haiku-4-5-20251001")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "")

	v.SetDefault("reddit.base_url", "https://www.reddit.com")
	v.SetDefault("reddit.user_agent", "lumina/1.0")
	v.SetDefault("reddit.timeout", 15*time.Second)

	v.SetDefault("imageboard.relay", "")
	v.SetDefault("imageboard.timeout", 15*time.Second)
	v.SetDefault("rss.relay", "")
	v.SetDefault("rss.timeout", 15*time.Second)

	v.SetDefault("feed.explore_probability", DefaultExploreProbability)
	v.SetDefault("feed.generate_fallback", true)

	v.SetDefault("reader.content_budget", 3000)

	v.SetDefault("store.path", filepath.Join(homeDir(), ".lumina", "lumina.db"))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("api.listen_addr", DefaultListenAddr)
	v.SetDefault("api.auth_token", "")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".lumina"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("LUMINA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map specific env vars
	_ = v.BindEnv("claude.api_key", "LUMINA_CLAUDE_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("gemini.api_key", "LUMINA_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("api.auth_token", "LUMINA_API_AUTH_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK: use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case ProviderAuto, ProviderClaude, ProviderGemini, ProviderNone:
	default:
		return fmt.Errorf("ai.provider must be one of auto, claude, gemini, none (got %q)", c.AI.Provider)
	}
	if c.Reddit.BaseURL == "" {
		return fmt.Errorf("reddit.base_url must not be empty")
	}
	if c.Feed.ExploreProbability < 0 || c.Feed.ExploreProbability > 1 {
		return fmt.Errorf("feed.explore_probability must be between 0 and 1")
	}
	if c.Reader.ContentBudget <= 0 {
		return fmt.Errorf("reader.content_budget must be greater than 0")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json (got %q)", c.Logging.Format)
	}
	return nil
}

// ResolveProvider returns the provider to use after applying "auto": Claude
// when its key is set, else Gemini, else none.
func (c *Config) ResolveProvider() string {
	switch c.AI.Provider {
	case ProviderClaude:
		if c.Claude.APIKey == "" {
			return ProviderNone
		}
		return ProviderClaude
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return ProviderNone
		}
		return ProviderGemini
	case ProviderNone:
		return ProviderNone
	}
	switch {
	case c.Claude.APIKey != "":
		return ProviderClaude
	case c.Gemini.APIKey != "":
		return ProviderGemini
	}
	return ProviderNone
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
