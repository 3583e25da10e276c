// Package mcp implements the Model Context Protocol server for lumina.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/lumina/internal/feed"
	"github.com/ajitpratap0/lumina/internal/models"
	"github.com/ajitpratap0/lumina/internal/source"
)

// defaultFeedLimit caps the number of items returned by the feed tool.
const defaultFeedLimit = 20

// FeedRefresher runs one feed refresh.
type FeedRefresher interface {
	Refresh(ctx context.Context, f models.FilterState) feed.Result
}

// ThreadLoader loads the discussion context of one item.
type ThreadLoader interface {
	ThreadContext(ctx context.Context, permalink, knownBody string) models.ThreadContext
}

// IdentityFinder resolves free text to an identity profile.
type IdentityFinder interface {
	FindByText(ctx context.Context, query string) (*models.IdentityProfile, bool)
}

// BoardLister lists saved boards.
type BoardLister interface {
	Boards(ctx context.Context) []models.SavedBoard
}

// Server wraps an MCPServer with lumina dependencies.
type Server struct {
	mcp        *mcpserver.MCPServer
	feed       FeedRefresher
	threads    ThreadLoader
	identities IdentityFinder
	boards     BoardLister
	logger     *slog.Logger
}

// NewServer creates a new MCP server. Nil dependencies make the
// corresponding tool calls return an error response instead of panicking.
func NewServer(fr FeedRefresher, tl ThreadLoader, idf IdentityFinder, bl BoardLister, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		feed:       fr,
		threads:    tl,
		identities: idf,
		boards:     bl,
		logger:     logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"lumina",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildFeedTool(), s.handleFeed)
	mcpSrv.AddTool(buildThreadContextTool(), s.handleThreadContext)
	mcpSrv.AddTool(buildFindIdentityTool(), s.handleFindIdentity)
	mcpSrv.AddTool(buildListBoardsTool(), s.handleListBoards)
	mcpSrv.AddTool(buildParseSourceTool(), s.handleParseSource)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleFeed is the exported handler for the "feed" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleFeed(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleFeed(ctx, req)
}

// HandleThreadContext is the exported handler for the "thread_context" tool.
func (s *Server) HandleThreadContext(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleThreadContext(ctx, req)
}

// HandleFindIdentity is the exported handler for the "find_identity" tool.
func (s *Server) HandleFindIdentity(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleFindIdentity(ctx, req)
}

// HandleListBoards is the exported handler for the "list_boards" tool.
func (s *Server) HandleListBoards(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleListBoards(ctx, req)
}

// HandleParseSource is the exported handler for the "parse_source" tool.
func (s *Server) HandleParseSource(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleParseSource(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// splitList splits a comma-separated argument, dropping empty entries.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// --- tool definitions ---

func buildFeedTool() mcpgo.Tool {
	return mcpgo.NewTool("feed",
		mcpgo.WithDescription("Aggregate a media feed from Reddit, imageboards and RSS for the given filters. Falls back to bundled or generated posts when nothing live matches."),
		mcpgo.WithString("persons",
			mcpgo.Description("Comma-separated person names or aliases"),
		),
		mcpgo.WithString("sources",
			mcpgo.Description("Comma-separated sources: r/<sub>, 4chan/<board>, <host>/<board> or a feed URL"),
		),
		mcpgo.WithString("tags",
			mcpgo.Description("Comma-separated tags"),
		),
		mcpgo.WithString("query",
			mcpgo.Description("Free-text search query"),
		),
		mcpgo.WithString("sort",
			mcpgo.Description("Sort order: latest, top or random (default: random)"),
		),
		mcpgo.WithNumber("limit",
			mcpgo.Description("Maximum number of items returned (default: 20)"),
		),
	)
}

func buildThreadContextTool() mcpgo.Tool {
	return mcpgo.NewTool("thread_context",
		mcpgo.WithDescription("Load the filtered comments, body text and related threads of a post."),
		mcpgo.WithString("permalink",
			mcpgo.Required(),
			mcpgo.Description("Reddit permalink or imageboard thread URL"),
		),
		mcpgo.WithString("body",
			mcpgo.Description("Body text already known for the post; the longer of it and the fetched self-text is returned"),
		),
	)
}

func buildFindIdentityTool() mcpgo.Tool {
	return mcpgo.NewTool("find_identity",
		mcpgo.WithDescription("Resolve free text to a known identity profile by alias."),
		mcpgo.WithString("text",
			mcpgo.Required(),
			mcpgo.Description("Text that may mention a person"),
		),
	)
}

func buildListBoardsTool() mcpgo.Tool {
	return mcpgo.NewTool("list_boards",
		mcpgo.WithDescription("List the saved filter boards, newest first."),
	)
}

func buildParseSourceTool() mcpgo.Tool {
	return mcpgo.NewTool("parse_source",
		mcpgo.WithDescription("Classify a source string as a subreddit, imageboard board or RSS feed."),
		mcpgo.WithString("input",
			mcpgo.Required(),
			mcpgo.Description("Source string as a user would type it"),
		),
	)
}

// --- tool handlers ---

func (s *Server) handleFeed(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.feed == nil {
		return mcpgo.NewToolResultError("feed service is unavailable"), nil
	}

	f := models.InitialFilters()
	f.Persons = splitList(req.GetString("persons", ""))
	f.Sources = splitList(req.GetString("sources", ""))
	f.Tags = splitList(req.GetString("tags", ""))
	f.SearchQuery = strings.TrimSpace(req.GetString("query", ""))
	if sort := req.GetString("sort", ""); sort != "" {
		f.SortBy = models.SortOption(sort)
		if !f.SortBy.IsValid() {
			return mcpgo.NewToolResultErrorf("invalid sort %q: must be one of latest, top, random", sort), nil
		}
	}
	limit := req.GetInt("limit", defaultFeedLimit)
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	res := s.feed.Refresh(ctx, f)
	items := res.Items
	if len(items) > limit {
		items = items[:limit]
	}
	s.logger.Info("mcp: feed refreshed", "origin", res.Origin, "items", len(res.Items))

	result := map[string]any{
		"origin": res.Origin,
		"total":  len(res.Items),
		"items":  items,
	}
	return toolResultJSON(result)
}

func (s *Server) handleThreadContext(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.threads == nil {
		return mcpgo.NewToolResultError("discussion service is unavailable"), nil
	}
	permalink := strings.TrimSpace(req.GetString("permalink", ""))
	if permalink == "" {
		return mcpgo.NewToolResultError("permalink is required and must not be empty"), nil
	}
	return toolResultJSON(s.threads.ThreadContext(ctx, permalink, req.GetString("body", "")))
}

func (s *Server) handleFindIdentity(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.identities == nil {
		return mcpgo.NewToolResultError("identity graph is unavailable"), nil
	}
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcpgo.NewToolResultError("text is required and must not be empty"), nil
	}
	p, ok := s.identities.FindByText(ctx, text)
	result := map[string]any{
		"found":   ok,
		"profile": p,
	}
	return toolResultJSON(result)
}

func (s *Server) handleListBoards(ctx context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.boards == nil {
		return mcpgo.NewToolResultError("board store is unavailable"), nil
	}
	return toolResultJSON(map[string]any{"boards": s.boards.Boards(ctx)})
}

func (s *Server) handleParseSource(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	input := req.GetString("input", "")
	d, ok := source.Parse(input)
	if !ok {
		return mcpgo.NewToolResultErrorf("unrecognized source %q", input), nil
	}
	result := map[string]any{
		"source":  d,
		"display": d.String(),
	}
	return toolResultJSON(result)
}
