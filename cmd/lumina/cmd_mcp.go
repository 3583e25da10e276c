package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	luminamcp "github.com/ajitpratap0/lumina/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  feed            aggregate a feed for persons, sources, tags and a query
  thread_context  filtered comments and related threads of a post
  find_identity   resolve text to an identity profile
  list_boards     saved boards
  parse_source    classify a source string`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			a, err := newApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("mcp: %w", err)
			}
			defer func() { _ = a.Close() }()

			srv := luminamcp.NewServer(a.feed, a.threads, a.identities, a.curation, logger)

			// Use a standard log.Logger pointing at stderr for the mcp-go error logger.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: lumina MCP server starting", "transport", "stdio")

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
