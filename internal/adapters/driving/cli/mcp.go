package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uakbr/github-blog-crm/internal/adapters/driving/mcp"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driving"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
and read the posts.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead.

Tools:     search_posts, get_post, reload
Resources: blogcrm://index, blogcrm://stats, blogcrm://posts/{postId}

Examples:
  # Stdio mode (default)
  blogcrm mcp serve

  # HTTP mode
  blogcrm mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

// serveMCP runs the server until ctx is done. Tests replace it.
var serveMCP = func(ctx context.Context, server *mcp.Server, addr string) error {
	if addr != "" {
		return server.RunHTTP(ctx, addr)
	}
	return server.Run(ctx)
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	server, err := newMCPServer(svc.Posts)
	if err != nil {
		return err
	}

	addr := ""
	if mcpPort > 0 {
		addr = fmt.Sprintf(":%d", mcpPort)
		// Stdout carries the protocol in stdio mode, so only announce HTTP.
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
	}
	return serveMCP(cmd.Context(), server, addr)
}

func newMCPServer(posts driving.PostService) (*mcp.Server, error) {
	return mcp.NewServer(&mcp.Ports{Posts: posts})
}
