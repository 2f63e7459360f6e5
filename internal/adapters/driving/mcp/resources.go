package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/normalisers/html"
)

const (
	// uriScheme is the custom URI scheme for blogcrm resources.
	uriScheme = "blogcrm://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index",
		Name:        "index",
		Description: "Summary of every post, newest first",
		MIMEType:    "application/json",
	}, s.handleIndexResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Post, category and tag counts",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "posts/{postId}",
		Name:        "post-content",
		Description: "Plain-text body of a specific post",
		MIMEType:    "text/plain",
	}, s.handlePostResource)
}

// handleIndexResource returns the posts index.
func (s *Server) handleIndexResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if _, err := s.collection(ctx); err != nil {
		return nil, err
	}
	index, err := s.ports.Posts.Index(ctx)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	return jsonResult(req.Params.URI, index)
}

// handleStatsResource returns the collection statistics.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	c, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResult(req.Params.URI, c.Stats)
}

// handlePostResource returns the body of a specific post.
func (s *Server) handlePostResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	postID := extractPostID(req.Params.URI)
	if postID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if _, err := s.collection(ctx); err != nil {
		return nil, err
	}
	post, err := s.ports.Posts.Get(ctx, postID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting post: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     post.Metadata.Title + "\n\n" + html.Text(post.HTML),
		}},
	}, nil
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPostID extracts the post ID from a URI like blogcrm://posts/{postId}.
func extractPostID(uri string) string {
	const prefix = uriScheme + "posts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
