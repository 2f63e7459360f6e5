package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/normalisers/html"
)

// SearchInput is the input schema for the search_posts tool.
type SearchInput struct {
	Query    string   `json:"query,omitempty" jsonschema:"text matched against title, category, tags and excerpt"`
	Category string   `json:"category,omitempty" jsonschema:"only posts in this category"`
	Tags     []string `json:"tags,omitempty" jsonschema:"only posts carrying any of these tags"`
	Status   string   `json:"status,omitempty" jsonschema:"all, published or draft (default all)"`
	Sort     string   `json:"sort,omitempty" jsonschema:"date-desc, date-asc, title-asc, title-desc, views-desc or views-asc"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of posts to return (default 10)"`
}

// SearchOutput is the output schema for the search_posts tool.
type SearchOutput struct {
	Posts []PostSummary `json:"posts"`
	Count int           `json:"count"`
	Total int           `json:"total"`
}

// PostSummary is one post in a search result.
type PostSummary struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Path               string   `json:"path"`
	Date               string   `json:"date,omitempty"`
	Category           string   `json:"category"`
	Tags               []string `json:"tags,omitempty"`
	Draft              bool     `json:"draft"`
	Excerpt            string   `json:"excerpt,omitempty"`
	ReadingTimeMinutes int      `json:"reading_time_minutes"`
}

// GetPostInput is the input schema for the get_post tool.
type GetPostInput struct {
	ID string `json:"id" jsonschema:"the post id as returned by search_posts"`
}

// PostOutput is the output schema for the get_post tool.
type PostOutput struct {
	Post    PostSummary   `json:"post"`
	Author  string        `json:"author,omitempty"`
	Content string        `json:"content"`
	Links   []domain.Link `json:"links,omitempty"`
	Tasks   []domain.Task `json:"tasks,omitempty"`
}

// ReloadInput is the (empty) input schema for the reload tool.
type ReloadInput struct{}

// ReloadOutput is the output schema for the reload tool.
type ReloadOutput struct {
	Posts   int      `json:"posts"`
	Skipped []string `json:"skipped,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_posts",
		Description: "Search and filter blog posts",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_post",
		Description: "Read one blog post as plain text",
	}, s.handleGetPost)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reload",
		Description: "Discard cached responses and load the posts again",
	}, s.handleReload)
}

// handleSearch handles the search_posts tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	q := domain.PostQuery{
		Search: input.Query,
		Tags:   input.Tags,
		Status: domain.PostStatus(input.Status),
		Sort:   domain.SortOrder(input.Sort),
	}
	if input.Category != "" {
		q.Categories = []string{input.Category}
	}
	if q.Sort == "" {
		q.Sort = domain.SortDateDesc
	}

	if _, err := s.collection(ctx); err != nil {
		return nil, SearchOutput{}, err
	}
	posts, err := s.ports.Posts.Query(ctx, q)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{Total: len(posts)}
	if len(posts) > limit {
		posts = posts[:limit]
	}
	output.Posts = make([]PostSummary, len(posts))
	for i := range posts {
		output.Posts[i] = summarise(&posts[i])
	}
	output.Count = len(output.Posts)

	return nil, output, nil
}

// handleGetPost handles the get_post tool invocation.
func (s *Server) handleGetPost(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetPostInput,
) (*mcp.CallToolResult, PostOutput, error) {
	if _, err := s.collection(ctx); err != nil {
		return nil, PostOutput{}, err
	}
	post, err := s.ports.Posts.Get(ctx, input.ID)
	if err != nil {
		return nil, PostOutput{}, fmt.Errorf("getting post %s: %w", input.ID, err)
	}

	return nil, PostOutput{
		Post:    summarise(post),
		Author:  post.Metadata.Author,
		Content: html.Text(post.HTML),
		Links:   post.Links,
		Tasks:   post.Tasks,
	}, nil
}

// handleReload handles the reload tool invocation.
func (s *Server) handleReload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ReloadInput,
) (*mcp.CallToolResult, ReloadOutput, error) {
	c, err := s.ports.Posts.Refresh(ctx)
	if err != nil {
		return nil, ReloadOutput{}, fmt.Errorf("reloading posts: %w", err)
	}

	output := ReloadOutput{Posts: len(c.Posts)}
	for _, skipped := range c.Skipped {
		output.Skipped = append(output.Skipped, fmt.Sprintf("%s: %v", skipped.Path, skipped.Err))
	}
	return nil, output, nil
}

func summarise(p *domain.Post) PostSummary {
	date := ""
	if !p.Metadata.Date.IsZero() {
		date = p.Metadata.Date.Format(time.DateOnly)
	}
	return PostSummary{
		ID:                 p.ID,
		Title:              p.Metadata.Title,
		Path:               p.Path,
		Date:               date,
		Category:           p.Metadata.Category,
		Tags:               p.Metadata.Tags,
		Draft:              p.Metadata.Draft,
		Excerpt:            p.Excerpt,
		ReadingTimeMinutes: p.ReadingTimeMinutes,
	}
}
