package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/services"
)

// mockPostService is a mock implementation of driving.PostService.
// It starts unloaded; Load and Refresh publish collection.
type mockPostService struct {
	collection *domain.Collection
	loaded     bool
	loadErr    error
	loads      int
	refreshes  int
}

func (m *mockPostService) Load(_ context.Context) (*domain.Collection, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	m.loaded = true
	return m.collection, nil
}

func (m *mockPostService) Refresh(ctx context.Context) (*domain.Collection, error) {
	m.refreshes++
	return m.Load(ctx)
}

func (m *mockPostService) Current(_ context.Context) (*domain.Collection, error) {
	if !m.loaded {
		return nil, domain.ErrNotLoaded
	}
	return m.collection, nil
}

func (m *mockPostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	c, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	post, ok := c.Find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &post, nil
}

func (m *mockPostService) Query(ctx context.Context, q domain.PostQuery) ([]domain.Post, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	c, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	return services.ApplyQuery(c.Posts, q), nil
}

func (m *mockPostService) Index(ctx context.Context) (*domain.PostIndex, error) {
	c, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	index := services.BuildIndex(c)
	return &index, nil
}

func (m *mockPostService) Watch(_ context.Context, _ <-chan struct{}, _ time.Duration,
	_ func(*domain.Collection, error)) error {
	return nil
}

func testCollection() *domain.Collection {
	day := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	posts := []domain.Post{
		{
			ID:                 "post-1",
			Path:               "posts/hello.md",
			HTML:               "<h1>Hello</h1><p>Welcome to the blog.</p>",
			Excerpt:            "Welcome to the blog.",
			ReadingTimeMinutes: 1,
			Links:              []domain.Link{{Href: "https://go.dev", Text: "Go", External: true}},
			Metadata: domain.PostMetadata{
				Title: "Hello World", Date: day, Category: "Go",
				Tags: []string{"go", "intro"}, Author: "octocat",
			},
		},
		{
			ID:   "post-2",
			Path: "posts/ideas.md",
			HTML: "<p>Half an idea.</p>",
			Metadata: domain.PostMetadata{
				Title: "Ideas", Date: day.AddDate(0, 1, 0), Category: "Notes", Draft: true,
			},
		},
	}
	return &domain.Collection{
		Posts:   posts,
		Stats:   services.ComputeStats(posts),
		Skipped: []domain.SkippedFile{{Path: "posts/broken.md", Err: errors.New("bad frontmatter")}},
	}
}
