package cli

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/uakbr/github-blog-crm/internal/adapters/driven/storage/memory"
	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/services"
)

var testDate = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

// fakePosts serves a fixed collection.
type fakePosts struct {
	collection *domain.Collection
	loadErr    error
	refreshErr error
	watchLoads int
}

func (f *fakePosts) Load(_ context.Context) (*domain.Collection, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.collection.Clone(), nil
}

func (f *fakePosts) Refresh(ctx context.Context) (*domain.Collection, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.Load(ctx)
}

func (f *fakePosts) Current(_ context.Context) (*domain.Collection, error) {
	return f.collection.Clone(), nil
}

func (f *fakePosts) Get(_ context.Context, id string) (*domain.Post, error) {
	post, ok := f.collection.Find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &post, nil
}

func (f *fakePosts) Query(_ context.Context, q domain.PostQuery) ([]domain.Post, error) {
	return services.ApplyQuery(f.collection.Posts, q), nil
}

func (f *fakePosts) Index(_ context.Context) (*domain.PostIndex, error) {
	index := services.BuildIndex(f.collection)
	return &index, nil
}

func (f *fakePosts) Watch(ctx context.Context, _ <-chan struct{}, _ time.Duration,
	onLoad func(*domain.Collection, error)) error {
	for i := 0; i < f.watchLoads; i++ {
		onLoad(f.Refresh(ctx))
	}
	return nil
}

// fakeRepository returns canned repository data.
type fakeRepository struct {
	err error
}

func (f *fakeRepository) Stats(_ context.Context) (*domain.RepositoryStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.RepositoryStats{
		TotalFiles:      12,
		MarkdownFiles:   3,
		SizeKB:          42,
		DefaultBranch:   "main",
		StargazersCount: 7,
	}, nil
}

func (f *fakeRepository) Branches(_ context.Context) ([]string, error) {
	return []string{"develop", "main"}, f.err
}

func (f *fakeRepository) Search(_ context.Context, query string) ([]domain.CodeMatch, error) {
	if query == "nothing" {
		return nil, nil
	}
	return []domain.CodeMatch{{Name: "hello.md", Path: "posts/hello.md"}}, f.err
}

func (f *fakeRepository) Exists(_ context.Context, path string) (bool, error) {
	return path == "posts", f.err
}

func (f *fakeRepository) RateLimit(_ context.Context) (*domain.RateLimitStatus, error) {
	return &domain.RateLimitStatus{Limit: 5000, Remaining: 4990}, f.err
}

func testCollection() *domain.Collection {
	posts := []domain.Post{
		{
			ID:                 "aaaaaaaaaaaaaaaa",
			Path:               "posts/hello.md",
			HTML:               "<p>Hello world</p>\n",
			Excerpt:            "Hello world",
			ReadingTimeMinutes: 1,
			TOC: []domain.TOCEntry{
				{Text: "Intro", Level: 2, Slug: "intro", Children: []domain.TOCEntry{
					{Text: "Details", Level: 3, Slug: "details"},
				}},
			},
			Links: []domain.Link{{Href: "https://go.dev", Text: "Go", External: true}},
			Tasks: []domain.Task{{Text: "write", Completed: true}, {Text: "publish"}},
			Metadata: domain.PostMetadata{
				Title:    "Hello World",
				Date:     testDate,
				Category: "Go",
				Tags:     []string{"go", "intro"},
				Author:   "octocat",
				Views:    10,
				Extra:    map[string]any{"series": "basics"},
			},
		},
		{
			ID:                 "bbbbbbbbbbbbbbbb",
			Path:               "posts/draft.md",
			Excerpt:            "Work in progress",
			ReadingTimeMinutes: 2,
			Metadata: domain.PostMetadata{
				Title:    "Unfinished Thoughts",
				Date:     testDate.AddDate(0, 1, 0),
				Category: "Notes",
				Tags:     []string{"ideas"},
				Draft:    true,
			},
		},
	}
	return &domain.Collection{
		RunID:       "run-1",
		GeneratedAt: testDate,
		Posts:       posts,
		Stats:       services.ComputeStats(posts),
		Skipped: []domain.SkippedFile{
			{Path: "posts/broken.md", Err: errors.New("transform: bad frontmatter")},
		},
	}
}

// setupTestServices installs fakes and a configured GitHub source.
// The returned function restores the previous state.
func setupTestServices() (*fakePosts, func()) {
	posts := &fakePosts{collection: testCollection()}
	return posts, setupWith(&Services{
		Posts:      posts,
		Repository: &fakeRepository{},
		Stylesheet: func() (string, error) { return ".chroma { color: red }", nil },
	})
}

func setupWith(svc *Services) func() {
	origSettings := settingsService
	origBuilder := buildServices
	origGetenv := getenv

	store := memory.NewConfigStore()
	_ = store.Set(services.KeyOwner, "octocat")
	_ = store.Set(services.KeyRepo, "blog")
	settingsService = services.NewSettingsService(store)
	buildServices = func(domain.Settings) (*Services, error) { return svc, nil }
	getenv = func(string) string { return "" }

	return func() {
		settingsService = origSettings
		buildServices = origBuilder
		getenv = origGetenv
		current = nil
		resetFlags()
	}
}

// resetFlags restores flag variables between executions of rootCmd.
func resetFlags() {
	verbose = false
	flagSource, flagPath, flagOwner, flagRepo, flagBranch, flagToken = "", "", "", "", "", ""
	listSearch, listFrom, listTo = "", "", ""
	listCategories, listTags = nil, nil
	listStatus = string(domain.StatusAll)
	listSort = string(domain.SortDateDesc)
	listLimit = 0
	listJSON = false
	showHTML, showJSON = false, false
	statsJSON = false
	repoJSON = false
	indexOutput, indexCSS = "posts.json", ""
	watchInterval = 0
	mcpPort = 0

	var reset func(c *cobra.Command)
	reset = func(c *cobra.Command) {
		unchange := func(f *pflag.Flag) { f.Changed = false }
		c.Flags().VisitAll(unchange)
		c.PersistentFlags().VisitAll(unchange)
		for _, sub := range c.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)
}

// execute runs rootCmd with args and returns stdout, stderr and the error.
func execute(args ...string) (string, string, error) {
	return executeWithInput("", args...)
}

func executeWithInput(input string, args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(bytes.NewBufferString(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func newEmptyStore() *memory.ConfigStore {
	return memory.NewConfigStore()
}
