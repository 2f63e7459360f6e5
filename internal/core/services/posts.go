package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driven"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driving"
	"github.com/uakbr/github-blog-crm/internal/logger"
)

// Ensure PostService implements the interface.
var _ driving.PostService = (*PostService)(nil)

// PostService runs the content pipeline: list the source, then fetch,
// transform and enrich every file concurrently, then fold the results
// into a collection.
type PostService struct {
	source      driven.ContentSource
	transformer driven.DocumentTransformer
	store       driven.PostStore
	concurrency int
	now         func() time.Time

	// loadMu serialises pipeline runs so snapshots replace each other in order.
	loadMu sync.Mutex
}

// PostServiceOption configures a PostService.
type PostServiceOption func(*PostService)

// WithConcurrency bounds the number of files processed at once.
// Values below 1 are ignored.
func WithConcurrency(n int) PostServiceOption {
	return func(s *PostService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithClock sets the clock used to stamp collections.
func WithClock(now func() time.Time) PostServiceOption {
	return func(s *PostService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewPostService creates a new post service.
func NewPostService(
	source driven.ContentSource,
	transformer driven.DocumentTransformer,
	store driven.PostStore,
	opts ...PostServiceOption,
) *PostService {
	s := &PostService{
		source:      source,
		transformer: transformer,
		store:       store,
		concurrency: domain.DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load runs the pipeline once and stores the resulting collection.
// Only a listing failure or cancellation fails the run; a file that cannot
// be fetched or transformed is logged and recorded in Collection.Skipped.
func (s *PostService) Load(ctx context.Context) (*domain.Collection, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	runID := uuid.NewString()
	logger.Section("Loading posts")
	logger.Debug("Pipeline run %s", runID)

	files, err := s.source.ListMarkdownFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrListFailed, err)
	}
	logger.Info("Found %d markdown files", len(files))

	// Results are indexed by listing position so the collection order does
	// not depend on completion order.
	posts := make([]*domain.Post, len(files))
	failures := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, file := range files {
		g.Go(func() error {
			post, err := s.processFile(ctx, file)
			if err != nil {
				logger.Warn("Skipping %s: %v", file.Path, err)
				failures[i] = err
				return nil
			}
			posts[i] = post
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	collection := &domain.Collection{
		RunID:       runID,
		GeneratedAt: s.now(),
		Posts:       make([]domain.Post, 0, len(files)),
	}
	seen := make(map[string]struct{}, len(files))
	for i, post := range posts {
		if post == nil {
			collection.Skipped = append(collection.Skipped, domain.SkippedFile{
				Path: files[i].Path,
				Err:  failures[i],
			})
			continue
		}
		if _, dup := seen[post.ID]; dup {
			// Identical content at two paths shares a blob SHA.
			post.ID = post.ID + "@" + post.Path
		}
		seen[post.ID] = struct{}{}
		collection.Posts = append(collection.Posts, *post)
	}
	collection.Stats = ComputeStats(collection.Posts)

	logger.Info("Loaded %d posts (%d skipped)", len(collection.Posts), len(collection.Skipped))

	s.store.Replace(collection)
	return collection.Clone(), nil
}

// Refresh discards cached source responses and runs the pipeline again.
func (s *PostService) Refresh(ctx context.Context) (*domain.Collection, error) {
	s.source.ClearCache()
	return s.Load(ctx)
}

// Current returns the last stored collection.
func (s *PostService) Current(_ context.Context) (*domain.Collection, error) {
	collection := s.store.Snapshot()
	if collection == nil {
		return nil, domain.ErrNotLoaded
	}
	return collection, nil
}

// Get returns one post of the last stored collection.
func (s *PostService) Get(_ context.Context, id string) (*domain.Post, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty post id", domain.ErrInvalidInput)
	}
	return s.store.Get(id)
}

// Query filters and sorts the last stored collection.
func (s *PostService) Query(ctx context.Context, q domain.PostQuery) ([]domain.Post, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	collection, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyQuery(collection.Posts, q), nil
}

// Index summarises the last stored collection as a posts index.
func (s *PostService) Index(ctx context.Context) (*domain.PostIndex, error) {
	collection, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	index := BuildIndex(collection)
	return &index, nil
}

// processFile fetches, transforms and enriches one file.
func (s *PostService) processFile(ctx context.Context, file domain.FileRef) (*domain.Post, error) {
	raw, err := s.source.FetchRawContent(ctx, file.Path)
	if err != nil {
		return nil, fmt.Errorf("fetch content: %w", err)
	}

	doc, err := s.transformer.Process(file.Path, []byte(raw))
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	meta, err := s.source.FetchFileMetadata(ctx, file.Path)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}

	return mergePost(file, doc, meta), nil
}

// mergePost combines a processed document with source metadata.
func mergePost(file domain.FileRef, doc *domain.ProcessedDocument, meta *domain.FileMetadata) *domain.Post {
	post := &domain.Post{
		ID:                 file.ContentID,
		Path:               file.Path,
		HTML:               doc.HTML,
		TOC:                doc.TOC,
		Excerpt:            doc.Excerpt,
		ReadingTimeMinutes: doc.ReadingTimeMinutes,
		Links:              doc.Links,
		Tasks:              doc.Tasks,
		Metadata:           doc.Metadata,
	}
	if post.ID == "" {
		post.ID = meta.SHA
	}

	post.Metadata.LastModified = meta.LastModified
	post.Metadata.LastModifiedBy = meta.LastModifiedBy
	post.Metadata.History = meta.History
	if post.Metadata.Author == "" {
		post.Metadata.Author = meta.LastModifiedBy
	}
	return post
}
