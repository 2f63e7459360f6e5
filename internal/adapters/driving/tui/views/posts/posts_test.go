package posts

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uakbr/github-blog-crm/internal/adapters/driving/tui/messages"
	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/services"
)

// MockPostService implements driving.PostService for testing.
type MockPostService struct {
	collection *domain.Collection
	loadErr    error
	loads      int
	refreshes  int
}

func (m *MockPostService) Load(_ context.Context) (*domain.Collection, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.collection, nil
}

func (m *MockPostService) Refresh(ctx context.Context) (*domain.Collection, error) {
	m.refreshes++
	return m.Load(ctx)
}

func (m *MockPostService) Current(_ context.Context) (*domain.Collection, error) {
	if m.collection == nil {
		return nil, domain.ErrNotLoaded
	}
	return m.collection, nil
}

func (m *MockPostService) Get(_ context.Context, id string) (*domain.Post, error) {
	post, ok := m.collection.Find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &post, nil
}

func (m *MockPostService) Query(ctx context.Context, q domain.PostQuery) ([]domain.Post, error) {
	collection, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	return services.ApplyQuery(collection.Posts, q), nil
}

func (m *MockPostService) Index(_ context.Context) (*domain.PostIndex, error) {
	index := services.BuildIndex(m.collection)
	return &index, nil
}

func (m *MockPostService) Watch(_ context.Context, _ <-chan struct{}, _ time.Duration,
	_ func(*domain.Collection, error)) error {
	return nil
}

func sampleCollection() *domain.Collection {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	return &domain.Collection{
		Posts: []domain.Post{
			{ID: "a", Metadata: domain.PostMetadata{Title: "Go Generics", Date: day, Category: "Go", Tags: []string{"go"}}},
			{ID: "b", Metadata: domain.PostMetadata{Title: "Draft Ideas", Date: day.AddDate(0, 1, 0), Category: "Notes", Draft: true}},
			{ID: "c", Metadata: domain.PostMetadata{Title: "Archive", Date: day.AddDate(0, -1, 0), Category: "Notes"}},
		},
		Skipped: []domain.SkippedFile{{Path: "broken.md", Err: errors.New("bad yaml")}},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedView returns a view whose initial load has completed.
func loadedView(t *testing.T, mock *MockPostService) *View {
	t.Helper()
	view := NewView(context.Background(), nil, nil, mock)
	cmd := view.Init()
	require.NotNil(t, cmd)
	view, _ = view.Update(cmd())
	return view
}

// apply runs cmd and feeds its message back into the view.
func apply(t *testing.T, view *View, cmd tea.Cmd) *View {
	t.Helper()
	require.NotNil(t, cmd)
	view, _ = view.Update(cmd())
	return view
}

func TestNewView_Defaults(t *testing.T) {
	view := NewView(context.Background(), nil, nil, nil)

	require.NotNil(t, view)
	assert.Equal(t, domain.SortDateDesc, view.Query().Sort)
	assert.Equal(t, domain.StatusAll, view.Query().Status)
	assert.False(t, view.Filtering())
}

func TestView_InitLoadsPosts(t *testing.T) {
	mock := &MockPostService{collection: sampleCollection()}
	view := loadedView(t, mock)

	assert.Equal(t, 1, mock.loads)
	assert.NoError(t, view.Err())
	require.Len(t, view.Posts(), 3)
	assert.Equal(t, "b", view.Posts()[0].ID, "newest first")
	assert.Contains(t, view.View(), "3 posts, 1 skipped")
}

func TestView_InitWithoutService(t *testing.T) {
	view := NewView(context.Background(), nil, nil, nil)
	view, _ = view.Update(view.Init()())

	require.Error(t, view.Err())
	assert.Contains(t, view.View(), "post service not available")
}

func TestView_LoadError(t *testing.T) {
	mock := &MockPostService{loadErr: domain.ErrListFailed}
	view := loadedView(t, mock)

	assert.ErrorIs(t, view.Err(), domain.ErrListFailed)
	assert.Contains(t, view.View(), "Press r to retry")
}

func TestView_CycleSort(t *testing.T) {
	view := loadedView(t, &MockPostService{collection: sampleCollection()})

	view, cmd := view.Update(runes("s"))
	assert.Equal(t, domain.SortDateAsc, view.Query().Sort)
	view = apply(t, view, cmd)
	assert.Equal(t, "c", view.Posts()[0].ID)

	for range len(domain.SortOrders()) - 1 {
		view, _ = view.Update(runes("s"))
	}
	assert.Equal(t, domain.SortDateDesc, view.Query().Sort, "wraps around")
}

func TestView_CycleStatus(t *testing.T) {
	view := loadedView(t, &MockPostService{collection: sampleCollection()})

	view, cmd := view.Update(runes("d"))
	assert.Equal(t, domain.StatusPublished, view.Query().Status)
	view = apply(t, view, cmd)
	assert.Len(t, view.Posts(), 2)

	view, cmd = view.Update(runes("d"))
	assert.Equal(t, domain.StatusDraft, view.Query().Status)
	view = apply(t, view, cmd)
	require.Len(t, view.Posts(), 1)
	assert.Equal(t, "b", view.Posts()[0].ID)

	view, _ = view.Update(runes("d"))
	assert.Equal(t, domain.StatusAll, view.Query().Status)
}

func TestView_Filter(t *testing.T) {
	view := loadedView(t, &MockPostService{collection: sampleCollection()})

	view, _ = view.Update(runes("/"))
	require.True(t, view.Filtering())

	view, _ = view.Update(runes("g"))
	view, _ = view.Update(runes("o"))
	assert.Equal(t, "go", view.Query().Search)

	// Typed keys go to the input, not to the key bindings.
	assert.Equal(t, domain.SortDateDesc, view.Query().Sort)

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, view.Filtering())
	assert.Equal(t, "go", view.Query().Search, "search survives blur")

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, view.Query().Search)
	view = apply(t, view, cmd)
	assert.Len(t, view.Posts(), 3)
}

func TestView_Refresh(t *testing.T) {
	mock := &MockPostService{collection: sampleCollection()}
	view := loadedView(t, mock)

	view, cmd := view.Update(runes("r"))
	assert.Contains(t, view.View(), "Loading posts")
	apply(t, view, cmd)

	assert.Equal(t, 1, mock.refreshes)
	assert.Equal(t, 2, mock.loads)
}

func TestView_SelectPost(t *testing.T) {
	view := loadedView(t, &MockPostService{collection: sampleCollection()})

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.PostSelected)
	require.True(t, ok)
	assert.Equal(t, "a", msg.Post.ID)
}

func TestView_SelectWithoutPosts(t *testing.T) {
	view := loadedView(t, &MockPostService{collection: &domain.Collection{}})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestView_NavigationMessages(t *testing.T) {
	view := loadedView(t, &MockPostService{collection: sampleCollection()})

	_, cmd := view.Update(runes("?"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewHelp}, cmd())

	_, cmd = view.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, messages.Quit{}, cmd())
}

func TestView_SetDimensions(t *testing.T) {
	view := NewView(context.Background(), nil, nil, nil)

	view, _ = view.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, view.width)
	assert.Equal(t, 40, view.height)
}
