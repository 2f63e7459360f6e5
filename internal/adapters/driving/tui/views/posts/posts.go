// Package posts provides the post list view for the TUI.
package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uakbr/github-blog-crm/internal/adapters/driving/cli/styles"
	"github.com/uakbr/github-blog-crm/internal/adapters/driving/tui/components/input"
	"github.com/uakbr/github-blog-crm/internal/adapters/driving/tui/components/list"
	"github.com/uakbr/github-blog-crm/internal/adapters/driving/tui/components/status"
	"github.com/uakbr/github-blog-crm/internal/adapters/driving/tui/keymap"
	"github.com/uakbr/github-blog-crm/internal/adapters/driving/tui/messages"
	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driving"
)

// View lists posts and lets the user filter, sort and open them.
type View struct {
	ctx         context.Context
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	postService driving.PostService

	input *input.FilterInput
	list  *list.PostList
	bar   *status.Bar

	query   domain.PostQuery
	skipped int
	err     error
	width   int
	height  int
}

// NewView creates a new post list view.
func NewView(ctx context.Context, s *styles.Styles, km *keymap.KeyMap, postService driving.PostService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		ctx:         ctx,
		styles:      s,
		keymap:      km,
		postService: postService,
		input:       input.NewFilterInput(s),
		list:        list.NewPostList(s),
		bar:         status.NewBar(s, km),
		query: domain.PostQuery{
			Status: domain.StatusAll,
			Sort:   domain.SortDateDesc,
		},
		width:  80,
		height: 24,
	}
}

// Init loads the posts.
func (v *View) Init() tea.Cmd {
	return v.load(false)
}

// load runs the pipeline, then queries the fresh collection.
func (v *View) load(refresh bool) tea.Cmd {
	v.bar.SetState(status.StateLoading)
	ctx, svc, q := v.ctx, v.postService, v.query
	return func() tea.Msg {
		if svc == nil {
			return messages.PostsLoaded{Err: errors.New("post service not available")}
		}

		var (
			collection *domain.Collection
			err        error
		)
		if refresh {
			collection, err = svc.Refresh(ctx)
		} else {
			collection, err = svc.Load(ctx)
		}
		if err != nil {
			return messages.PostsLoaded{Err: err}
		}

		posts, err := svc.Query(ctx, q)
		return messages.PostsLoaded{Posts: posts, Skipped: len(collection.Skipped), Err: err}
	}
}

// requery filters the loaded collection again.
func (v *View) requery() tea.Cmd {
	ctx, svc, q, skipped := v.ctx, v.postService, v.query, v.skipped
	return func() tea.Msg {
		if svc == nil {
			return messages.PostsLoaded{Err: errors.New("post service not available")}
		}
		posts, err := svc.Query(ctx, q)
		return messages.PostsLoaded{Posts: posts, Skipped: skipped, Err: err}
	}
}

// Update handles messages for the post list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.PostsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.bar.SetState(status.StateError)
			v.bar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.skipped = msg.Skipped
		v.list.SetPosts(msg.Posts)
		v.bar.SetState(status.StateReady)
		v.bar.SetMessage("")
		v.bar.SetCounts(len(msg.Posts), msg.Skipped)
		return v, nil

	case tea.KeyMsg:
		if v.input.Focused() {
			return v.handleFilterKey(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		v.input.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() == v.query.Search {
		return v, cmd
	}
	v.query.Search = v.input.Value()
	return v, tea.Batch(cmd, v.requery())
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }

	case keymap.Matches(keyStr, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }

	case keymap.Matches(keyStr, v.keymap.Filter):
		return v, v.input.Focus()

	case keymap.Matches(keyStr, v.keymap.Back):
		if v.query.Search == "" {
			return v, nil
		}
		v.input.Reset()
		v.query.Search = ""
		return v, v.requery()

	case keymap.Matches(keyStr, v.keymap.Sort):
		v.query.Sort = nextSort(v.query.Sort)
		return v, v.requery()

	case keymap.Matches(keyStr, v.keymap.Status):
		v.query.Status = nextStatus(v.query.Status)
		return v, v.requery()

	case keymap.Matches(keyStr, v.keymap.Refresh):
		return v, v.load(true)

	case keymap.Matches(keyStr, v.keymap.Select):
		post := v.list.SelectedPost()
		if post == nil {
			return v, nil
		}
		selected := *post
		return v, func() tea.Msg { return messages.PostSelected{Post: selected} }
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func nextSort(current domain.SortOrder) domain.SortOrder {
	orders := domain.SortOrders()
	for i, o := range orders {
		if o == current {
			return orders[(i+1)%len(orders)]
		}
	}
	return orders[0]
}

func nextStatus(current domain.PostStatus) domain.PostStatus {
	switch current {
	case domain.StatusAll, "":
		return domain.StatusPublished
	case domain.StatusPublished:
		return domain.StatusDraft
	default:
		return domain.StatusAll
	}
}

// View renders the post list view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Posts"))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%s, %s", v.query.Sort.Description(), v.query.Status)))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	if v.err != nil && v.list.Count() == 0 {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("Press r to retry."))
	} else {
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.bar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	// Title, input box, spacing and status bar.
	v.list.SetDimensions(width, height-9)
	v.bar.SetWidth(width)
}

// Query returns the active query.
func (v *View) Query() domain.PostQuery {
	return v.query
}

// Posts returns the listed posts.
func (v *View) Posts() []domain.Post {
	return v.list.Posts()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Filtering reports whether the filter input has focus.
func (v *View) Filtering() bool {
	return v.input.Focused()
}
