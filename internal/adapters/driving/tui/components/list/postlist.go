// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uakbr/github-blog-crm/internal/adapters/driving/cli/styles"
	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

const dateLayout = "2006-01-02"

// PostList displays posts in a navigable list.
type PostList struct {
	posts    []domain.Post
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewPostList creates a new post list component.
func NewPostList(s *styles.Styles) *PostList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &PostList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the post list.
func (l *PostList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *PostList) Update(msg tea.Msg) (*PostList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.posts) > 0 {
				l.selected = len(l.posts) - 1
			}
		}
	}
	return l, nil
}

// View renders the post list.
func (l *PostList) View() string {
	if len(l.posts) == 0 {
		return l.styles.Muted.Render("No posts")
	}

	lines := make([]string, 0, len(l.posts)*2)

	// Each post takes two lines.
	visibleCount := l.height / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.posts) {
		end = len(l.posts)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderPost(i, &l.posts[i]))
	}

	return strings.Join(lines, "\n")
}

// renderPost formats a single post with its metadata line.
func (l *PostList) renderPost(index int, post *domain.Post) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := post.Metadata.Title
	if title == "" {
		title = "(Untitled)"
	}
	maxTitleLen := l.width - 16
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title = truncate(title, maxTitleLen)

	date := post.Metadata.Date.Format(dateLayout)

	var titleLine string
	if index == l.selected {
		titleLine = l.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, date))
	} else {
		titleLine = l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			l.styles.Muted.Render(date)
	}

	meta := post.Metadata.Category
	if len(post.Metadata.Tags) > 0 {
		meta += "  #" + strings.Join(post.Metadata.Tags, " #")
	}
	metaLine := l.styles.Muted.Render("    " + truncate(meta, l.width-6))
	if post.Metadata.Draft {
		metaLine += " " + l.styles.Draft.Render("draft")
	}

	return titleLine + "\n" + metaLine
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetPosts replaces the listed posts. The selection is kept when the
// previously selected post is still present.
func (l *PostList) SetPosts(posts []domain.Post) {
	var selectedID string
	if p := l.SelectedPost(); p != nil {
		selectedID = p.ID
	}

	l.posts = posts
	l.selected = 0
	for i := range posts {
		if posts[i].ID == selectedID {
			l.selected = i
			break
		}
	}
}

// Posts returns the listed posts.
func (l *PostList) Posts() []domain.Post {
	return l.posts
}

// Selected returns the index of the selected post.
func (l *PostList) Selected() int {
	return l.selected
}

// SelectedPost returns the currently selected post, or nil if none.
func (l *PostList) SelectedPost() *domain.Post {
	if len(l.posts) == 0 || l.selected < 0 || l.selected >= len(l.posts) {
		return nil
	}
	return &l.posts[l.selected]
}

// MoveUp moves selection up.
func (l *PostList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *PostList) MoveDown() {
	if l.selected < len(l.posts)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *PostList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of posts.
func (l *PostList) Count() int {
	return len(l.posts)
}
