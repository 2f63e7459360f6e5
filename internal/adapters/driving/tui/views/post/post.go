// Package post provides the scrollable post reader for the TUI.
package post

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uakbr/github-blog-crm/internal/adapters/driving/cli/styles"
	"github.com/uakbr/github-blog-crm/internal/adapters/driving/tui/messages"
	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/normalisers/html"
)

// View is the post reader.
type View struct {
	styles *styles.Styles

	post         *domain.Post
	content      string
	lines        []string
	scrollOffset int
	width        int
	height       int
}

// NewView creates a new post reader.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetPost shows post from the top.
func (v *View) SetPost(post domain.Post) {
	v.post = &post
	v.content = renderPost(&post)
	v.scrollOffset = 0
	v.wrapContent()
}

// renderPost lays out the metadata, outline and body as plain text.
func renderPost(post *domain.Post) string {
	var b strings.Builder
	meta := post.Metadata

	date := "-"
	if !meta.Date.IsZero() {
		date = meta.Date.Format("2006-01-02")
	}
	fmt.Fprintf(&b, "%s  %s  %d min read\n", date, meta.Category, post.ReadingTimeMinutes)
	if len(meta.Tags) > 0 {
		b.WriteString("#" + strings.Join(meta.Tags, " #") + "\n")
	}
	if meta.Author != "" {
		fmt.Fprintf(&b, "by %s\n", meta.Author)
	}
	if meta.Draft {
		b.WriteString("draft\n")
	}

	if len(post.TOC) > 0 {
		b.WriteString("\nContents\n")
		writeTOC(&b, post.TOC, 1)
	}

	if len(post.Tasks) > 0 {
		done := 0
		for _, t := range post.Tasks {
			if t.Completed {
				done++
			}
		}
		fmt.Fprintf(&b, "\nTasks (%d/%d done)\n", done, len(post.Tasks))
	}

	body := html.Text(post.HTML)
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}

	if len(post.Links) > 0 {
		b.WriteString("\nLinks\n")
		for _, l := range post.Links {
			fmt.Fprintf(&b, "  %s -> %s\n", l.Text, l.Href)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeTOC(b *strings.Builder, entries []domain.TOCEntry, depth int) {
	for _, e := range entries {
		fmt.Fprintf(b, "%s- %s\n", strings.Repeat("  ", depth), e.Text)
		writeTOC(b, e.Children, depth+1)
	}
}

// Update handles messages for the post reader.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d", " ":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "esc", "backspace":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewPosts}
		}
	}

	return v, nil
}

// wrapContent breaks the content into lines that fit the view width.
func (v *View) wrapContent() {
	if v.content == "" {
		v.lines = nil
		return
	}

	contentWidth := max(v.width-4, 20)

	rawLines := strings.Split(v.content, "\n")
	v.lines = make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		runes := []rune(line)
		for len(runes) > contentWidth {
			v.lines = append(v.lines, string(runes[:contentWidth]))
			runes = runes[contentWidth:]
		}
		v.lines = append(v.lines, string(runes))
	}
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Title, separator, position indicator and help.
	return max(v.height-7, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the post reader.
func (v *View) View() string {
	var b strings.Builder

	title := "Post"
	if v.post != nil {
		title = v.post.Metadata.Title
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	end := min(v.scrollOffset+visible, len(v.lines))
	for _, line := range v.lines[v.scrollOffset:end] {
		b.WriteString(v.styles.Normal.Render(line))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		percentage := 0
		if maxOffset := v.maxScrollOffset(); maxOffset > 0 {
			percentage = v.scrollOffset * 100 / maxOffset
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage, v.scrollOffset+1, end, len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.wrapContent()
}

// Post returns the post being read.
func (v *View) Post() *domain.Post {
	return v.post
}

// Lines returns the wrapped content lines.
func (v *View) Lines() []string {
	return v.lines
}

// ScrollOffset returns the index of the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
