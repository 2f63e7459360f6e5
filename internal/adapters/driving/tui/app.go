package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/uakbr/github-blog-crm/internal/adapters/driving/cli/styles"
	"github.com/uakbr/github-blog-crm/internal/adapters/driving/tui/keymap"
	"github.com/uakbr/github-blog-crm/internal/adapters/driving/tui/messages"
	"github.com/uakbr/github-blog-crm/internal/adapters/driving/tui/views/post"
	"github.com/uakbr/github-blog-crm/internal/adapters/driving/tui/views/posts"
)

// App is the post browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	postsView *posts.View
	postView  *post.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	err    error
	width  int
	height int

	// ready is set once the terminal size is known.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new post browser with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	ctx := context.Background()

	return &App{
		ports:       ports,
		ctx:         ctx,
		styles:      s,
		keymap:      km,
		help:        help.New(),
		postsView:   posts.NewView(ctx, s, km, ports.Posts),
		postView:    post.NewView(s),
		currentView: messages.ViewPosts,
	}, nil
}

// WithContext sets the context used for pipeline runs.
// It must be called before the program starts.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.postsView = posts.NewView(ctx, a.styles, a.keymap, a.ports.Posts)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("blogcrm"),
		a.postsView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewPost:
			a.postView, cmd = a.postView.Update(msg)
		case messages.ViewHelp:
			if keymap.Matches(msg.String(), a.keymap.Back) || keymap.Matches(msg.String(), a.keymap.Help) {
				a.currentView = messages.ViewPosts
			} else if keymap.Matches(msg.String(), a.keymap.Quit) {
				return a, tea.Quit
			}
		default:
			a.postsView, cmd = a.postsView.Update(msg)
		}
		return a, cmd

	case messages.PostsLoaded:
		a.err = msg.Err
		a.postsView, cmd = a.postsView.Update(msg)
		return a, cmd

	case messages.PostSelected:
		a.postView.SetPost(msg.Post)
		a.currentView = messages.ViewPost
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewPost:
		return a.postView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.postsView.View()
	}
}

// viewHelp renders the key bindings.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("Reader: ↑/↓ scroll, PgUp/PgDn page, g/G top/bottom, esc back"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back to posts"))
	return b.String()
}

// Run starts the post browser.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.postsView.SetDimensions(width, height)
	a.postView.SetDimensions(width, height)
}
