// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPosts lists and filters posts.
	ViewPosts ViewType = iota
	// ViewPost shows a single post.
	ViewPost
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPosts:
		return "posts"
	case ViewPost:
		return "post"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// PostsLoaded carries the filtered posts back to the model.
type PostsLoaded struct {
	Posts []domain.Post

	// Skipped is the number of files the pipeline left out.
	Skipped int

	Err error
}

// PostSelected is sent when a post is opened.
type PostSelected struct {
	Post domain.Post
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
