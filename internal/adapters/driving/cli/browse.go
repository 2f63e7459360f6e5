package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/uakbr/github-blog-crm/internal/adapters/driving/tui"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driving"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse posts in an interactive terminal UI",
	Long: `Open an interactive browser over the post collection.

Controls:
  ↑/k, ↓/j - Move through posts
  Enter    - Read the selected post
  /        - Filter by title, category, tag or excerpt
  s        - Cycle sort order
  d        - Cycle all, published and draft posts
  r        - Reload from the source
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

// runBrowser starts the interactive browser. Tests replace it.
var runBrowser = func(ctx context.Context, posts driving.PostService) error {
	app, err := tui.NewApp(tui.NewPorts(posts))
	if err != nil {
		return err
	}
	return app.WithContext(ctx).Run()
}

// isTerminal reports whether w is attached to a terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	if !isTerminal(cmd.OutOrStdout()) {
		return errors.New("browse needs an interactive terminal (try 'blogcrm posts list')")
	}

	if err := runBrowser(cmd.Context(), svc.Posts); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("browser error: %w", err)
	}
	return nil
}
