package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload posts whenever the source changes",
	Long: `Load the posts, then reload them whenever the source changes.

Filesystem sources are watched for file events. GitHub sources are polled
every --interval, which defaults to the cache timeout. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Polling interval (0 uses the cache timeout for GitHub sources)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	svc, collection, err := loadPosts(cmd)
	if err != nil {
		return err
	}
	printLoad(cmd, collection)

	var changes <-chan struct{}
	if svc.Changes != nil {
		changes, err = svc.Changes(ctx)
		if err != nil {
			return fmt.Errorf("failed to watch source: %w", err)
		}
	}

	interval := watchInterval
	if interval == 0 && changes == nil {
		interval = settings.CacheTimeout
	}
	if changes == nil && interval <= 0 {
		return fmt.Errorf("%w: set --interval to poll this source", domain.ErrInvalidInput)
	}

	if changes != nil {
		cmd.Println(ui.Muted.Render("Watching for changes..."))
	} else {
		cmd.Println(ui.Muted.Render(fmt.Sprintf("Polling every %s...", interval)))
	}

	err = svc.Posts.Watch(ctx, changes, interval, func(c *domain.Collection, err error) {
		if err != nil {
			cmd.PrintErrln(ui.Error.Render(fmt.Sprintf("Reload failed: %v", err)))
			cmd.PrintErrln(ui.Warning.Render(retryHint))
			return
		}
		printLoad(cmd, c)
	})
	if ctx.Err() != nil {
		// Interrupted.
		return nil
	}
	return err
}

func printLoad(cmd *cobra.Command, c *domain.Collection) {
	line := fmt.Sprintf("[%s] %d posts", c.GeneratedAt.Format("15:04:05"), len(c.Posts))
	if n := len(c.Skipped); n > 0 {
		line += ui.Warning.Render(fmt.Sprintf(" (%d skipped)", n))
	}
	cmd.Println(line)
}
