package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/uakbr/github-blog-crm/internal/core/ports/driving"
)

var repoJSON bool

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Inspect the GitHub repository",
	Long:  `Show statistics, branches, search results and API quota of the configured repository.`,
	Args:  cobra.NoArgs,
	RunE:  runRepoStats,
}

var repoStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show repository statistics",
	Args:  cobra.NoArgs,
	RunE:  runRepoStats,
}

var repoBranchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "List branches",
	Args:  cobra.NoArgs,
	RunE:  runRepoBranches,
}

var repoSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search file contents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRepoSearch,
}

var repoExistsCmd = &cobra.Command{
	Use:   "exists [path]",
	Short: "Check whether a path exists on the branch",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoExists,
}

var repoRateLimitCmd = &cobra.Command{
	Use:   "rate-limit",
	Short: "Show the remaining API quota",
	Args:  cobra.NoArgs,
	RunE:  runRepoRateLimit,
}

func init() {
	repoCmd.PersistentFlags().BoolVar(&repoJSON, "json", false, "Print JSON")
	repoCmd.AddCommand(repoStatsCmd)
	repoCmd.AddCommand(repoBranchesCmd)
	repoCmd.AddCommand(repoSearchCmd)
	repoCmd.AddCommand(repoExistsCmd)
	repoCmd.AddCommand(repoRateLimitCmd)
	rootCmd.AddCommand(repoCmd)
}

func requireRepository() (driving.RepositoryService, error) {
	svc, err := requireServices()
	if err != nil {
		return nil, err
	}
	if svc.Repository == nil {
		return nil, errors.New("repository commands need a github source")
	}
	return svc.Repository, nil
}

func runRepoStats(cmd *cobra.Command, _ []string) error {
	repo, err := requireRepository()
	if err != nil {
		return err
	}
	stats, err := repo.Stats(cmd.Context())
	if err != nil {
		return err
	}
	if repoJSON {
		return printJSON(cmd, stats)
	}

	cmd.Println(ui.Title.Render(fmt.Sprintf("%s/%s", settings.Owner, settings.Repo)))
	cmd.Println()
	field(cmd, "Default branch", stats.DefaultBranch)
	field(cmd, "Files", fmt.Sprintf("%d (%d markdown)", stats.TotalFiles, stats.MarkdownFiles))
	field(cmd, "Size", fmt.Sprintf("%d KB", stats.SizeKB))
	field(cmd, "Last updated", formatDate(stats.LastUpdated))
	field(cmd, "Visibility", visibility(stats.Private))
	field(cmd, "Stars", fmt.Sprintf("%d", stats.StargazersCount))
	field(cmd, "Forks", fmt.Sprintf("%d", stats.ForksCount))
	field(cmd, "Watchers", fmt.Sprintf("%d", stats.WatchersCount))
	field(cmd, "Wiki", yesNo(stats.HasWiki))
	field(cmd, "Pages", yesNo(stats.HasPages))
	return nil
}

func runRepoBranches(cmd *cobra.Command, _ []string) error {
	repo, err := requireRepository()
	if err != nil {
		return err
	}
	branches, err := repo.Branches(cmd.Context())
	if err != nil {
		return err
	}
	if repoJSON {
		return printJSON(cmd, branches)
	}
	for _, b := range branches {
		if b == settings.Branch {
			cmd.Printf("* %s\n", ui.Success.Render(b))
			continue
		}
		cmd.Printf("  %s\n", b)
	}
	return nil
}

func runRepoSearch(cmd *cobra.Command, args []string) error {
	repo, err := requireRepository()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	matches, err := repo.Search(cmd.Context(), query)
	if err != nil {
		return err
	}
	if repoJSON {
		return printJSON(cmd, matches)
	}
	if len(matches) == 0 {
		cmd.Printf("No matches for %q.\n", query)
		return nil
	}
	for _, m := range matches {
		cmd.Printf("  %s\n", m.Path)
		if m.HTMLURL != "" {
			cmd.Printf("    %s\n", ui.Muted.Render(m.HTMLURL))
		}
	}
	cmd.Println()
	cmd.Printf("Found %d matches\n", len(matches))
	return nil
}

func runRepoExists(cmd *cobra.Command, args []string) error {
	repo, err := requireRepository()
	if err != nil {
		return err
	}
	exists, err := repo.Exists(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if exists {
		cmd.Printf("%s exists\n", args[0])
		return nil
	}
	return fmt.Errorf("%s does not exist", args[0])
}

func runRepoRateLimit(cmd *cobra.Command, _ []string) error {
	repo, err := requireRepository()
	if err != nil {
		return err
	}
	rate, err := repo.RateLimit(cmd.Context())
	if err != nil {
		return err
	}
	if repoJSON {
		return printJSON(cmd, rate)
	}
	field(cmd, "Remaining", fmt.Sprintf("%d of %d", rate.Remaining, rate.Limit))
	if !rate.ResetAt.IsZero() {
		field(cmd, "Resets", rate.ResetAt.Local().Format(time.RFC1123))
	}
	return nil
}

func visibility(private bool) string {
	if private {
		return "private"
	}
	return "public"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
