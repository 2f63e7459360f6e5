package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the posts",
	Long:  `Show post, draft, category and tag counts of the configured source.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	_, collection, err := loadPosts(cmd)
	if err != nil {
		return err
	}
	stats := collection.Stats

	if statsJSON {
		return printJSON(cmd, stats)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", ui.Label.Render("Posts"), stats.Total)
	fmt.Fprintf(&b, "%s %d\n", ui.Label.Render("Published"), stats.Published)
	fmt.Fprintf(&b, "%s %d\n", ui.Label.Render("Drafts"), stats.Drafts)
	fmt.Fprintf(&b, "%s %d\n", ui.Label.Render("Categories"), stats.CategoryCount)
	fmt.Fprintf(&b, "%s %d", ui.Label.Render("Tags"), stats.TagCount)

	cmd.Println(ui.Title.Render("Blog statistics"))
	cmd.Println(ui.Box.Render(b.String()))

	if len(stats.Categories) > 0 {
		cmd.Println()
		cmd.Println(ui.Subtitle.Render("Categories"))
		for _, name := range stats.CategoryNames() {
			cmd.Printf("  %-24s %d\n", name, stats.Categories[name])
		}
	}
	if len(stats.Tags) > 0 {
		cmd.Println()
		cmd.Println(ui.Subtitle.Render("Tags"))
		for _, name := range stats.TagNames() {
			cmd.Printf("  %-24s %d\n", ui.Tag.Render("#"+name), stats.Tags[name])
		}
	}
	return nil
}
