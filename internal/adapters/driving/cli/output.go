package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

const dateLayout = "2006-01-02"

// retryHint is shown when the pipeline cannot produce a collection.
const retryHint = "Loading posts failed. Check the source settings and your connection, then run the command again."

// loadPosts runs the pipeline and reports skipped files.
func loadPosts(cmd *cobra.Command) (*Services, *domain.Collection, error) {
	svc, err := requireServices()
	if err != nil {
		return nil, nil, err
	}

	collection, err := svc.Posts.Load(cmd.Context())
	if err != nil {
		cmd.PrintErrln(ui.Warning.Render(retryHint))
		return nil, nil, fmt.Errorf("failed to load posts: %w", err)
	}

	if n := len(collection.Skipped); n > 0 {
		cmd.PrintErrln(ui.Warning.Render(fmt.Sprintf("%d file(s) skipped (run with --verbose for details)", n)))
		for _, s := range collection.Skipped {
			cmd.PrintErrln(ui.Muted.Render(fmt.Sprintf("  %s: %v", s.Path, s.Err)))
		}
	}
	return svc, collection, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = ui.Tag.Render("#" + tag)
	}
	return strings.Join(parts, " ")
}

func field(cmd *cobra.Command, label, value string) {
	cmd.Printf("  %s %s\n", ui.Label.Render(label), value)
}

// maskToken hides all but the ends of a credential.
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// shortID trims content hashes for list output.
func shortID(id string) string {
	if len(id) > 10 && !strings.Contains(id, "@") {
		return id[:10]
	}
	return id
}
