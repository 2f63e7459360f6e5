package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse blog posts",
	Long:  `List, filter and inspect the posts of the configured source.`,
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	Long: `List posts, newest first by default.

Sort orders: date-desc, date-asc, title-asc, title-desc, views-desc, views-asc.
Dates use the YYYY-MM-DD format and bound the range inclusively.`,
	Args: cobra.NoArgs,
	RunE: runPostsList,
}

var postsShowCmd = &cobra.Command{
	Use:   "show [post-id]",
	Short: "Show a post",
	Long:  `Show metadata, table of contents and links of a post. A unique ID prefix is enough.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsShow,
}

// List flags.
var (
	listSearch     string
	listCategories []string
	listTags       []string
	listFrom       string
	listTo         string
	listStatus     string
	listSort       string
	listLimit      int
	listJSON       bool
)

// Show flags.
var (
	showHTML bool
	showJSON bool
)

func init() {
	flags := postsListCmd.Flags()
	flags.StringVarP(&listSearch, "search", "s", "", "Match title, category, tags and excerpt")
	flags.StringSliceVarP(&listCategories, "category", "c", nil, "Keep posts in any of these categories")
	flags.StringSliceVarP(&listTags, "tag", "t", nil, "Keep posts with any of these tags")
	flags.StringVar(&listFrom, "from", "", "Earliest post date (YYYY-MM-DD)")
	flags.StringVar(&listTo, "to", "", "Latest post date (YYYY-MM-DD)")
	flags.StringVar(&listStatus, "status", string(domain.StatusAll), "all, published or draft")
	flags.StringVar(&listSort, "sort", string(domain.SortDateDesc), "Sort order")
	flags.IntVarP(&listLimit, "limit", "n", 0, "Show at most this many posts")
	flags.BoolVar(&listJSON, "json", false, "Print JSON")

	postsShowCmd.Flags().BoolVar(&showHTML, "html", false, "Print the rendered HTML only")
	postsShowCmd.Flags().BoolVar(&showJSON, "json", false, "Print JSON")

	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsShowCmd)
	rootCmd.AddCommand(postsCmd)
}

func buildQuery() (domain.PostQuery, error) {
	q := domain.PostQuery{
		Search:     listSearch,
		Categories: listCategories,
		Tags:       listTags,
		Status:     domain.PostStatus(listStatus),
		Sort:       domain.SortOrder(listSort),
	}

	if listFrom != "" {
		from, err := time.Parse(dateLayout, listFrom)
		if err != nil {
			return q, fmt.Errorf("invalid --from date %q: expected YYYY-MM-DD", listFrom)
		}
		q.From = from
	}
	if listTo != "" {
		to, err := time.Parse(dateLayout, listTo)
		if err != nil {
			return q, fmt.Errorf("invalid --to date %q: expected YYYY-MM-DD", listTo)
		}
		// Include the whole day.
		q.To = to.Add(24*time.Hour - time.Nanosecond)
	}

	return q, q.Validate()
}

func runPostsList(cmd *cobra.Command, _ []string) error {
	q, err := buildQuery()
	if err != nil {
		return err
	}

	svc, _, err := loadPosts(cmd)
	if err != nil {
		return err
	}

	posts, err := svc.Posts.Query(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("failed to query posts: %w", err)
	}
	if listLimit > 0 && len(posts) > listLimit {
		posts = posts[:listLimit]
	}

	if listJSON {
		return printJSON(cmd, posts)
	}

	if len(posts) == 0 {
		cmd.Println("No posts found.")
		return nil
	}

	cmd.Println(ui.Title.Render(fmt.Sprintf("Posts (%s)", q.Sort.Description())))
	cmd.Println()
	for i := range posts {
		p := &posts[i]
		title := p.Metadata.Title
		if p.Metadata.Draft {
			title += " " + ui.Draft.Render("[draft]")
		}
		cmd.Printf("  %s  %s\n", ui.Muted.Render(formatDate(p.Metadata.Date)), title)
		cmd.Printf("              %s  %s  %s\n",
			ui.Muted.Render(shortID(p.ID)),
			p.Metadata.Category,
			formatTags(p.Metadata.Tags))
	}
	cmd.Println()
	cmd.Printf("Total: %d posts\n", len(posts))
	return nil
}

func runPostsShow(cmd *cobra.Command, args []string) error {
	svc, collection, err := loadPosts(cmd)
	if err != nil {
		return err
	}

	post, err := svc.Posts.Get(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		post, err = findByPrefix(collection, args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}

	switch {
	case showJSON:
		return printJSON(cmd, post)
	case showHTML:
		cmd.Println(post.HTML)
		return nil
	}

	meta := post.Metadata
	cmd.Println(ui.Title.Render(meta.Title))
	cmd.Println()
	field(cmd, "ID", post.ID)
	field(cmd, "Path", post.Path)
	field(cmd, "Date", formatDate(meta.Date))
	field(cmd, "Category", meta.Category)
	if len(meta.Tags) > 0 {
		field(cmd, "Tags", formatTags(meta.Tags))
	}
	if meta.Author != "" {
		field(cmd, "Author", meta.Author)
	}
	status := "published"
	if meta.Draft {
		status = ui.Draft.Render("draft")
	}
	field(cmd, "Status", status)
	field(cmd, "Reading time", fmt.Sprintf("%d min", post.ReadingTimeMinutes))
	field(cmd, "Views", fmt.Sprintf("%d", meta.Views))
	if !meta.LastModified.IsZero() {
		modified := formatDate(meta.LastModified)
		if meta.LastModifiedBy != "" {
			modified += " by " + meta.LastModifiedBy
		}
		field(cmd, "Last modified", modified)
	}
	for _, k := range slices.Sorted(maps.Keys(meta.Extra)) {
		field(cmd, k, fmt.Sprint(meta.Extra[k]))
	}

	if post.Excerpt != "" {
		cmd.Println()
		cmd.Println(ui.Subtitle.Render("Excerpt"))
		cmd.Printf("  %s\n", post.Excerpt)
	}

	if len(post.TOC) > 0 {
		cmd.Println()
		cmd.Println(ui.Subtitle.Render("Contents"))
		printTOC(cmd, post.TOC, 1)
	}

	if len(post.Tasks) > 0 {
		done := 0
		for _, task := range post.Tasks {
			if task.Completed {
				done++
			}
		}
		cmd.Println()
		cmd.Println(ui.Subtitle.Render(fmt.Sprintf("Tasks (%d/%d done)", done, len(post.Tasks))))
		for _, task := range post.Tasks {
			box := "[ ]"
			if task.Completed {
				box = ui.Success.Render("[x]")
			}
			cmd.Printf("  %s %s\n", box, task.Text)
		}
	}

	if len(post.Links) > 0 {
		cmd.Println()
		cmd.Println(ui.Subtitle.Render("Links"))
		for _, link := range post.Links {
			marker := ""
			if link.External {
				marker = ui.Muted.Render(" (external)")
			}
			cmd.Printf("  %s -> %s%s\n", link.Text, link.Href, marker)
		}
	}

	if len(meta.History) > 0 {
		cmd.Println()
		cmd.Println(ui.Subtitle.Render("History"))
		for _, c := range meta.History {
			sha := c.SHA
			if len(sha) > 7 {
				sha = sha[:7]
			}
			message, _, _ := strings.Cut(c.Message, "\n")
			cmd.Printf("  %s %s %s %s\n", ui.Muted.Render(sha), formatDate(c.Date), c.Author, message)
		}
	}

	return nil
}

func printTOC(cmd *cobra.Command, entries []domain.TOCEntry, depth int) {
	for _, e := range entries {
		cmd.Printf("%s- %s %s\n", strings.Repeat("  ", depth), e.Text, ui.Muted.Render("#"+e.Slug))
		printTOC(cmd, e.Children, depth+1)
	}
}

// findByPrefix resolves an abbreviated post ID.
func findByPrefix(collection *domain.Collection, prefix string) (*domain.Post, error) {
	var match *domain.Post
	for i := range collection.Posts {
		if !strings.HasPrefix(collection.Posts[i].ID, prefix) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: id prefix %q is ambiguous", domain.ErrInvalidInput, prefix)
		}
		match = &collection.Posts[i]
	}
	if match == nil {
		return nil, fmt.Errorf("%w: post %s", domain.ErrNotFound, prefix)
	}
	return match, nil
}
