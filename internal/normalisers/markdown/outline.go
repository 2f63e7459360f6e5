package markdown

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

// schemePattern matches an RFC 3986 URI scheme prefix.
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// IsExternalLink reports whether href carries a URI scheme.
func IsExternalLink(href string) bool {
	return schemePattern.MatchString(href)
}

// outline is everything derived from one walk over the document tree.
type outline struct {
	headings []domain.TOCEntry
	links    []domain.Link
	tasks    []domain.Task
	firstH1  string
}

// collectOutline walks the parsed document in order.
func collectOutline(doc ast.Node, source []byte) outline {
	var out outline
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			text := plainText(n, source)
			if n.Level == 1 && out.firstH1 == "" {
				out.firstH1 = text
			}
			out.headings = append(out.headings, domain.TOCEntry{
				Text:  text,
				Level: n.Level,
				Slug:  headingID(n),
			})
		case *ast.Link:
			href := string(n.Destination)
			out.links = append(out.links, domain.Link{
				Href:     href,
				Text:     plainText(n, source),
				External: IsExternalLink(href),
			})
		case *ast.AutoLink:
			href := string(n.URL(source))
			if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(href), "mailto:") {
				href = "mailto:" + href
			}
			out.links = append(out.links, domain.Link{
				Href:     href,
				Text:     string(n.Label(source)),
				External: IsExternalLink(href),
			})
		case *east.TaskCheckBox:
			out.tasks = append(out.tasks, domain.Task{
				Text:      strings.TrimSpace(plainText(n.Parent(), source)),
				Completed: n.IsChecked,
			})
		}
		return ast.WalkContinue, nil
	})
	return out
}

// buildTOC nests flat headings. A heading becomes a child of the nearest
// preceding heading with a strictly lower level; without one it is a root.
// A jump of several levels nests directly under that heading.
func buildTOC(flat []domain.TOCEntry) []domain.TOCEntry {
	type node struct {
		entry    domain.TOCEntry
		children []*node
	}

	var roots, stack []*node
	for _, h := range flat {
		for len(stack) > 0 && stack[len(stack)-1].entry.Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		n := &node{entry: h}
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
		}
		stack = append(stack, n)
	}

	var convert func([]*node) []domain.TOCEntry
	convert = func(nodes []*node) []domain.TOCEntry {
		out := make([]domain.TOCEntry, 0, len(nodes))
		for _, n := range nodes {
			e := n.entry
			e.Children = convert(n.children)
			out = append(out, e)
		}
		return out
	}
	return convert(roots)
}

// plainText concatenates the text content under n.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	writePlainText(&b, n, source)
	return b.String()
}

func writePlainText(b *strings.Builder, n ast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(source))
		case *east.TaskCheckBox:
		default:
			writePlainText(b, c, source)
		}
	}
}
