package markdown

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// postRenderer overrides the default HTML output for headings, links,
// images, code blocks and tables. It holds configuration only, so one
// instance serves concurrent renders.
type postRenderer struct {
	baseURL   string
	imagePath string
}

func newPostRenderer(baseURL, imagePath string) *postRenderer {
	return &postRenderer{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		imagePath: strings.TrimSuffix(imagePath, "/"),
	}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *postRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(east.KindTable, r.renderTable)
}

func (r *postRenderer) renderHeading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	level := strconv.Itoa(n.Level)
	id := headingID(n)

	if entering {
		_, _ = w.WriteString("<h" + level)
		if id != "" {
			_, _ = w.WriteString(` id="`)
			_, _ = w.Write(util.EscapeHTML([]byte(id)))
			_ = w.WriteByte('"')
		}
		_ = w.WriteByte('>')
		return ast.WalkContinue, nil
	}

	if id != "" {
		_, _ = w.WriteString(` <a class="anchor-link" href="#`)
		_, _ = w.Write(util.EscapeHTML([]byte(id)))
		_, _ = w.WriteString(`" aria-hidden="true">#</a>`)
	}
	_, _ = w.WriteString("</h" + level + ">\n")
	return ast.WalkContinue, nil
}

func (r *postRenderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}

	writeAnchorOpen(w, n.Destination, n.Title)
	return ast.WalkContinue, nil
}

func (r *postRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)

	dest := n.URL(source)
	if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(dest), []byte("mailto:")) {
		dest = append([]byte("mailto:"), dest...)
	}

	writeAnchorOpen(w, dest, nil)
	_, _ = w.Write(util.EscapeHTML(n.Label(source)))
	_, _ = w.WriteString("</a>")
	return ast.WalkContinue, nil
}

// writeAnchorOpen writes an opening anchor tag. External links open in a
// new browsing context.
func writeAnchorOpen(w util.BufWriter, dest, title []byte) {
	external := IsExternalLink(string(dest))

	_, _ = w.WriteString(`<a href="`)
	if !html.IsDangerousURL(dest) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(dest, true)))
	}
	_ = w.WriteByte('"')
	if len(title) > 0 {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(title))
		_ = w.WriteByte('"')
	}
	if external {
		_, _ = w.WriteString(` target="_blank" rel="noopener noreferrer" class="external-link">`)
		return
	}
	_, _ = w.WriteString(` class="internal-link">`)
}

func (r *postRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)

	src := r.resolveImage(string(n.Destination))
	_, _ = w.WriteString(`<img src="`)
	if !html.IsDangerousURL([]byte(src)) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(src), true)))
	}
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(plainText(n, source))))
	_ = w.WriteByte('"')
	if len(n.Title) > 0 {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(` loading="lazy">`)
	return ast.WalkSkipChildren, nil
}

// resolveImage maps an image destination onto the configured hosts.
// External URLs pass through, absolute paths are prefixed with the base
// URL and relative paths with the image path.
func (r *postRenderer) resolveImage(src string) string {
	switch {
	case src == "" || IsExternalLink(src) || strings.HasPrefix(src, "//"):
		return src
	case strings.HasPrefix(src, "/"):
		return r.baseURL + src
	case r.imagePath == "":
		return src
	default:
		return r.imagePath + "/" + strings.TrimPrefix(src, "./")
	}
}

func (r *postRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	writeCodeBlock(w, string(n.Language(source)), codeLines(n, source))
	return ast.WalkSkipChildren, nil
}

func (r *postRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	writeCodeBlock(w, "", codeLines(node, source))
	return ast.WalkSkipChildren, nil
}

func writeCodeBlock(w util.BufWriter, lang, code string) {
	highlighted, class := highlightCode(code, lang)

	_, _ = w.WriteString(`<div class="code-block">`)
	if lang != "" {
		_, _ = w.WriteString(`<div class="code-language">`)
		_, _ = w.Write(util.EscapeHTML([]byte(lang)))
		_, _ = w.WriteString(`</div>`)
	}
	_, _ = w.WriteString(`<pre><code class="hljs language-` + class + `">`)
	_, _ = w.WriteString(highlighted)
	_, _ = w.WriteString("</code></pre></div>\n")
}

func codeLines(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(source))
	}
	return b.String()
}

func (r *postRenderer) renderTable(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<div class=\"table-wrapper\">\n<table>\n")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("</table>\n</div>\n")
	return ast.WalkContinue, nil
}

func headingID(n *ast.Heading) string {
	v, ok := n.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	default:
		return ""
	}
}
