package html

import (
	"html"
	"regexp"
	"strings"
)

// Pre-compiled regular expressions for HTML parsing performance.
var (
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	anchorLinks       = regexp.MustCompile(`(?is)<a[^>]*class="anchor-link"[^>]*>.*?</a>`)
	codeLanguage      = regexp.MustCompile(`(?is)<div class="code-language">.*?</div>`)
	listItems         = regexp.MustCompile(`(?i)<li[^>]*>`)
	checkedBoxes      = regexp.MustCompile(`(?i)<input[^>]*checked[^>]*>`)
	checkBoxes        = regexp.MustCompile(`(?i)<input[^>]*type="checkbox"[^>]*>`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|table|ul|ol)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|tr|blockquote|table|ul|ol)[^>]*>`)
	tableCells        = regexp.MustCompile(`(?i)</t[dh]>`)
	brTags            = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags            = regexp.MustCompile(`(?i)<hr\s*/?>`)
	preBlocks         = regexp.MustCompile(`(?is)<pre[^>]*>(.*?)</pre>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
	multiNewlines     = regexp.MustCompile(`\n{3,}`)
)

// Stand-ins that protect preformatted blocks while the rest of the markup
// is collapsed.
const (
	newlineMarker = "\x00"
	spaceMarker   = "\x01"
	tabMarker     = "\x02"
)

var preserve = strings.NewReplacer(" ", spaceMarker, "\t", tabMarker)

var restore = strings.NewReplacer(newlineMarker, "\n", spaceMarker, " ", tabMarker, "\t")

// Text strips markup from rendered post HTML and returns readable text.
// Paragraphs are separated by blank lines, list items get a bullet, task
// items a checkbox, and code blocks keep their line structure and
// indentation.
func Text(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")
	content = anchorLinks.ReplaceAllString(content, "")
	content = codeLanguage.ReplaceAllString(content, "")

	content = preBlocks.ReplaceAllStringFunc(content, func(block string) string {
		inner := preBlocks.FindStringSubmatch(block)[1]
		inner = allTags.ReplaceAllString(inner, "")
		inner = strings.TrimRight(inner, "\n")
		lines := strings.Split(inner, "\n")
		for i, line := range lines {
			lines[i] = preserve.Replace("    " + line)
		}
		return "\n" + strings.Join(lines, newlineMarker) + "\n"
	})

	content = checkedBoxes.ReplaceAllString(content, "[x] ")
	content = checkBoxes.ReplaceAllString(content, "[ ] ")
	content = listItems.ReplaceAllString(content, "\n- ")
	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n\n")
	content = tableCells.ReplaceAllString(content, " | ")
	content = brTags.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n----\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	content = strings.Join(lines, "\n")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	return restore.Replace(strings.TrimSpace(content))
}
