package markdown

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// plainLanguage is the class used when no lexer matches.
const plainLanguage = "plaintext"

var (
	codeFormatter = chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(true),
	)
	codeStyle = styles.Get("github")

	languageClassInvalid = regexp.MustCompile(`[^a-z0-9+#_-]`)
)

// highlightCode renders code as class-annotated HTML spans.
// It returns the markup and the language class to put on the code element.
func highlightCode(code, lang string) (string, string) {
	lexer := lexers.Get(lang)
	class := languageClass(lang)
	if lang == "" || lexer == nil {
		lexer = lexers.Fallback
		class = plainLanguage
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return html.EscapeString(code), class
	}

	var buf bytes.Buffer
	if err := codeFormatter.Format(&buf, codeStyle, iterator); err != nil {
		return html.EscapeString(code), class
	}
	return buf.String(), class
}

func languageClass(lang string) string {
	class := languageClassInvalid.ReplaceAllString(strings.ToLower(lang), "")
	if class == "" {
		return plainLanguage
	}
	return class
}

// StyleCSS returns the stylesheet matching the highlighted markup.
func StyleCSS() (string, error) {
	var buf bytes.Buffer
	if err := codeFormatter.WriteCSS(&buf, codeStyle); err != nil {
		return "", err
	}
	return buf.String(), nil
}
