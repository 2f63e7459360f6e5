package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
)

var (
	slugInvalid = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugSpace   = regexp.MustCompile(`\s+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify turns heading text into a URL fragment.
// "Hello, World!" becomes "hello-world".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugSpace.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// slugIDs implements parser.IDs. Repeated headings get -1, -2 suffixes.
type slugIDs struct {
	used map[string]struct{}
}

func newSlugIDs() *slugIDs {
	return &slugIDs{used: make(map[string]struct{})}
}

func (s *slugIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	base := Slugify(string(value))
	if base == "" {
		base = "section"
	}

	id := base
	for i := 1; ; i++ {
		if _, taken := s.used[id]; !taken {
			break
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
	s.used[id] = struct{}{}
	return []byte(id)
}

func (s *slugIDs) Put(value []byte) {
	s.used[string(value)] = struct{}{}
}
