package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// splitFrontmatter separates the leading frontmatter block from the body.
// YAML (---), TOML (+++) and JSON blocks are recognised. A document without
// frontmatter yields an empty mapping and the whole input as body.
func splitFrontmatter(source []byte) (map[string]any, []byte, error) {
	fields := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &fields)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return fields, body, nil
}

// plainValue converts decoded frontmatter values into JSON-friendly shapes.
// YAML decodes nested mappings with interface keys.
func plainValue(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = plainValue(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = plainValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = plainValue(val)
		}
		return out
	default:
		return v
	}
}
