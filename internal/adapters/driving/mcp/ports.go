package mcp

import (
	"github.com/uakbr/github-blog-crm/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server needs.
type Ports struct {
	// Posts loads and queries the post collection.
	Posts driving.PostService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Posts == nil {
		return ErrMissingPostService
	}
	return nil
}
