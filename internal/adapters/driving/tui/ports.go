// Package tui provides the interactive post browser for blogcrm.
// It is a driving adapter over the core post service.
package tui

import (
	"github.com/uakbr/github-blog-crm/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Posts loads and queries the post collection.
	Posts driving.PostService
}

// NewPorts creates a new Ports aggregate.
func NewPorts(posts driving.PostService) *Ports {
	return &Ports{Posts: posts}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Posts == nil {
		return ErrMissingPostService
	}
	return nil
}
