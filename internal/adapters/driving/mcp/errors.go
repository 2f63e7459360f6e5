// Package mcp provides an MCP (Model Context Protocol) server adapter for blogcrm.
// It lets AI assistants search and read the post collection.
package mcp

import "errors"

// ErrMissingPostService is returned when the post service is not provided.
var ErrMissingPostService = errors.New("mcp: post service is required")
