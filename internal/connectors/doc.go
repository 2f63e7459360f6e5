// Package connectors holds the content sources the pipeline reads from.
// Each connector implements driven.ContentSource for one kind of store:
//
//   - github: a GitHub repository read through the REST API
//   - filesystem: a local directory of markdown files
//
// The CLI picks one at startup from the configured source type.
package connectors
