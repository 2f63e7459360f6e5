// Package domain defines the core entities of the blog pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FileRef: A markdown file discovered in a content source
//   - FileMetadata: The commit history of a file
//   - Post: A rendered, enriched blog post
//   - Collection: The immutable result of one pipeline run
//   - PostQuery: Filtering and ordering over a collection
//   - Settings: The explicit configuration of a pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
