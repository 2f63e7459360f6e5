// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// PostService is the pipeline orchestrator: it lists a content source,
// processes every file concurrently, and publishes each run as an
// immutable collection. Query and index building are pure functions
// over that collection.
//
// Services are pure Go with no CGO and no knowledge of concrete adapters.
package services
