// Package driving defines interfaces that external actors (CLI, TUI, MCP)
// use to interact with core services. These are the "driving" ports in
// hexagonal architecture terminology - they drive the application.
//
//   - PostService: runs the pipeline and answers queries over its output
//   - RepositoryService: repository statistics for hosted sources
//   - SettingsService: reads and writes pipeline settings
//
// Implementations of these interfaces live in internal/core/services.
package driving
