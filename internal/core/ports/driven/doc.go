// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ContentSource: lists markdown files and fetches their bytes and history
//   - DocumentTransformer: turns markdown bytes into a processed document
//   - PostStore: holds the latest collection snapshot
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
//   - ResponseCache: time-bounded cache used by API-backed sources.
//     A no-op implementation disables caching.
//   - RepositoryHost: repository-level queries for hosted sources.
//   - ChangeWatcher: sources that can push change notifications.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
