package driving

import "github.com/uakbr/github-blog-crm/internal/core/domain"

// SettingsService manages the persisted pipeline configuration.
type SettingsService interface {
	// Get returns the persisted settings with defaults applied.
	Get() (domain.Settings, error)

	// Set parses and persists one setting by key.
	Set(key, value string) error

	// Unset removes a persisted setting so its default applies again.
	Unset(key string) error

	// Value returns the persisted value of key formatted as text.
	Value(key string) (string, bool)

	// Keys returns every recognised setting key.
	Keys() []string

	// Path returns where settings are persisted.
	Path() string
}
