package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driven"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeySourceType   = "source.type"
	KeySourcePath   = "source.path"
	KeyOwner        = "github.owner"
	KeyRepo         = "github.repo"
	KeyBranch       = "github.branch"
	KeyToken        = "github.token"
	KeyCacheTimeout = "cache.timeout_ms"
	KeyMaxAttempts  = "retry.max_attempts"
	KeyRetryDelay   = "retry.delay_ms"
	KeyConcurrency  = "pipeline.concurrency"
	KeyBaseURL      = "render.base_url"
	KeyImagePath    = "render.image_path"
	KeyDebug        = "debug"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
)

var settingKinds = map[string]valueKind{
	KeySourceType:   kindString,
	KeySourcePath:   kindString,
	KeyOwner:        kindString,
	KeyRepo:         kindString,
	KeyBranch:       kindString,
	KeyToken:        kindString,
	KeyCacheTimeout: kindInt,
	KeyMaxAttempts:  kindInt,
	KeyRetryDelay:   kindInt,
	KeyConcurrency:  kindInt,
	KeyBaseURL:      kindString,
	KeyImagePath:    kindString,
	KeyDebug:        kindBool,
}

// SettingsService reads and writes pipeline settings through a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the stored settings. Missing keys take their defaults.
func (s *SettingsService) Get() (domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := domain.Settings{
		Source:       s.getSourceType(defaults.Source),
		Path:         s.configStore.GetString(KeySourcePath),
		Token:        s.configStore.GetString(KeyToken),
		Owner:        s.configStore.GetString(KeyOwner),
		Repo:         s.configStore.GetString(KeyRepo),
		Branch:       s.getString(KeyBranch, defaults.Branch),
		CacheTimeout: s.getMillis(KeyCacheTimeout, defaults.CacheTimeout),
		MaxAttempts:  s.getInt(KeyMaxAttempts, defaults.MaxAttempts),
		RetryDelay:   s.getMillis(KeyRetryDelay, defaults.RetryDelay),
		Concurrency:  s.getInt(KeyConcurrency, defaults.Concurrency),
		BaseURL:      s.configStore.GetString(KeyBaseURL),
		ImagePath:    s.getString(KeyImagePath, defaults.ImagePath),
		Debug:        s.getBool(KeyDebug, defaults.Debug),
	}

	return settings, nil
}

// Set parses value according to the type of key and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	switch kind {
	case kindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		if (key == KeyMaxAttempts || key == KeyConcurrency) && n < 1 {
			return fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, key)
		}
		return s.save(key, n)
	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return s.save(key, b)
	default:
		value = strings.TrimSpace(value)
		if key == KeySourceType && !domain.SourceType(value).IsValid() {
			return fmt.Errorf("%w: unknown source type %q", domain.ErrInvalidInput, value)
		}
		return s.save(key, value)
	}
}

// Unset removes a stored setting so its default applies again.
func (s *SettingsService) Unset(key string) error {
	if _, ok := settingKinds[key]; !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Delete(key); err != nil {
		return fmt.Errorf("unset %s: %w", key, err)
	}
	return nil
}

// Value returns the stored value of key as text.
func (s *SettingsService) Value(key string) (string, bool) {
	val, ok := s.configStore.Get(key)
	if !ok {
		return "", false
	}
	return fmt.Sprint(val), true
}

// Keys returns every recognised setting key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) save(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSourceType(defaultVal domain.SourceType) domain.SourceType {
	val := s.configStore.GetString(KeySourceType)
	if val == "" {
		return defaultVal
	}
	t := domain.SourceType(val)
	if !t.IsValid() {
		return defaultVal
	}
	return t
}
