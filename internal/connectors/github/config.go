package github

import (
	"fmt"
	"time"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

const (
	// DefaultRawBaseURL is the raw content host.
	DefaultRawBaseURL = "https://raw.githubusercontent.com"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// Config holds the settings of one GitHub content client.
type Config struct {
	Owner  string
	Repo   string
	Branch string

	// Token authorises API calls. Raw content fetches never send it.
	Token string

	// APIBaseURL overrides the REST API root. Empty means api.github.com.
	APIBaseURL string

	// RawBaseURL overrides the raw content host.
	RawBaseURL string

	// MaxAttempts bounds API attempts per request, including the first.
	MaxAttempts int

	// RetryDelay is multiplied by the attempt number between attempts.
	RetryDelay time.Duration

	// RequestTimeout bounds a single HTTP exchange.
	RequestTimeout time.Duration

	// RequestsPerSecond throttles API calls. Zero disables throttling.
	RequestsPerSecond float64
}

// ConfigFromSettings maps pipeline settings onto a client config.
func ConfigFromSettings(s domain.Settings) Config {
	return Config{
		Owner:             s.Owner,
		Repo:              s.Repo,
		Branch:            s.Branch,
		Token:             s.Token,
		MaxAttempts:       s.MaxAttempts,
		RetryDelay:        s.RetryDelay,
		RequestTimeout:    DefaultTimeout,
		RequestsPerSecond: ProactiveRate,
	}
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	if c.Branch == "" {
		c.Branch = domain.DefaultBranch
	}
	if c.RawBaseURL == "" {
		c.RawBaseURL = DefaultRawBaseURL
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = domain.DefaultMaxAttempts
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultTimeout
	}
	return c
}

// Validate checks the fields every request needs.
func (c Config) Validate() error {
	if c.Owner == "" {
		return fmt.Errorf("%w: missing owner", ErrConfigIncomplete)
	}
	if c.Repo == "" {
		return fmt.Errorf("%w: missing repo", ErrConfigIncomplete)
	}
	return nil
}
