package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceType_IsValid(t *testing.T) {
	assert.True(t, SourceGitHub.IsValid())
	assert.True(t, SourceFilesystem.IsValid())
	assert.False(t, SourceType("").IsValid())
	assert.False(t, SourceType("s3").IsValid())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, SourceGitHub, s.Source)
	assert.Equal(t, "main", s.Branch)
	assert.Equal(t, DefaultCacheTimeout, s.CacheTimeout)
	assert.Equal(t, 3, s.MaxAttempts)
	assert.Equal(t, DefaultRetryDelay, s.RetryDelay)
	assert.Equal(t, DefaultConcurrency, s.Concurrency)
	assert.Equal(t, "/images", s.ImagePath)
}

func TestSettings_Validate(t *testing.T) {
	github := func(mod func(*Settings)) Settings {
		s := DefaultSettings()
		s.Owner, s.Repo = "octocat", "blog"
		if mod != nil {
			mod(&s)
		}
		return s
	}

	tests := []struct {
		name    string
		s       Settings
		wantErr error
	}{
		{"valid github", github(nil), nil},
		{"valid filesystem", github(func(s *Settings) {
			s.Source, s.Owner, s.Repo, s.Path = SourceFilesystem, "", "", "./posts"
		}), nil},
		{"unknown source", github(func(s *Settings) { s.Source = "s3" }), ErrInvalidInput},
		{"missing owner", github(func(s *Settings) { s.Owner = "" }), ErrSourceNotConfigured},
		{"missing repo", github(func(s *Settings) { s.Repo = "" }), ErrSourceNotConfigured},
		{"missing path", github(func(s *Settings) { s.Source = SourceFilesystem }), ErrSourceNotConfigured},
		{"negative cache timeout", github(func(s *Settings) { s.CacheTimeout = -1 }), ErrInvalidInput},
		{"zero attempts", github(func(s *Settings) { s.MaxAttempts = 0 }), ErrInvalidInput},
		{"zero concurrency", github(func(s *Settings) { s.Concurrency = 0 }), ErrInvalidInput},
		{"zero cache timeout disables caching", github(func(s *Settings) { s.CacheTimeout = 0 }), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
