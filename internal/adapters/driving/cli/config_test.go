package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

func TestConfigCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range configCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "get", "set", "unset", "path"}, names)
}

func TestConfigListCmd_ShowsStoredAndDefaults(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("config", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "github.owner")
	assert.Contains(t, out, "octocat")
	assert.Contains(t, out, "retry.max_attempts")
	assert.Contains(t, out, "(default)")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestConfigListCmd_MasksToken(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute("config", "set", "github.token", "ghp_1234567890abcdef")
	require.NoError(t, err)

	out, _, err := execute("config")
	require.NoError(t, err)
	assert.Contains(t, out, "ghp_...cdef")
	assert.NotContains(t, out, "ghp_1234567890abcdef")
}

func TestConfigListCmd_WarnsWhenIncomplete(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute("config", "unset", "github.repo")
	require.NoError(t, err)

	out, _, err := execute("config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Warning:")
	assert.Contains(t, out, domain.ErrSourceNotConfigured.Error())
}

func TestConfigGetCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("config", "get", "github.owner")
	require.NoError(t, err)
	assert.Equal(t, "octocat\n", out)

	_, _, err = execute("config", "get", "github.branch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "github.branch is not set")
}

func TestConfigSetCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"string", []string{"github.branch", "gh-pages"}, ""},
		{"int", []string{"pipeline.concurrency", "4"}, ""},
		{"bool", []string{"debug", "true"}, ""},
		{"source type", []string{"source.type", "filesystem"}, ""},
		{"unknown key", []string{"github.colour", "blue"}, "invalid input"},
		{"not a number", []string{"cache.timeout_ms", "soon"}, "invalid input"},
		{"bad source", []string{"source.type", "gitlab"}, "unknown source type"},
		{"missing value", []string{"github.branch"}, "missing value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := setupTestServices()
			defer cleanup()

			out, _, err := execute(append([]string{"config", "set"}, tt.args...)...)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "Set "+tt.args[0])

			value, ok := settingsService.Value(tt.args[0])
			require.True(t, ok)
			assert.Equal(t, tt.args[1], value)
		})
	}
}

func TestConfigSetCmd_PromptsForToken(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeWithInput("ghp_secret\n", "config", "set", "github.token")

	require.NoError(t, err)
	assert.Contains(t, out, "Enter GitHub token:")
	assert.NotContains(t, out, "ghp_secret")

	value, ok := settingsService.Value("github.token")
	require.True(t, ok)
	assert.Equal(t, "ghp_secret", value)
}

func TestConfigUnsetCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("config", "unset", "github.owner")
	require.NoError(t, err)
	assert.Contains(t, out, "Unset github.owner")

	_, ok := settingsService.Value("github.owner")
	assert.False(t, ok)

	_, _, err = execute("config", "unset", "nope")
	assert.Error(t, err)
}

func TestConfigPathCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("config", "path")

	require.NoError(t, err)
	assert.Equal(t, ":memory:", strings.TrimSpace(out))
}

func TestConfigCmd_ServiceNotConfigured(t *testing.T) {
	orig := settingsService
	settingsService = nil
	defer func() { settingsService = orig }()

	_, _, err := execute("config", "path")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestReadPassword_FallsBackToLine(t *testing.T) {
	assert.Equal(t, "token", readPassword(strings.NewReader("  token  \nignored\n")))
	assert.Equal(t, "", readPassword(strings.NewReader("")))
}
