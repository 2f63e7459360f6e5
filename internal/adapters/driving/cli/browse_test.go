package cli

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uakbr/github-blog-crm/internal/core/ports/driving"
)

func stubBrowser(t *testing.T, run func(context.Context, driving.PostService) error) {
	t.Helper()
	origRun, origTerminal := runBrowser, isTerminal
	runBrowser = run
	isTerminal = func(io.Writer) bool { return true }
	t.Cleanup(func() {
		runBrowser, isTerminal = origRun, origTerminal
	})
}

func TestBrowseCmd_Use(t *testing.T) {
	assert.Equal(t, "browse", browseCmd.Use)
	assert.NotEmpty(t, browseCmd.Short)
}

func TestBrowse_RunsBrowserWithPosts(t *testing.T) {
	posts, cleanup := setupTestServices()
	defer cleanup()

	var got driving.PostService
	stubBrowser(t, func(_ context.Context, p driving.PostService) error {
		got = p
		return nil
	})

	_, _, err := execute("browse")

	require.NoError(t, err)
	assert.Same(t, posts, got)
}

func TestBrowse_RequiresTerminal(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute("browse")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestBrowse_WithoutServices(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	buildServices = nil

	_, _, err := execute("browse")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}

func TestBrowse_BrowserError(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	stubBrowser(t, func(context.Context, driving.PostService) error {
		return errors.New("screen lost")
	})

	_, _, err := execute("browse")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "browser error: screen lost")
}

func TestBrowse_CancelledIsClean(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	stubBrowser(t, func(context.Context, driving.PostService) error {
		return context.Canceled
	})

	_, _, err := execute("browse")

	assert.NoError(t, err)
}
