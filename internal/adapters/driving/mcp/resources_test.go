package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

func TestExtractPostID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid post URI",
			uri:      "blogcrm://posts/post-1",
			expected: "post-1",
		},
		{
			name:     "invalid prefix",
			uri:      "file://posts/post-1",
			expected: "",
		},
		{
			name:     "missing id",
			uri:      "blogcrm://posts/",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractPostID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleIndexResource(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleIndexResource(context.Background(), makeReadResourceRequest("blogcrm://index"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, `"totalPosts": 2`)
	assert.Contains(t, result.Contents[0].Text, `"Hello World"`)
}

func TestServer_handleStatsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns counts", func(t *testing.T) {
		server, _ := newTestServer(t)

		result, err := server.handleStatsResource(ctx, makeReadResourceRequest("blogcrm://stats"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"total": 2`)
		assert.Contains(t, result.Contents[0].Text, `"drafts": 1`)
	})

	t.Run("returns error on load failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Posts: &mockPostService{loadErr: domain.ErrListFailed}})
		require.NoError(t, err)

		_, err = server.handleStatsResource(ctx, makeReadResourceRequest("blogcrm://stats"))

		assert.ErrorIs(t, err, domain.ErrListFailed)
	})
}

func TestServer_handlePostResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns title and body", func(t *testing.T) {
		server, _ := newTestServer(t)

		result, err := server.handlePostResource(ctx, makeReadResourceRequest("blogcrm://posts/post-1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "Hello World\n\n")
		assert.Contains(t, result.Contents[0].Text, "Welcome to the blog.")
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, err := server.handlePostResource(ctx, makeReadResourceRequest("blogcrm://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("unknown post returns not found", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, err := server.handlePostResource(ctx, makeReadResourceRequest("blogcrm://posts/missing"))

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrListFailed)
	})
}
