package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uakbr/github-blog-crm/internal/adapters/driving/mcp"
)

func stubServeMCP(t *testing.T) *string {
	t.Helper()
	orig := serveMCP
	var gotAddr string
	serveMCP = func(_ context.Context, server *mcp.Server, addr string) error {
		require.NotNil(t, server)
		gotAddr = addr
		return nil
	}
	t.Cleanup(func() { serveMCP = orig })
	return &gotAddr
}

func TestMCPCmd_Subcommands(t *testing.T) {
	require.Len(t, mcpCmd.Commands(), 1)
	assert.Equal(t, "serve", mcpCmd.Commands()[0].Name())
}

func TestMCPServe_Stdio(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	addr := stubServeMCP(t)

	stdout, _, err := execute("mcp", "serve")

	require.NoError(t, err)
	assert.Empty(t, *addr)
	assert.Empty(t, stdout, "stdout belongs to the protocol")
}

func TestMCPServe_HTTP(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	addr := stubServeMCP(t)

	stdout, _, err := execute("mcp", "serve", "--port", "8080")

	require.NoError(t, err)
	assert.Equal(t, ":8080", *addr)
	assert.Contains(t, stdout, "http://localhost:8080")
}

func TestMCPServe_WithoutServices(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	buildServices = nil
	stubServeMCP(t)

	_, _, err := execute("mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}
