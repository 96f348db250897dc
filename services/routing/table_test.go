package routing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		name        string
		entries     []Entry
		expectError bool
	}{
		{
			name: "valid entries",
			entries: []Entry{
				{ModelID: "m1", Provider: "P", Endpoint: "https://a.example/v1/chat/completions", CredentialEnv: "A_KEY", UpstreamModel: "m1-big"},
				{ModelID: "m2", Provider: "P", Endpoint: "https://a.example/v1/chat/completions", CredentialEnv: "A_KEY", UpstreamModel: "m2-big"},
			},
		},
		{
			name: "empty model id",
			entries: []Entry{
				{ModelID: " ", Endpoint: "https://a.example", CredentialEnv: "A_KEY", UpstreamModel: "m"},
			},
			expectError: true,
		},
		{
			name: "missing credential reference",
			entries: []Entry{
				{ModelID: "m1", Endpoint: "https://a.example", UpstreamModel: "m"},
			},
			expectError: true,
		},
		{
			name: "relative endpoint",
			entries: []Entry{
				{ModelID: "m1", Endpoint: "a.example/v1", CredentialEnv: "A_KEY", UpstreamModel: "m"},
			},
			expectError: true,
		},
		{
			name: "duplicate model id",
			entries: []Entry{
				{ModelID: "m1", Endpoint: "https://a.example", CredentialEnv: "A_KEY", UpstreamModel: "m"},
				{ModelID: "m1", Endpoint: "https://b.example", CredentialEnv: "B_KEY", UpstreamModel: "m"},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.entries)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.entries), table.Len())
		})
	}
}

func TestTableLookup(t *testing.T) {
	table, err := NewTable(DefaultEntries())
	require.NoError(t, err)

	t.Run("known model", func(t *testing.T) {
		entry, ok := table.Lookup("deepseek-v3")
		require.True(t, ok)
		assert.Equal(t, "deepseek-chat", entry.UpstreamModel)
		assert.Equal(t, "DEEPSEEK_API_KEY", entry.CredentialEnv)
		assert.Equal(t, "https://api.deepseek.com/chat/completions", entry.Endpoint)
	})

	t.Run("unknown model", func(t *testing.T) {
		_, ok := table.Lookup("unknown-model")
		assert.False(t, ok)
	})
}

func TestTableGroups(t *testing.T) {
	table, err := NewTable([]Entry{
		{ModelID: "b1", Provider: "Beta", Endpoint: "https://b.example", CredentialEnv: "B_KEY", UpstreamModel: "b1"},
		{ModelID: "a1", Provider: "Alpha", Endpoint: "https://a.example", CredentialEnv: "A_KEY", UpstreamModel: "a1"},
		{ModelID: "b2", Provider: "Beta", Endpoint: "https://b.example", CredentialEnv: "B_KEY", UpstreamModel: "b2"},
	})
	require.NoError(t, err)

	groups := table.Groups()
	require.Len(t, groups, 2)

	assert.Equal(t, "Alpha", groups[0].Provider)
	require.Len(t, groups[0].Models, 1)
	assert.Equal(t, "a1", groups[0].Models[0].ModelID)

	assert.Equal(t, "Beta", groups[1].Provider)
	require.Len(t, groups[1].Models, 2)
	assert.Equal(t, "b1", groups[1].Models[0].ModelID)
	assert.Equal(t, "b2", groups[1].Models[1].ModelID)
}

func TestLoadTable(t *testing.T) {
	t.Run("empty path uses builtin defaults", func(t *testing.T) {
		table, err := LoadTable("")
		require.NoError(t, err)
		assert.Equal(t, len(DefaultEntries()), table.Len())
	})

	t.Run("valid routes file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "routes.yaml")
		content := `routes:
  - model_id: test-model
    provider: Test
    endpoint: https://test.example/v1/chat/completions
    credential_env: TEST_API_KEY
    upstream_model: test-model-large
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		table, err := LoadTable(path)
		require.NoError(t, err)
		assert.Equal(t, 1, table.Len())

		entry, ok := table.Lookup("test-model")
		require.True(t, ok)
		assert.Equal(t, "test-model-large", entry.UpstreamModel)
		assert.Equal(t, "TEST_API_KEY", entry.CredentialEnv)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTable(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "routes.yaml")
		require.NoError(t, os.WriteFile(path, []byte("routes: [::"), 0o600))

		_, err := LoadTable(path)
		assert.Error(t, err)
	})

	t.Run("empty routes list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "routes.yaml")
		require.NoError(t, os.WriteFile(path, []byte("routes: []"), 0o600))

		_, err := LoadTable(path)
		assert.Error(t, err)
	})
}
