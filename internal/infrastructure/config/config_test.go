package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.toml")
	content := `
model = "gpt-4o-mini"
base_url = "https://openrouter.ai/api/v1"
max_iterations = 10
command_timeout_secs = 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.BaseURL)
	assert.Equal(t, 10, cfg.MaxIterations)
	assert.Equal(t, 5, cfg.CommandTimeoutSecs)
	// Untouched keys keep defaults.
	assert.Equal(t, 20000, cfg.MaxObservationLen)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = ["), 0644))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.Model = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MaxIterations = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.CommandTimeoutSecs = 0
	assert.Error(t, cfg.Validate())
}
