// pkg/commands/genconfig/genconfig_test.go
// TEST TYPE: Unit
// DEPENDENCIES: Temp directory
// PURPOSE: Test starter config generation and overwrite protection

package genconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmchartrand/synceverything/pkg/commands/genconfig"
	"github.com/tmchartrand/synceverything/pkg/config"
	"github.com/tmchartrand/synceverything/pkg/errors"
)

func TestGenConfig_WritesDefaultTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	got, err := genconfig.GenConfig(genconfig.GenConfigOptions{Path: path})

	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[remote]")
	assert.Contains(t, string(data), "confirm_before_sync")
}

func TestGenConfig_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine"), 0644))

	_, err := genconfig.GenConfig(genconfig.GenConfigOptions{Path: path})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	data, _ := os.ReadFile(path)
	assert.Equal(t, "# mine", string(data))
}

func TestGenConfig_ForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine"), 0644))

	_, err := genconfig.GenConfig(genconfig.GenConfigOptions{Path: path, Force: true})

	require.NoError(t, err)
	data, _ := os.ReadFile(path)
	assert.NotEqual(t, "# mine", string(data))
}

func TestGenConfig_EffectiveMarshalsLoadedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := &config.Config{}
	cfg.Remote.BaseURL = "https://example.test"
	cfg.Editor.Command = "codium"

	_, err := genconfig.GenConfig(genconfig.GenConfigOptions{
		Path:      path,
		Effective: true,
		Config:    cfg,
	})

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "https://example.test")
	assert.Contains(t, string(data), "codium")
}
