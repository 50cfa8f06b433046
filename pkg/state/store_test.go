// pkg/state/store_test.go
// TEST TYPE: Unit
// DEPENDENCIES: Temp directory
// PURPOSE: Test JSON-file-backed state store persistence across reopens

package state_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmchartrand/synceverything/pkg/state"
	"github.com/tmchartrand/synceverything/pkg/types"
)

func statePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "state.json")
}

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	store, err := state.Open(statePath(t))
	require.NoError(t, err)

	_, ok := store.Get(state.KeyMasterID)
	assert.False(t, ok)
}

func TestSetGet_PersistsAcrossReopen(t *testing.T) {
	path := statePath(t)

	store, err := state.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(state.KeyMasterID, "abc123"))

	reopened, err := state.Open(path)
	require.NoError(t, err)

	got, ok := reopened.Get(state.KeyMasterID)
	assert.True(t, ok)
	assert.Equal(t, "abc123", got)
}

func TestDelete_RemovesKey(t *testing.T) {
	path := statePath(t)

	store, err := state.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(state.KeyMasterID, "abc123"))
	require.NoError(t, store.Delete(state.KeyMasterID))

	_, ok := store.Get(state.KeyMasterID)
	assert.False(t, ok)

	// Deleting an absent key is not an error
	assert.NoError(t, store.Delete(state.KeyMasterID))
}

func TestOpen_CorruptFileFails(t *testing.T) {
	path := statePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := state.Open(path)
	assert.Error(t, err, "corrupt state must not be silently discarded")
}

func TestInstallationID_StableAcrossCalls(t *testing.T) {
	store, err := state.Open(statePath(t))
	require.NoError(t, err)

	first, err := state.InstallationID(store)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := state.InstallationID(store)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolvedPathsRoundTrip(t *testing.T) {
	store, err := state.Open(statePath(t))
	require.NoError(t, err)

	want := types.ResolvedPaths{
		SettingsPath:    "/home/user/.config/Code/User/settings.json",
		KeybindingsPath: "/home/user/.config/Code/User/keybindings.json",
	}
	require.NoError(t, state.SaveResolvedPaths(store, want))

	assert.Equal(t, want, state.ResolvedPaths(store))
}
