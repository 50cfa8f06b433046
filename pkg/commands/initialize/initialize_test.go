// pkg/commands/initialize/initialize_test.go
// TEST TYPE: Integration
// DEPENDENCIES: Fake snippet store, in-memory filesystem, scripted prompts
// PURPOSE: Test path resolution, state caching, and master record detection

package initialize_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmchartrand/synceverything/pkg/commands"
	"github.com/tmchartrand/synceverything/pkg/commands/initialize"
	"github.com/tmchartrand/synceverything/pkg/config"
	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/gist"
	"github.com/tmchartrand/synceverything/pkg/paths"
	"github.com/tmchartrand/synceverything/pkg/state"
	"github.com/tmchartrand/synceverything/pkg/testutil"
	"github.com/tmchartrand/synceverything/pkg/types"
)

const configDir = "/u/Code/User"

func newSession(t *testing.T) (*commands.Session, *testutil.GistServer, *testutil.MemoryFS) {
	t.Helper()
	srv := testutil.NewGistServer()
	t.Cleanup(srv.Close)

	store := testutil.NewMemoryStateStore()
	fs := testutil.NewMemoryFS()

	s := &commands.Session{
		Config: &config.Config{
			Remote: config.RemoteConfig{BaseURL: srv.URL(), Collection: "gists"},
			Editor: config.EditorConfig{Command: "code", Identity: "Code", ConfigDir: configDir},
		},
		State: store,
		FS:    fs,
		Store: gist.New(srv.URL(), "gists", "", store, nil),
	}
	return s, srv, fs
}

func seedConfigFiles(t *testing.T, fs *testutil.MemoryFS) {
	t.Helper()
	require.NoError(t, fs.WriteFile(filepath.Join(configDir, types.SettingsFileName), []byte(`{}`), 0644))
	require.NoError(t, fs.WriteFile(filepath.Join(configDir, types.KeybindingsFileName), []byte(`[]`), 0644))
}

func TestInit_ResolvesAndCachesPaths(t *testing.T) {
	s, _, fs := newSession(t)
	seedConfigFiles(t, fs)

	result, err := initialize.Init(initialize.InitOptions{
		Session: s,
		Locator: paths.NewLocator(fs),
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, types.SettingsFileName), result.Paths.SettingsPath)
	assert.Equal(t, filepath.Join(configDir, types.KeybindingsFileName), result.Paths.KeybindingsPath)
	assert.NotEmpty(t, result.InstallationID)
	assert.Empty(t, result.MasterID)

	cached := state.ResolvedPaths(s.State)
	assert.True(t, cached.Complete())
}

func TestInit_InstallationIDIsStable(t *testing.T) {
	s, _, fs := newSession(t)
	seedConfigFiles(t, fs)
	opts := initialize.InitOptions{Session: s, Locator: paths.NewLocator(fs)}

	first, err := initialize.Init(opts)
	require.NoError(t, err)
	second, err := initialize.Init(opts)
	require.NoError(t, err)

	assert.Equal(t, first.InstallationID, second.InstallationID)
}

func TestInit_ReportsExistingMaster(t *testing.T) {
	s, srv, fs := newSession(t)
	seedConfigFiles(t, fs)
	srv.Seed(&types.MasterRecord{
		Description: types.MasterDescription,
		Files:       map[string]types.RecordFile{"default.json": {Content: "{}"}},
	})

	result, err := initialize.Init(initialize.InitOptions{
		Session: s,
		Locator: paths.NewLocator(fs),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.MasterID)
}

func TestInit_NonInteractiveMissingFileFails(t *testing.T) {
	s, _, fs := newSession(t)

	_, err := initialize.Init(initialize.InitOptions{
		Session: s,
		Locator: paths.NewLocator(fs),
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigFileMissing))
}

func TestInit_InteractiveFallbackPrompts(t *testing.T) {
	s, _, fs := newSession(t)
	// Files live outside every default directory.
	require.NoError(t, fs.WriteFile("/elsewhere/settings.json", []byte(`{}`), 0644))
	require.NoError(t, fs.WriteFile("/elsewhere/keybindings.json", []byte(`[]`), 0644))

	in := strings.NewReader("/elsewhere/settings.json\n/elsewhere/keybindings.json\n")
	result, err := initialize.Init(initialize.InitOptions{
		Session:     s,
		Locator:     paths.NewLocatorWithIO(fs, in, &bytes.Buffer{}),
		Interactive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/settings.json", result.Paths.SettingsPath)
	assert.Equal(t, "/elsewhere/keybindings.json", result.Paths.KeybindingsPath)
}

func TestInit_InteractiveDeclinePropagatesCancellation(t *testing.T) {
	s, _, fs := newSession(t)

	result, err := initialize.Init(initialize.InitOptions{
		Session:     s,
		Locator:     paths.NewLocatorWithIO(fs, strings.NewReader("\n"), &bytes.Buffer{}),
		Interactive: true,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsCancellation(err))
}
