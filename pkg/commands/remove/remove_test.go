// pkg/commands/remove/remove_test.go
// TEST TYPE: Integration
// DEPENDENCIES: Fake snippet store
// PURPOSE: Test profile deletion from the master record

package remove_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmchartrand/synceverything/pkg/commands"
	"github.com/tmchartrand/synceverything/pkg/commands/remove"
	"github.com/tmchartrand/synceverything/pkg/config"
	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/gist"
	"github.com/tmchartrand/synceverything/pkg/testutil"
	"github.com/tmchartrand/synceverything/pkg/types"
)

func newSession(t *testing.T) (*commands.Session, *testutil.GistServer) {
	t.Helper()
	srv := testutil.NewGistServer()
	t.Cleanup(srv.Close)

	store := testutil.NewMemoryStateStore()
	s := &commands.Session{
		Config: &config.Config{
			Remote: config.RemoteConfig{BaseURL: srv.URL(), Collection: "gists"},
		},
		State: store,
		Store: gist.New(srv.URL(), "gists", "", store, nil),
	}
	return s, srv
}

func seedMaster(t *testing.T, srv *testutil.GistServer, names ...string) *types.MasterRecord {
	t.Helper()
	files := make(map[string]types.RecordFile, len(names))
	for _, n := range names {
		files[n+".json"] = types.RecordFile{Content: "{}"}
	}
	rec := &types.MasterRecord{Description: types.MasterDescription, Files: files}
	srv.Seed(rec)
	return rec
}

func TestRemove_DeletesOnlyTheNamedProfile(t *testing.T) {
	s, srv := newSession(t)
	rec := seedMaster(t, srv, "default", "laptop")

	require.NoError(t, remove.Remove(remove.RemoveOptions{Session: s, ProfileName: "laptop"}))

	stored := srv.Record(rec.ID)
	require.NotNil(t, stored)
	assert.NotContains(t, stored.Files, "laptop.json")
	assert.Contains(t, stored.Files, "default.json")
}

func TestRemove_UnknownProfile(t *testing.T) {
	s, srv := newSession(t)
	seedMaster(t, srv, "default")

	err := remove.Remove(remove.RemoveOptions{Session: s, ProfileName: "laptop"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestRemove_InvalidName(t *testing.T) {
	s, _ := newSession(t)

	err := remove.Remove(remove.RemoveOptions{Session: s, ProfileName: "no/slashes"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
