// pkg/gist/store_test.go
// TEST TYPE: Integration
// DEPENDENCIES: httptest-backed fake snippet store
// PURPOSE: Test master record discovery, caching, and profile CRUD over the wire

package gist_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/gist"
	"github.com/tmchartrand/synceverything/pkg/profile"
	"github.com/tmchartrand/synceverything/pkg/state"
	"github.com/tmchartrand/synceverything/pkg/testutil"
	"github.com/tmchartrand/synceverything/pkg/types"
)

func newStore(t *testing.T) (gist.ProfileStore, *testutil.GistServer, *testutil.MemoryStateStore) {
	t.Helper()
	srv := testutil.NewGistServer()
	t.Cleanup(srv.Close)
	cache := testutil.NewMemoryStateStore()
	return gist.New(srv.URL(), "gists", "", cache, nil), srv, cache
}

func sampleProfile(name string) types.Profile {
	return types.Profile{
		Name:       name,
		Settings:   []byte(`{"editor.fontSize": 14}`),
		Extensions: []string{"golang.go"},
	}
}

func seedMaster(t *testing.T, srv *testutil.GistServer, profiles ...string) *types.MasterRecord {
	t.Helper()
	files := make(map[string]types.RecordFile, len(profiles))
	for _, name := range profiles {
		content, err := profile.Encode(sampleProfile(name))
		require.NoError(t, err)
		files[name+".json"] = types.RecordFile{Content: content}
	}
	rec := &types.MasterRecord{Description: types.MasterDescription, Files: files}
	srv.Seed(rec)
	return rec
}

func TestFindMaster_EmptyCollection(t *testing.T) {
	ps, _, _ := newStore(t)

	_, err := ps.FindMaster()

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestFindMaster_IgnoresForeignRecords(t *testing.T) {
	ps, srv, _ := newStore(t)
	srv.Seed(&types.MasterRecord{
		Description: "someone else's snippets",
		Files:       map[string]types.RecordFile{"notes.md": {Content: "hi"}},
	})

	_, err := ps.FindMaster()

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestFindMaster_ScanCachesID(t *testing.T) {
	ps, srv, cache := newStore(t)
	seeded := seedMaster(t, srv, "default")

	rec, err := ps.FindMaster()

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, rec.ID)
	id, ok := cache.Get(state.KeyMasterID)
	assert.True(t, ok)
	assert.Equal(t, seeded.ID, id)
}

func TestFindMaster_CachedIDSkipsScan(t *testing.T) {
	ps, srv, cache := newStore(t)
	seeded := seedMaster(t, srv, "default")
	require.NoError(t, cache.Set(state.KeyMasterID, seeded.ID))

	rec, err := ps.FindMaster()

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, rec.ID)
	assert.Equal(t, []string{"GET /gists/" + seeded.ID}, srv.Requests)
}

func TestFindMaster_StaleCachedIDFallsBackToScan(t *testing.T) {
	ps, srv, cache := newStore(t)
	seeded := seedMaster(t, srv, "default")
	require.NoError(t, cache.Set(state.KeyMasterID, "deadbeef"))

	rec, err := ps.FindMaster()

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, rec.ID)
	assert.Equal(t, []string{"GET /gists/deadbeef", "GET /gists"}, srv.Requests)

	// The cache now points at the live record.
	id, _ := cache.Get(state.KeyMasterID)
	assert.Equal(t, seeded.ID, id)
}

func TestFindMaster_TransportErrorsPropagate(t *testing.T) {
	ps, srv, cache := newStore(t)
	require.NoError(t, cache.Set(state.KeyMasterID, "gist0001"))
	srv.ForceStatus = 429

	_, err := ps.FindMaster()

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRemoteRateLimited))
}

func TestFindMaster_RejectedToken(t *testing.T) {
	srv := testutil.NewGistServer()
	t.Cleanup(srv.Close)
	srv.RequireToken = "secret"
	ps := gist.New(srv.URL(), "gists", "wrong", testutil.NewMemoryStateStore(), nil)

	_, err := ps.FindMaster()

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRemoteUnauthorized))
}

func TestFindOrNil_MapsNotFoundToNil(t *testing.T) {
	ps, _, _ := newStore(t)

	rec, err := gist.FindOrNil(ps)

	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCreateMaster_CachesIDAndStoresProfile(t *testing.T) {
	ps, srv, cache := newStore(t)

	rec, err := ps.CreateMaster(sampleProfile("default"))

	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	assert.False(t, rec.Public)
	assert.Equal(t, types.MasterDescription, rec.Description)

	id, _ := cache.Get(state.KeyMasterID)
	assert.Equal(t, rec.ID, id)

	stored := srv.Record(rec.ID)
	require.NotNil(t, stored)
	assert.Contains(t, stored.Files, "default.json")
}

func TestUpsertProfile_RequiresEstablishedID(t *testing.T) {
	ps, _, _ := newStore(t)

	_, err := ps.UpsertProfile(sampleProfile("laptop"))

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPrecondition))
}

func TestUpsertProfile_AddsFileToMaster(t *testing.T) {
	ps, srv, _ := newStore(t)
	created, err := ps.CreateMaster(sampleProfile("default"))
	require.NoError(t, err)

	rec, err := ps.UpsertProfile(sampleProfile("laptop"))

	require.NoError(t, err)
	assert.Equal(t, created.ID, rec.ID)
	stored := srv.Record(created.ID)
	assert.Contains(t, stored.Files, "default.json")
	assert.Contains(t, stored.Files, "laptop.json")
}

func TestDeleteProfile_LeavesOtherEntries(t *testing.T) {
	ps, srv, _ := newStore(t)
	created, err := ps.CreateMaster(sampleProfile("default"))
	require.NoError(t, err)
	_, err = ps.UpsertProfile(sampleProfile("laptop"))
	require.NoError(t, err)

	require.NoError(t, ps.DeleteProfile("default"))

	stored := srv.Record(created.ID)
	assert.NotContains(t, stored.Files, "default.json")
	assert.Contains(t, stored.Files, "laptop.json")
}

func TestDeleteProfile_SendsEmptyContentOnWire(t *testing.T) {
	ps, srv, _ := newStore(t)
	_, err := ps.CreateMaster(sampleProfile("default"))
	require.NoError(t, err)

	require.NoError(t, ps.DeleteProfile("default"))

	// The removal signal is an explicit empty content string; if the key
	// were omitted the backend would leave the entry untouched.
	require.Len(t, srv.PatchBodies, 1)
	var body struct {
		Files map[string]map[string]any `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(srv.PatchBodies[0]), &body))
	entry, ok := body.Files["default.json"]
	require.True(t, ok)
	content, ok := entry["content"]
	require.True(t, ok, "content key must be present in the patch body")
	assert.Equal(t, "", content)
}

func TestFetchProfile_InlineContent(t *testing.T) {
	ps, _, _ := newStore(t)
	want := sampleProfile("default")
	content, err := profile.Encode(want)
	require.NoError(t, err)

	got, err := ps.FetchProfile("default", types.RecordFile{Content: content})

	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Extensions, got.Extensions)
	assert.JSONEq(t, string(want.Settings), string(got.Settings))
}

func TestFetchProfile_FollowsRawURL(t *testing.T) {
	ps, srv, _ := newStore(t)
	seedMaster(t, srv, "default")

	// The list endpoint strips inline content, leaving only raw URLs.
	master, err := ps.FindMaster()
	require.NoError(t, err)
	file, ok := master.FindFile("default")
	require.True(t, ok)
	require.Empty(t, file.Content)
	require.NotEmpty(t, file.RawURL)

	got, err := ps.FetchProfile("default", file)

	require.NoError(t, err)
	assert.Equal(t, []string{"golang.go"}, got.Extensions)
}

func TestFetchProfile_NoContentOrURL(t *testing.T) {
	ps, _, _ := newStore(t)

	_, err := ps.FetchProfile("default", types.RecordFile{})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
