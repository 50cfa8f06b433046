// pkg/types/types_test.go
// TEST TYPE: Unit
// DEPENDENCIES: None
// PURPOSE: Test profile and master record accessors

package types_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tmchartrand/synceverything/pkg/types"
)

func TestProfile_FileName(t *testing.T) {
	p := types.Profile{Name: "work"}
	assert.Equal(t, "work.json", p.FileName())
}

func TestProfile_Complete(t *testing.T) {
	p := types.Profile{Name: "work"}
	assert.False(t, p.Complete(), "empty snapshot is incomplete")

	p.Settings = json.RawMessage(`{"editor.fontSize": 14}`)
	assert.True(t, p.HasSettings())
	assert.False(t, p.Complete(), "missing keybindings keeps snapshot incomplete")

	p.Keybindings = json.RawMessage(`[]`)
	assert.True(t, p.Complete())
}

func TestMasterRecord_ProfileNames_SkipsRemovedEntries(t *testing.T) {
	rec := &types.MasterRecord{
		ID:          "abc123",
		Description: types.MasterDescription,
		Files: map[string]types.RecordFile{
			"work.json":    {RawURL: "https://example.com/raw/work"},
			"home.json":    {Content: `{"extensions":[]}`},
			"deleted.json": {},
			"notes.txt":    {Content: "not a profile"},
		},
	}

	names := rec.ProfileNames()
	assert.ElementsMatch(t, []string{"work", "home"}, names)
}

func TestMasterRecord_FindFile(t *testing.T) {
	rec := &types.MasterRecord{
		Files: map[string]types.RecordFile{
			"work.json": {RawURL: "https://example.com/raw/work"},
		},
	}

	f, ok := rec.FindFile("work")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/raw/work", f.RawURL)

	_, ok = rec.FindFile("Work")
	assert.False(t, ok, "lookup is case-sensitive")
}

func TestExtensionDiff_EmptyAndTotal(t *testing.T) {
	var d types.ExtensionDiff
	assert.True(t, d.Empty())
	assert.Equal(t, 0, d.Total())

	d = types.ExtensionDiff{ToInstall: []string{"a"}, ToRemove: []string{"b", "c"}}
	assert.False(t, d.Empty())
	assert.Equal(t, 3, d.Total())
}

func TestBatchState_String(t *testing.T) {
	assert.Equal(t, "idle", types.BatchIdle.String())
	assert.Equal(t, "awaiting-confirmation", types.BatchAwaitingConfirmation.String())
	assert.Equal(t, "completed", types.BatchCompleted.String())
}

func TestResolvedPaths_Complete(t *testing.T) {
	assert.False(t, types.ResolvedPaths{SettingsPath: "/a"}.Complete())
	assert.True(t, types.ResolvedPaths{SettingsPath: "/a", KeybindingsPath: "/b"}.Complete())
}
