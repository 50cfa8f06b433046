// pkg/ui/ui_test.go
// TEST TYPE: Unit
// DEPENDENCIES: Scripted prompt streams
// PURPOSE: Test the confirmation dialog, diff rendering, and plain progress

package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmchartrand/synceverything/pkg/types"
	"github.com/tmchartrand/synceverything/pkg/ui"
)

var sampleDiff = types.ExtensionDiff{
	ToInstall: []string{"golang.go"},
	ToRemove:  []string{"old.ext"},
}

func TestConfirmReconcile_Accepts(t *testing.T) {
	for _, answer := range []string{"y\n", "Y\n", "yes\n"} {
		c := ui.NewConsoleConfirmerWithIO(strings.NewReader(answer), &bytes.Buffer{})

		ok, err := c.ConfirmReconcile(sampleDiff)

		require.NoError(t, err)
		assert.True(t, ok, answer)
	}
}

func TestConfirmReconcile_Declines(t *testing.T) {
	for _, answer := range []string{"n\n", "\n", "whatever\n"} {
		c := ui.NewConsoleConfirmerWithIO(strings.NewReader(answer), &bytes.Buffer{})

		ok, err := c.ConfirmReconcile(sampleDiff)

		require.NoError(t, err)
		assert.False(t, ok, answer)
	}
}

func TestConfirmReconcile_ClosedInputDeclines(t *testing.T) {
	c := ui.NewConsoleConfirmerWithIO(strings.NewReader(""), &bytes.Buffer{})

	ok, err := c.ConfirmReconcile(sampleDiff)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmReconcile_ListThenAccept(t *testing.T) {
	var out bytes.Buffer
	c := ui.NewConsoleConfirmerWithIO(strings.NewReader("l\ny\n"), &out)

	ok, err := c.ConfirmReconcile(sampleDiff)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "golang.go")
	assert.Contains(t, out.String(), "old.ext")
}

func TestRenderExtensionDiff_ItemizesBothDirections(t *testing.T) {
	text := ui.RenderExtensionDiff(sampleDiff)

	assert.Contains(t, text, "To install:")
	assert.Contains(t, text, "golang.go")
	assert.Contains(t, text, "To remove:")
	assert.Contains(t, text, "old.ext")
}

func TestRenderExtensionDiff_Empty(t *testing.T) {
	text := ui.RenderExtensionDiff(types.ExtensionDiff{})

	assert.Contains(t, text, "already in sync")
}

func TestRenderBatchResult_MixedOutcomes(t *testing.T) {
	result := &types.BatchResult{
		Diff: sampleDiff,
		Items: []types.ItemResult{
			{ID: "old.ext", Action: types.ActionUninstall},
			{ID: "golang.go", Action: types.ActionInstall, Err: assert.AnError},
		},
		Succeeded:      1,
		Failed:         1,
		ReloadRequired: true,
	}

	text := ui.RenderBatchResult(result)

	assert.Contains(t, text, "removed old.ext")
	assert.Contains(t, text, "golang.go")
	assert.Contains(t, text, "1 succeeded, 1 failed")
	assert.Contains(t, text, "Reload the editor")
}

func TestRenderTextDiff_EqualInputs(t *testing.T) {
	assert.Contains(t, ui.RenderTextDiff("same", "same"), "No changes")
}

func TestRenderTextDiff_ShowsChange(t *testing.T) {
	text := ui.RenderTextDiff(`{"fontSize": 12}`, `{"fontSize": 14}`)

	assert.NotContains(t, text, "No changes")
	assert.Contains(t, text, "fontSize")
}

func TestPlainProgress_PrintsEachItem(t *testing.T) {
	var out bytes.Buffer
	p := ui.NewPlainProgress(&out)

	p.Start(2)
	p.Advance(types.ItemResult{ID: "old.ext", Action: types.ActionUninstall})
	p.Advance(types.ItemResult{ID: "golang.go", Action: types.ActionInstall, Err: assert.AnError})
	p.Finish()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[1/2]")
	assert.Contains(t, lines[0], "ok")
	assert.Contains(t, lines[1], "[2/2]")
	assert.Contains(t, lines[1], "failed")
}
