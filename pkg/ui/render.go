package ui

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// RenderExtensionDiff renders the itemized install/remove lists.
func RenderExtensionDiff(diff types.ExtensionDiff) string {
	var b strings.Builder
	if len(diff.ToInstall) > 0 {
		b.WriteString(titleStyle.Render("To install:") + "\n")
		for _, id := range diff.ToInstall {
			fmt.Fprintf(&b, "  %s%s\n", installStyle.String(), id)
		}
	}
	if len(diff.ToRemove) > 0 {
		b.WriteString(titleStyle.Render("To remove:") + "\n")
		for _, id := range diff.ToRemove {
			fmt.Fprintf(&b, "  %s%s\n", removeStyle.String(), id)
		}
	}
	if diff.Empty() {
		b.WriteString(mutedStyle.Render("Extensions already in sync") + "\n")
	}
	return b.String()
}

// RenderBatchResult summarizes an executed batch for the user.
func RenderBatchResult(result *types.BatchResult) string {
	var b strings.Builder

	if result.Diff.Empty() {
		return mutedStyle.Render("Extensions already in sync") + "\n"
	}

	for _, item := range result.Items {
		verb := "installed"
		if item.Action == types.ActionUninstall {
			verb = "removed"
		}
		if item.Err != nil {
			fmt.Fprintf(&b, "  %s %s: %v\n", errorStyle.Render("✗"), item.ID, item.Err)
		} else {
			fmt.Fprintf(&b, "  %s %s %s\n", successStyle.Render("✓"), verb, item.ID)
		}
	}

	fmt.Fprintf(&b, "%d succeeded, %d failed\n", result.Succeeded, result.Failed)
	if result.ReloadRequired {
		b.WriteString(warningStyle.Render("Reload the editor to finish applying extension changes") + "\n")
	}
	return b.String()
}

// RenderTextDiff renders a line-oriented diff between the local and remote
// text of a configuration file.
func RenderTextDiff(local, remote string) string {
	if local == remote {
		return mutedStyle.Render("No changes") + "\n"
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(local, remote, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString(successStyle.Render(d.Text))
		case diffmatchpatch.DiffDelete:
			b.WriteString(deletedStyle.Render(d.Text))
		default:
			b.WriteString(mutedStyle.Render(elide(d.Text)))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// elide keeps context around changes readable by trimming long
// unchanged stretches to their first and last lines.
func elide(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= 6 {
		return text
	}
	kept := append([]string{}, lines[:2]...)
	kept = append(kept, fmt.Sprintf("… %d unchanged lines …", len(lines)-4))
	kept = append(kept, lines[len(lines)-2:]...)
	return strings.Join(kept, "\n")
}
