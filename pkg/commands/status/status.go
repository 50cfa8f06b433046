package status

import (
	"github.com/tmchartrand/synceverything/pkg/commands"
	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/logging"
	"github.com/tmchartrand/synceverything/pkg/profile"
	"github.com/tmchartrand/synceverything/pkg/state"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// StatusOptions holds options for the status command
type StatusOptions struct {
	Session     *commands.Session
	ProfileName string
}

// StatusResult compares local state against the named remote profile
// without mutating anything.
type StatusResult struct {
	ProfileName string
	LastSync    string

	// Extensions is the pending reconciliation diff.
	Extensions types.ExtensionDiff

	// SettingsLocal/SettingsRemote and the keybindings pair hold the
	// rendered file texts for display diffing. Empty local text means
	// the snapshot could not read that file.
	SettingsLocal     string
	SettingsRemote    string
	KeybindingsLocal  string
	KeybindingsRemote string

	// FileErrors lists local config files the snapshot could not read.
	// Status tolerates a partial snapshot; push does not.
	FileErrors []error
}

// Status reports the differences between the local configuration and the
// named remote profile.
func Status(opts StatusOptions) (*StatusResult, error) {
	logger := logging.GetLogger("commands.status")
	s := opts.Session

	name := opts.ProfileName
	if name == "" {
		name = types.DefaultProfileName
	}

	master, err := s.Store.FindMaster()
	if err != nil {
		return nil, err
	}
	file, ok := master.FindFile(name)
	if !ok || (file.Content == "" && file.RawURL == "") {
		return nil, errors.Newf(errors.ErrNotFound,
			"profile %s does not exist in the master record", name)
	}
	remote, err := s.Store.FetchProfile(name, file)
	if err != nil {
		return nil, err
	}

	snapshotter := profile.NewSnapshotter(s.FS, s.Host, s.Config.ExcludedSet())
	snap, err := snapshotter.Snapshot(name, s.ResolvedPaths())
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		ProfileName: name,
		Extensions:  s.Reconciler().Diff(snap.Profile.Extensions, remote.Extensions),
		FileErrors:  snap.FileErrors,
	}
	if last, ok := s.State.Get(state.KeyLastSync); ok {
		result.LastSync = last
	}

	result.SettingsLocal = renderOrEmpty(snap.Profile.Settings)
	result.SettingsRemote = renderOrEmpty(remote.Settings)
	result.KeybindingsLocal = renderOrEmpty(snap.Profile.Keybindings)
	result.KeybindingsRemote = renderOrEmpty(remote.Keybindings)

	logger.Debug().
		Str("profile", name).
		Int("to_install", len(result.Extensions.ToInstall)).
		Int("to_remove", len(result.Extensions.ToRemove)).
		Msg("Status computed")

	return result, nil
}

// InSync reports whether nothing would change on pull.
func (r *StatusResult) InSync() bool {
	return r.Extensions.Empty() &&
		r.SettingsLocal == r.SettingsRemote &&
		r.KeybindingsLocal == r.KeybindingsRemote
}

func renderOrEmpty(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	text, err := profile.RenderFileContent(raw)
	if err != nil {
		return ""
	}
	return text
}
