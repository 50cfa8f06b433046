package profile

import (
	stderrors "errors"
	"io/fs"
	"sort"

	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/logging"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// Snapshot is a point-in-time read of local configuration state. The
// profile may be partial: a configuration file that could not be read
// leaves its field absent and contributes an entry to FileErrors. The
// caller decides whether a partial snapshot is acceptable for its
// operation.
type Snapshot struct {
	Profile    types.Profile
	FileErrors []error
}

// Snapshotter builds local profile snapshots.
type Snapshotter struct {
	fs      types.FS
	host    types.ExtensionHost
	exclude map[string]bool
}

// NewSnapshotter creates a snapshotter. exclude lists extension
// identifiers that are never captured (and therefore never diffed).
func NewSnapshotter(fs types.FS, host types.ExtensionHost, exclude map[string]bool) *Snapshotter {
	return &Snapshotter{
		fs:      fs,
		host:    host,
		exclude: exclude,
	}
}

// Snapshot reads the settings file, the keybindings file, and the installed
// extension list, and assembles them into a profile named name.
//
// Config file read failures are collected, not fatal. A failure listing
// extensions is fatal: without the installed set no diff or push is
// meaningful.
func (s *Snapshotter) Snapshot(name string, paths types.ResolvedPaths) (*Snapshot, error) {
	logger := logging.GetLogger("profile.snapshot")

	snap := &Snapshot{Profile: types.Profile{Name: name}}

	if data, err := s.readConfigFile(paths.SettingsPath, types.SettingsFileName); err != nil {
		logger.Warn().Err(err).Msg("Settings file unavailable, leaving field absent")
		snap.FileErrors = append(snap.FileErrors, err)
	} else {
		snap.Profile.Settings = NormalizeFileContent(data)
	}

	if data, err := s.readConfigFile(paths.KeybindingsPath, types.KeybindingsFileName); err != nil {
		logger.Warn().Err(err).Msg("Keybindings file unavailable, leaving field absent")
		snap.FileErrors = append(snap.FileErrors, err)
	} else {
		snap.Profile.Keybindings = NormalizeFileContent(data)
	}

	installed, err := s.host.ListInstalled()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to list installed extensions")
	}

	var kept []string
	for _, id := range installed {
		if s.exclude[id] {
			continue
		}
		kept = append(kept, id)
	}
	sort.Strings(kept)
	snap.Profile.Extensions = kept

	logger.Debug().
		Str("profile", name).
		Int("extensions", len(kept)).
		Bool("settings", snap.Profile.HasSettings()).
		Bool("keybindings", snap.Profile.HasKeybindings()).
		Msg("Snapshot assembled")

	return snap, nil
}

func (s *Snapshotter) readConfigFile(path, kind string) ([]byte, error) {
	if path == "" {
		return nil, errors.Newf(errors.ErrConfigFileMissing, "%s path has not been resolved", kind)
	}
	if _, err := s.fs.Stat(path); err != nil {
		// Only absence is "missing"; a file that exists but cannot be
		// statted (permissions) is unreadable.
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrConfigFileMissing, "%s does not exist at %s", kind, path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigFileUnreadable, "cannot access %s at %s", kind, path)
	}
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigFileUnreadable, "failed to read %s at %s", kind, path)
	}
	return data, nil
}
