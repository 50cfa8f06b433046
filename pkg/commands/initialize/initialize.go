package initialize

import (
	"github.com/tmchartrand/synceverything/pkg/commands"
	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/gist"
	"github.com/tmchartrand/synceverything/pkg/logging"
	"github.com/tmchartrand/synceverything/pkg/state"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// InitOptions holds options for the init command
type InitOptions struct {
	Session *commands.Session
	Locator types.ConfigLocator

	// Interactive enables the manual-pick fallback when a file is not in
	// any default location.
	Interactive bool
}

// InitResult describes what init resolved.
type InitResult struct {
	Paths          types.ResolvedPaths
	InstallationID string

	// MasterID is empty when no master record exists yet; it is created
	// lazily on the first push.
	MasterID string
}

// Init resolves the local configuration file paths, caches them in the
// state store, and reports whether a master record already exists.
func Init(opts InitOptions) (*InitResult, error) {
	logger := logging.GetLogger("commands.init")
	s := opts.Session

	settingsPath, err := resolveFile(opts, types.SettingsFileName)
	if err != nil {
		return nil, err
	}
	keybindingsPath, err := resolveFile(opts, types.KeybindingsFileName)
	if err != nil {
		return nil, err
	}

	paths := types.ResolvedPaths{
		SettingsPath:    settingsPath,
		KeybindingsPath: keybindingsPath,
	}
	if err := state.SaveResolvedPaths(s.State, paths); err != nil {
		return nil, err
	}

	installID, err := state.InstallationID(s.State)
	if err != nil {
		return nil, err
	}

	result := &InitResult{
		Paths:          paths,
		InstallationID: installID,
	}

	master, err := gist.FindOrNil(s.Store)
	if err != nil {
		return nil, err
	}
	if master != nil {
		result.MasterID = master.ID
	}

	logger.Info().
		Str("settings", paths.SettingsPath).
		Str("keybindings", paths.KeybindingsPath).
		Bool("master_exists", master != nil).
		Msg("Initialization complete")

	return result, nil
}

// resolveFile locates one configuration file, falling back to a manual
// pick when allowed.
func resolveFile(opts InitOptions, fileName string) (string, error) {
	cfg := opts.Session.Config

	path, err := opts.Locator.Resolve(cfg.Editor.Identity, fileName, cfg.Editor.ConfigDir)
	if err == nil {
		return path, nil
	}
	if !errors.IsErrorCode(err, errors.ErrNotFound) {
		return "", err
	}
	if !opts.Interactive {
		return "", errors.Wrapf(err, errors.ErrConfigFileMissing,
			"could not locate %s; set editor.config_dir or run init interactively", fileName)
	}
	return opts.Locator.ManualPick(fileName)
}
