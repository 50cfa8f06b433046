package pull

import (
	"time"

	"github.com/tmchartrand/synceverything/pkg/commands"
	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/logging"
	"github.com/tmchartrand/synceverything/pkg/state"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// PullOptions holds options for the pull command
type PullOptions struct {
	Session     *commands.Session
	ProfileName string

	// DryRun computes the reconciliation plan without mutating anything.
	DryRun bool
}

// PullResult describes a completed (or planned) pull.
type PullResult struct {
	ProfileName string
	Profile     types.Profile

	// Planned is the extension diff; set for dry runs.
	Planned types.ExtensionDiff

	// Apply holds the outcomes of a real pull; nil for dry runs.
	Apply *types.ApplyResult
}

// Pull fetches the named profile from the master record and applies it to
// local state. The apply collects per-step failures instead of rolling
// back; a user decline on the confirmation prompt aborts before any
// mutation.
func Pull(opts PullOptions) (*PullResult, error) {
	logger := logging.GetLogger("commands.pull")
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

	result := &PullResult{ProfileName: name, Profile: remote}
	reconciler := s.Reconciler()

	if opts.DryRun {
		planned, err := reconciler.Plan(remote.Extensions)
		if err != nil {
			return nil, err
		}
		result.Planned = planned
		logger.Info().
			Str("profile", name).
			Int("to_install", len(planned.ToInstall)).
			Int("to_remove", len(planned.ToRemove)).
			Msg("Dry run complete")
		return result, nil
	}

	paths := s.ResolvedPaths()
	if !paths.Complete() {
		return nil, errors.New(errors.ErrPrecondition,
			"configuration file paths are not resolved; run init first")
	}

	applied, err := reconciler.Apply(remote, paths)
	if err != nil {
		return nil, err
	}
	result.Apply = applied

	if err := s.State.Set(state.KeyLastSync, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}

	logger.Info().
		Str("profile", name).
		Bool("failures", applied.Failed()).
		Msg("Profile applied")

	return result, nil
}
