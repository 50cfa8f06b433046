package push

import (
	"time"

	"github.com/tmchartrand/synceverything/pkg/commands"
	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/gist"
	"github.com/tmchartrand/synceverything/pkg/logging"
	"github.com/tmchartrand/synceverything/pkg/profile"
	"github.com/tmchartrand/synceverything/pkg/state"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// PushOptions holds options for the push command
type PushOptions struct {
	Session     *commands.Session
	ProfileName string
}

// PushResult describes a completed push.
type PushResult struct {
	ProfileName string
	MasterID    string
	Created     bool
	Extensions  int
}

// Push snapshots the local configuration and uploads it as the named
// profile, creating the master record on first use. Pushing requires a
// complete snapshot: both configuration files must be readable.
func Push(opts PushOptions) (*PushResult, error) {
	logger := logging.GetLogger("commands.push")
	s := opts.Session

	name := opts.ProfileName
	if name == "" {
		name = types.DefaultProfileName
	}
	if err := profile.ValidateName(name); err != nil {
		return nil, err
	}

	paths := s.ResolvedPaths()
	if !paths.Complete() {
		return nil, errors.New(errors.ErrPrecondition,
			"configuration file paths are not resolved; run init first")
	}

	snapshotter := profile.NewSnapshotter(s.FS, s.Host, s.Config.ExcludedSet())
	snap, err := snapshotter.Snapshot(name, paths)
	if err != nil {
		return nil, err
	}
	if !snap.Profile.Complete() {
		// Creation requires both files; surface the first read failure
		return nil, errors.Wrap(snap.FileErrors[0], errors.ErrPrecondition,
			"cannot push a partial profile")
	}

	master, err := gist.FindOrNil(s.Store)
	if err != nil {
		return nil, err
	}

	result := &PushResult{
		ProfileName: name,
		Extensions:  len(snap.Profile.Extensions),
	}

	if master == nil {
		created, err := s.Store.CreateMaster(snap.Profile)
		if err != nil {
			return nil, err
		}
		result.MasterID = created.ID
		result.Created = true
	} else {
		if err := profile.CheckNameCollision(master, name); err != nil {
			return nil, err
		}
		updated, err := s.Store.UpsertProfile(snap.Profile)
		if err != nil {
			return nil, err
		}
		result.MasterID = updated.ID
	}

	if err := s.State.Set(state.KeyLastSync, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}

	logger.Info().
		Str("profile", name).
		Str("master", result.MasterID).
		Bool("created", result.Created).
		Int("extensions", result.Extensions).
		Msg("Profile pushed")

	return result, nil
}
