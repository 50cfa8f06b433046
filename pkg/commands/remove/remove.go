package remove

import (
	"github.com/tmchartrand/synceverything/pkg/commands"
	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/logging"
	"github.com/tmchartrand/synceverything/pkg/profile"
)

// RemoveOptions holds options for the remove command
type RemoveOptions struct {
	Session     *commands.Session
	ProfileName string
}

// Remove deletes the named profile from the master record. Other profile
// entries are untouched; the master record itself is never deleted.
func Remove(opts RemoveOptions) error {
	s := opts.Session

	if err := profile.ValidateName(opts.ProfileName); err != nil {
		return err
	}

	master, err := s.Store.FindMaster()
	if err != nil {
		return err
	}
	if _, ok := master.FindFile(opts.ProfileName); !ok {
		return errors.Newf(errors.ErrNotFound,
			"profile %s does not exist in the master record", opts.ProfileName)
	}

	if err := s.Store.DeleteProfile(opts.ProfileName); err != nil {
		return err
	}

	logger := logging.GetLogger("commands.remove")
	logger.Info().
		Str("profile", opts.ProfileName).
		Msg("Profile removed")
	return nil
}
