package list

import (
	"sort"

	"github.com/tmchartrand/synceverything/pkg/commands"
	"github.com/tmchartrand/synceverything/pkg/logging"
)

// ListOptions holds options for the profiles command
type ListOptions struct {
	Session *commands.Session
}

// ListResult names the profiles stored in the master record.
type ListResult struct {
	MasterID string
	Profiles []string
}

// List fetches the master record and returns its profile names, sorted.
func List(opts ListOptions) (*ListResult, error) {
	master, err := opts.Session.Store.FindMaster()
	if err != nil {
		return nil, err
	}

	names := master.ProfileNames()
	sort.Strings(names)

	logger := logging.GetLogger("commands.list")
	logger.Debug().
		Int("profiles", len(names)).
		Msg("Listed profiles")

	return &ListResult{MasterID: master.ID, Profiles: names}, nil
}
