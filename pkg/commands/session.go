// Package commands wires user commands to the synchronization core. Each
// subpackage implements one command against the Session's collaborators;
// this package only assembles them.
package commands

import (
	"github.com/tmchartrand/synceverything/pkg/config"
	"github.com/tmchartrand/synceverything/pkg/extensions"
	"github.com/tmchartrand/synceverything/pkg/filesystem"
	"github.com/tmchartrand/synceverything/pkg/gist"
	"github.com/tmchartrand/synceverything/pkg/reconcile"
	"github.com/tmchartrand/synceverything/pkg/state"
	"github.com/tmchartrand/synceverything/pkg/types"
	"github.com/tmchartrand/synceverything/pkg/ui"
)

// Session bundles the collaborators every command operates on.
type Session struct {
	Config    *config.Config
	State     types.StateStore
	FS        types.FS
	Host      types.ExtensionHost
	Store     gist.ProfileStore
	Confirmer types.Confirmer
	Progress  types.ProgressReporter
}

// NewSession builds a production session from loaded configuration.
func NewSession(cfg *config.Config) (*Session, error) {
	store, err := state.Open(state.DefaultPath())
	if err != nil {
		return nil, err
	}

	s := &Session{
		Config:   cfg,
		State:    store,
		FS:       filesystem.NewOS(),
		Host:     extensions.NewCLIHost(cfg.Editor.Command),
		Progress: ui.NewBatchProgress(),
	}
	s.Store = gist.New(cfg.Remote.BaseURL, cfg.Remote.Collection, cfg.Remote.Token, store, nil)
	if cfg.Sync.ConfirmBeforeSync {
		s.Confirmer = ui.NewConsoleConfirmer()
	}
	return s, nil
}

// Reconciler builds the reconciler for this session.
func (s *Session) Reconciler() *reconcile.Reconciler {
	return reconcile.New(reconcile.Options{
		FS:        s.FS,
		Host:      s.Host,
		Confirmer: s.Confirmer,
		Progress:  s.Progress,
		Exclude:   s.Config.ExcludedSet(),
	})
}

// ResolvedPaths returns the cached configuration file paths.
func (s *Session) ResolvedPaths() types.ResolvedPaths {
	return state.ResolvedPaths(s.State)
}
