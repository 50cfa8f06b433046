// Package reconcile implements the synchronization core: diffing the
// local extension set against a remote profile and applying a remote
// profile back to local state with safe sequencing.
package reconcile

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/logging"
	"github.com/tmchartrand/synceverything/pkg/profile"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// Options configures a Reconciler. Confirmer and Progress may be nil:
// a nil Confirmer skips confirmation (confirm_before_sync = false), a nil
// Progress discards progress events.
type Options struct {
	FS        types.FS
	Host      types.ExtensionHost
	Confirmer types.Confirmer
	Progress  types.ProgressReporter

	// Exclude lists extension identifiers that are never diffed or
	// mutated, in either direction.
	Exclude map[string]bool
}

// Reconciler computes and applies the difference between local and remote
// configuration state. All operations run on the calling goroutine; install
// and uninstall calls execute strictly sequentially so that progress
// reporting and the removals-before-installs ordering stay deterministic.
type Reconciler struct {
	fs        types.FS
	host      types.ExtensionHost
	confirmer types.Confirmer
	progress  types.ProgressReporter
	exclude   map[string]bool
	logger    zerolog.Logger

	batchState types.BatchState
}

// New creates a Reconciler.
func New(opts Options) *Reconciler {
	return &Reconciler{
		fs:         opts.FS,
		host:       opts.Host,
		confirmer:  opts.Confirmer,
		progress:   opts.Progress,
		exclude:    opts.Exclude,
		logger:     logging.GetLogger("reconcile"),
		batchState: types.BatchIdle,
	}
}

// BatchState returns the current reconciliation batch state.
func (r *Reconciler) BatchState() types.BatchState {
	return r.batchState
}

// Diff computes the install and removal sets between the local and remote
// extension lists. Excluded identifiers never appear in either set. The
// returned slices are sorted.
func (r *Reconciler) Diff(local, remote []string) types.ExtensionDiff {
	localSet := r.toSet(local)
	remoteSet := r.toSet(remote)

	var diff types.ExtensionDiff
	for id := range remoteSet {
		if !localSet[id] {
			diff.ToInstall = append(diff.ToInstall, id)
		}
	}
	for id := range localSet {
		if !remoteSet[id] {
			diff.ToRemove = append(diff.ToRemove, id)
		}
	}
	sort.Strings(diff.ToInstall)
	sort.Strings(diff.ToRemove)
	return diff
}

func (r *Reconciler) toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if r.exclude[id] {
			continue
		}
		set[id] = true
	}
	return set
}

// Plan lists the installed extensions and diffs them against the remote
// set. This is the Diffing phase of a batch.
func (r *Reconciler) Plan(remote []string) (types.ExtensionDiff, error) {
	r.batchState = types.BatchDiffing
	installed, err := r.host.ListInstalled()
	if err != nil {
		r.batchState = types.BatchIdle
		return types.ExtensionDiff{}, errors.Wrap(err, errors.ErrInternal, "failed to list installed extensions")
	}
	return r.Diff(installed, remote), nil
}

// confirm gates a non-empty diff on user approval. A decline resets the
// batch to idle and returns USER_CANCELLED; nothing has been mutated yet.
func (r *Reconciler) confirm(diff types.ExtensionDiff) error {
	if r.confirmer == nil || diff.Empty() {
		return nil
	}

	r.batchState = types.BatchAwaitingConfirmation
	ok, err := r.confirmer.ConfirmReconcile(diff)
	if err != nil {
		r.batchState = types.BatchIdle
		return err
	}
	if !ok {
		r.batchState = types.BatchIdle
		return errors.New(errors.ErrUserCancelled, "extension reconciliation declined")
	}
	return nil
}

// Execute runs a reconciliation batch: every removal strictly before any
// install, each call independent, failures logged and skipped. The batch
// always reaches Completed; batch-level success means attempted.
func (r *Reconciler) Execute(diff types.ExtensionDiff) *types.BatchResult {
	result := &types.BatchResult{Diff: diff}

	if diff.Empty() {
		r.logger.Info().Msg("Extensions already in sync")
		r.batchState = types.BatchCompleted
		return result
	}

	r.batchState = types.BatchExecuting
	if r.progress != nil {
		r.progress.Start(diff.Total())
	}

	// Removals run first: replacing an extension with a differently
	// identified equivalent must free the old one's resources before the
	// new one claims them.
	for _, id := range diff.ToRemove {
		item := types.ItemResult{ID: id, Action: types.ActionUninstall}
		if err := r.host.Uninstall(id); err != nil {
			item.Err = errors.Wrapf(err, errors.ErrExtensionUninstall, "failed to uninstall %s", id)
			r.logger.Warn().Err(err).Str("extension", id).Msg("Uninstall failed, continuing batch")
			result.Failed++
		} else {
			result.Succeeded++
		}
		result.Items = append(result.Items, item)
		if r.progress != nil {
			r.progress.Advance(item)
		}
	}

	for _, id := range diff.ToInstall {
		item := types.ItemResult{ID: id, Action: types.ActionInstall}
		if err := r.host.Install(id); err != nil {
			item.Err = errors.Wrapf(err, errors.ErrExtensionInstall, "failed to install %s", id)
			r.logger.Warn().Err(err).Str("extension", id).Msg("Install failed, continuing batch")
			result.Failed++
		} else {
			result.Succeeded++
		}
		result.Items = append(result.Items, item)
		if r.progress != nil {
			r.progress.Advance(item)
		}
	}

	if r.progress != nil {
		r.progress.Finish()
	}

	result.ReloadRequired = result.Succeeded > 0
	r.batchState = types.BatchCompleted

	r.logger.Info().
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Bool("reload_required", result.ReloadRequired).
		Msg("Reconciliation batch completed")

	return result
}

// ReconcileExtensions runs a full batch against the remote extension set:
// diff, optional confirmation, then execution.
func (r *Reconciler) ReconcileExtensions(remote []string) (*types.BatchResult, error) {
	diff, err := r.Plan(remote)
	if err != nil {
		return nil, err
	}
	if err := r.confirm(diff); err != nil {
		return nil, err
	}
	return r.Execute(diff), nil
}

// Apply applies a remote profile to local state: settings file, keybindings
// file, then extension reconciliation. Confirmation happens before any
// mutation, so a decline leaves local state untouched. After that, the
// three steps are independent: a failed file write is recorded in the
// result and the remaining steps still run. The caller surfaces collected
// failures for manual retry; there is no rollback.
func (r *Reconciler) Apply(p types.Profile, paths types.ResolvedPaths) (*types.ApplyResult, error) {
	diff, err := r.Plan(p.Extensions)
	if err != nil {
		return nil, err
	}
	if err := r.confirm(diff); err != nil {
		return nil, err
	}

	result := &types.ApplyResult{}

	if p.HasSettings() {
		result.SettingsErr = r.writeConfigFile(paths.SettingsPath, types.SettingsFileName, p.Settings)
	}
	if p.HasKeybindings() {
		result.KeybindingsErr = r.writeConfigFile(paths.KeybindingsPath, types.KeybindingsFileName, p.Keybindings)
	}

	result.Batch = r.Execute(diff)
	return result, nil
}

func (r *Reconciler) writeConfigFile(path, kind string, raw []byte) error {
	if path == "" {
		return errors.Newf(errors.ErrConfigFileWrite, "%s path has not been resolved", kind)
	}

	content, err := profile.RenderFileContent(raw)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigFileWrite, "cannot render %s", kind)
	}

	if err := r.fs.WriteFile(path, []byte(content), 0644); err != nil {
		r.logger.Error().Err(err).Str("path", path).Msg("Config file write failed")
		return errors.Wrapf(err, errors.ErrConfigFileWrite, "failed to write %s at %s", kind, path)
	}

	r.logger.Debug().Str("path", path).Msg("Config file written")
	return nil
}
