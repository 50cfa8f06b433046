package types

// ExtensionDiff is the result of diffing a remote extension set against the
// locally installed set. ToInstall and ToRemove are disjoint by construction.
type ExtensionDiff struct {
	ToInstall []string
	ToRemove  []string
}

// Empty reports whether the local and remote sets already match.
func (d ExtensionDiff) Empty() bool {
	return len(d.ToInstall) == 0 && len(d.ToRemove) == 0
}

// Total is the combined batch size across removals and installs.
func (d ExtensionDiff) Total() int {
	return len(d.ToInstall) + len(d.ToRemove)
}

// BatchState tracks a reconciliation batch through its lifecycle.
type BatchState int

const (
	BatchIdle BatchState = iota
	BatchDiffing
	BatchAwaitingConfirmation
	BatchExecuting
	BatchCompleted
)

// String returns the state name for logs and tests.
func (s BatchState) String() string {
	switch s {
	case BatchIdle:
		return "idle"
	case BatchDiffing:
		return "diffing"
	case BatchAwaitingConfirmation:
		return "awaiting-confirmation"
	case BatchExecuting:
		return "executing"
	case BatchCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ItemAction identifies the mutation attempted for one batch item.
type ItemAction string

const (
	ActionInstall   ItemAction = "install"
	ActionUninstall ItemAction = "uninstall"
)

// ItemResult records the outcome of one install or uninstall call.
// A nil Err means the mutation succeeded.
type ItemResult struct {
	ID     string
	Action ItemAction
	Err    error
}

// BatchResult summarizes one reconciliation batch. A batch always reaches
// BatchCompleted once execution starts; batch-level success means
// "attempted", not "all succeeded".
type BatchResult struct {
	Diff      ExtensionDiff
	Items     []ItemResult
	Succeeded int
	Failed    int

	// ReloadRequired is set when at least one mutation succeeded; the
	// caller is responsible for offering a reload action.
	ReloadRequired bool
}

// ApplyResult collects the independent outcomes of applying a profile.
// A failure writing one file does not block the remaining steps, so all
// three fields may be populated at once.
type ApplyResult struct {
	SettingsErr    error
	KeybindingsErr error
	Batch          *BatchResult
}

// Failed reports whether any step of the apply reported an error.
func (r *ApplyResult) Failed() bool {
	if r.SettingsErr != nil || r.KeybindingsErr != nil {
		return true
	}
	return r.Batch != nil && r.Batch.Failed > 0
}
