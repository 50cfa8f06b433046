package types

import (
	"io/fs"
)

// FS is the filesystem interface required for synceverything operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
}

// StateStore is a simple persistent key-value store, process-wide,
// surviving restarts. It caches resolved paths and the master record id.
type StateStore interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool)

	// Set stores a value, persisting it immediately.
	Set(key, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
}

// ExtensionHost wraps the host editor's extension mechanism. Implementations
// exclude built-in extensions from ListInstalled.
type ExtensionHost interface {
	// ListInstalled returns the identifiers of installed non-builtin
	// extensions.
	ListInstalled() ([]string, error)

	// Install installs one extension by identifier.
	Install(id string) error

	// Uninstall removes one extension by identifier.
	Uninstall(id string) error
}

// ConfigLocator resolves absolute paths to local configuration files.
type ConfigLocator interface {
	// Resolve returns the absolute path to fileName for the given
	// application identity. preferredDir, when non-empty, is checked
	// before the OS default locations. Returns ErrNotFound when the
	// file exists in none of them.
	Resolve(identity, fileName, preferredDir string) (string, error)

	// ManualPick interactively asks the user for a path to the named
	// kind of file. Returns ErrUserCancelled when the user declines.
	ManualPick(kind string) (string, error)
}

// Confirmer gates extension reconciliation on explicit user approval.
type Confirmer interface {
	// ConfirmReconcile presents the pending diff and returns the user's
	// decision. False with a nil error is a decline, a normal exit path.
	ConfirmReconcile(diff ExtensionDiff) (bool, error)
}

// ProgressReporter receives incremental progress for a reconciliation
// batch as completed/total across the combined removals+installs sequence.
type ProgressReporter interface {
	// Start announces the combined batch size.
	Start(total int)

	// Advance reports one completed item, failed or not.
	Advance(item ItemResult)

	// Finish closes out the batch display.
	Finish()
}
