package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Sync your editor configuration across machines"
	MsgInitShort       = "Locate local configuration files and link the remote store"
	MsgPushShort       = "Upload the local configuration as a profile"
	MsgPullShort       = "Download a profile and apply it locally"
	MsgStatusShort     = "Compare local configuration against a remote profile"
	MsgProfilesShort   = "List profiles stored in the master record"
	MsgRemoveShort     = "Delete a profile from the master record"
	MsgGenConfigShort  = "Write a starter configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice  = "DRY RUN MODE - No changes were made"
	MsgAlreadyInSync = "Extensions already in sync."
	MsgNoProfiles    = "No profiles found. Push one with 'synceverything push'."
	MsgNoMaster      = "No master record yet; it will be created on the first push."

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagConfig  = "Config file (default is the user config directory)"
	MsgFlagYes     = "Skip the confirmation prompt"
)

// Long messages
const (
	MsgRootLong = `synceverything keeps your editor settings, keybindings, and extension
list in sync across machines through a remote snippet store. Push your
local configuration as a named profile, then pull it anywhere.`

	MsgInitLong = `Init locates your editor's settings and keybindings files, remembers
where they are, and checks whether a master record already exists in
the remote store. Run it once per machine before pushing or pulling.`

	MsgPushLong = `Push snapshots the local settings, keybindings, and installed
extensions and uploads them as the named profile. The first push
creates the master record; later pushes update the profile in place.`

	MsgPullLong = `Pull downloads the named profile and applies it: configuration files
are overwritten and the installed extensions are reconciled against
the profile's list. You are asked to confirm before anything changes.`

	MsgStatusLong = `Status compares the local configuration against the named remote
profile and reports pending extension changes and file differences.
Nothing is modified.`
)
