// Package types defines the core data model for synceverything: profiles,
// the remote master record, and the interfaces the synchronization core
// consumes from its collaborators.
package types

import (
	"encoding/json"
	"strings"
)

// MasterDescription is the fixed description string stored on the remote
// master record. It is the sole discovery key when no record id is cached.
// Changing it orphans every existing installation's master record.
const MasterDescription = "synceverything"

// Well-known local configuration file names.
const (
	SettingsFileName    = "settings.json"
	KeybindingsFileName = "keybindings.json"
)

// DefaultProfileName is used when the user does not name a profile.
const DefaultProfileName = "default"

// Profile is a named, versioned snapshot of editor configuration.
//
// Settings and Keybindings hold raw JSON so that arbitrary editor
// configuration round-trips untouched. Either may also be a JSON-encoded
// string: that form carries file content that did not parse as JSON
// (comments, trailing commas) verbatim. A nil field means the snapshot
// could not read that file.
type Profile struct {
	Name        string
	Settings    json.RawMessage
	Keybindings json.RawMessage
	Extensions  []string
}

// FileName returns the profile's file name inside the master record.
func (p Profile) FileName() string {
	return p.Name + ".json"
}

// HasSettings reports whether the snapshot captured the settings file.
func (p Profile) HasSettings() bool {
	return len(p.Settings) > 0
}

// HasKeybindings reports whether the snapshot captured the keybindings file.
func (p Profile) HasKeybindings() bool {
	return len(p.Keybindings) > 0
}

// Complete reports whether both configuration files were captured.
// Profile creation requires a complete snapshot; diffing does not.
func (p Profile) Complete() bool {
	return p.HasSettings() && p.HasKeybindings()
}

// RecordFile is one file entry inside a master record. The list endpoint
// returns only RawURL; the single-record and create endpoints include
// Content. Empty content marks a removed file.
type RecordFile struct {
	Content string `json:"content,omitempty"`
	RawURL  string `json:"raw_url,omitempty"`
}

// MasterRecord is the single remote collection entry aggregating all
// profiles for one user. It is created lazily on first push and mutated
// in place afterwards; this system never deletes it.
type MasterRecord struct {
	ID          string                `json:"id"`
	Description string                `json:"description"`
	Public      bool                  `json:"public"`
	Files       map[string]RecordFile `json:"files"`
}

// ProfileNames returns the names of profiles present in the record,
// excluding entries removed by the empty-content convention.
func (m *MasterRecord) ProfileNames() []string {
	var names []string
	for name, f := range m.Files {
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		if f.Content == "" && f.RawURL == "" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".json"))
	}
	return names
}

// FindFile looks up a profile's file entry by profile name, matching the
// stored file name exactly (profile names are case-sensitive keys).
func (m *MasterRecord) FindFile(profileName string) (RecordFile, bool) {
	f, ok := m.Files[profileName+".json"]
	return f, ok
}

// ResolvedPaths holds the cached absolute locations of the two local
// configuration files. Populated once per installation via the
// ConfigLocator and persisted in the StateStore.
type ResolvedPaths struct {
	SettingsPath    string
	KeybindingsPath string
}

// Complete reports whether both paths have been resolved.
func (r ResolvedPaths) Complete() bool {
	return r.SettingsPath != "" && r.KeybindingsPath != ""
}
