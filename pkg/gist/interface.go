package gist

import (
	"github.com/tmchartrand/synceverything/pkg/types"
)

// ProfileStore owns all interaction with the remote snippet store: locating,
// creating, updating, and deleting named profile entries inside one master
// collection record.
//
// No operation retries automatically. Failures carry a semantic error code
// (see pkg/errors) so a caller-level retry or backoff policy can be layered
// on top without this package knowing about timing.
type ProfileStore interface {
	// FindMaster locates the master record. A cached record id is tried
	// first; when the id is stale (the record 404s) the store falls back
	// to a full collection scan comparing the fixed description, first
	// match wins. On success the cached id is refreshed as a side effect.
	//
	// Returns a NOT_FOUND error when no master record exists anywhere.
	FindMaster() (*types.MasterRecord, error)

	// CreateMaster creates the master record with exactly one file entry
	// holding the given profile. The record is private and carries the
	// fixed discovery description. The new id is cached as a side effect.
	CreateMaster(profile types.Profile) (*types.MasterRecord, error)

	// FetchProfile retrieves and parses the named profile from a file
	// entry of a previously fetched master record. It accepts inline
	// content as well as content addressed by the entry's raw URL.
	FetchProfile(name string, file types.RecordFile) (types.Profile, error)

	// UpsertProfile adds or overwrites the profile's file entry on the
	// master record. Requires a previously established master id; calling
	// it without one is a precondition violation, not a remote error.
	UpsertProfile(profile types.Profile) (*types.MasterRecord, error)

	// DeleteProfile removes the named profile entry from the master
	// record. Requires a previously established master id.
	DeleteProfile(name string) error
}
