// Package profile assembles local configuration snapshots and owns the
// serialization rules for profile payloads stored in the master record.
package profile

import (
	"regexp"
	"strings"

	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// nameRe is the allowed shape of a profile name; it doubles as the file
// name stem inside the master record.
var nameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateName checks a profile name against the naming invariant.
func ValidateName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "profile name cannot be empty")
	}
	if !nameRe.MatchString(name) {
		return errors.Newf(errors.ErrInvalidInput,
			"profile name %q may only contain letters, digits, hyphens, and underscores", name)
	}
	return nil
}

// CheckNameCollision rejects a name that differs only by case from a
// profile already present in the master record. Case-insensitive backends
// and filesystems would silently collapse the two entries.
func CheckNameCollision(master *types.MasterRecord, name string) error {
	if master == nil {
		return nil
	}
	for _, existing := range master.ProfileNames() {
		if existing == name {
			continue
		}
		if strings.EqualFold(existing, name) {
			return errors.Newf(errors.ErrInvalidInput,
				"profile name %q collides with existing profile %q (names differing only by case are not allowed)",
				name, existing)
		}
	}
	return nil
}
