// Package extensions implements the ExtensionHost collaborator by driving
// the editor's command line tool.
package extensions

import (
	"os/exec"
	"strings"

	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/logging"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// Runner executes the editor binary; injectable for tests.
type Runner func(command string, args ...string) ([]byte, error)

func execRunner(command string, args ...string) ([]byte, error) {
	return exec.Command(command, args...).CombinedOutput()
}

// CLIHost implements types.ExtensionHost through the editor's CLI
// (`code --list-extensions` and friends). The CLI already excludes
// built-in extensions from its listing.
type CLIHost struct {
	command string
	run     Runner
}

// NewCLIHost creates a host for the given editor command.
func NewCLIHost(command string) *CLIHost {
	return &CLIHost{command: command, run: execRunner}
}

// NewCLIHostWithRunner creates a host with an injected runner.
func NewCLIHostWithRunner(command string, run Runner) *CLIHost {
	return &CLIHost{command: command, run: run}
}

// ListInstalled implements types.ExtensionHost.
func (h *CLIHost) ListInstalled() ([]string, error) {
	out, err := h.run(h.command, "--list-extensions")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal,
			"failed to list extensions via %s", h.command)
	}

	var ids []string
	for _, line := range strings.Split(string(out), "\n") {
		id := strings.TrimSpace(line)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}

	logger := logging.GetLogger("extensions")
	logger.Debug().Int("count", len(ids)).Msg("Listed installed extensions")
	return ids, nil
}

// Install implements types.ExtensionHost.
func (h *CLIHost) Install(id string) error {
	out, err := h.run(h.command, "--install-extension", id)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtensionInstall,
			"%s --install-extension %s: %s", h.command, id, firstLine(out))
	}
	return nil
}

// Uninstall implements types.ExtensionHost.
func (h *CLIHost) Uninstall(id string) error {
	out, err := h.run(h.command, "--uninstall-extension", id)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtensionUninstall,
			"%s --uninstall-extension %s: %s", h.command, id, firstLine(out))
	}
	return nil
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

var _ types.ExtensionHost = (*CLIHost)(nil)
