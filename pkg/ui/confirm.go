// Package ui provides the console implementations of the interactive
// collaborators: the reconciliation confirmation dialog, the progress
// reporter, and diff rendering.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tmchartrand/synceverything/pkg/types"
)

// ConsoleConfirmer implements types.Confirmer for console interaction.
// It shows the install/remove counts and itemizes the full lists when the
// user asks.
type ConsoleConfirmer struct {
	in  io.Reader
	out io.Writer
}

// NewConsoleConfirmer creates a confirmer on stdin/stderr.
func NewConsoleConfirmer() *ConsoleConfirmer {
	return &ConsoleConfirmer{in: os.Stdin, out: os.Stderr}
}

// NewConsoleConfirmerWithIO creates a confirmer with injected streams.
func NewConsoleConfirmerWithIO(in io.Reader, out io.Writer) *ConsoleConfirmer {
	return &ConsoleConfirmer{in: in, out: out}
}

// ConfirmReconcile implements types.Confirmer. The prompt suspends
// indefinitely; there is no timeout, and declining is the cancellation
// path.
func (c *ConsoleConfirmer) ConfirmReconcile(diff types.ExtensionDiff) (bool, error) {
	fmt.Fprintf(c.out, "\nExtension changes pending: %s to install, %s to remove.\n",
		warningStyle.Render(fmt.Sprintf("%d", len(diff.ToInstall))),
		warningStyle.Render(fmt.Sprintf("%d", len(diff.ToRemove))))

	reader := bufio.NewReader(c.in)
	for {
		fmt.Fprint(c.out, "Apply these changes? [y/N/l(ist)]: ")

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			// Input closed counts as a decline
			return false, nil
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "l", "list":
			fmt.Fprint(c.out, RenderExtensionDiff(diff))
		default:
			return false, nil
		}
	}
}
