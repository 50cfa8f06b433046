// Package paths resolves the local editor configuration file locations.
// It knows the per-OS default directories for the supported editor
// identities and falls back to an interactive manual pick when a file is
// in none of them.
package paths

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/logging"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// Locator implements types.ConfigLocator against the real filesystem.
type Locator struct {
	fs types.FS

	// in/out drive the manual pick prompt; overridable for tests. The
	// reader is persistent so consecutive prompts share buffered input.
	in  *bufio.Reader
	out io.Writer
}

// NewLocator creates a locator using the given filesystem.
func NewLocator(fs types.FS) *Locator {
	return &Locator{
		fs:  fs,
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
	}
}

// NewLocatorWithIO creates a locator with injected prompt streams.
func NewLocatorWithIO(fs types.FS, in io.Reader, out io.Writer) *Locator {
	return &Locator{fs: fs, in: bufio.NewReader(in), out: out}
}

// defaultUserDirs returns the candidate user-configuration directories for
// an editor identity, most specific first. The identity is the editor's
// application directory name ("Code", "Code - Insiders", "VSCodium").
func defaultUserDirs(identity string) []string {
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "darwin":
		return []string{
			filepath.Join(home, "Library", "Application Support", identity, "User"),
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return []string{filepath.Join(appData, identity, "User")}
		}
		return nil
	default:
		return []string{
			filepath.Join(xdg.ConfigHome, identity, "User"),
			filepath.Join(home, ".config", identity, "User"),
		}
	}
}

// Resolve implements types.ConfigLocator. preferredDir is checked before
// the OS defaults when non-empty.
func (l *Locator) Resolve(identity, fileName, preferredDir string) (string, error) {
	logger := logging.GetLogger("paths")

	var candidates []string
	if preferredDir != "" {
		candidates = append(candidates, preferredDir)
	}
	candidates = append(candidates, defaultUserDirs(identity)...)

	for _, dir := range candidates {
		path := filepath.Join(dir, fileName)
		if _, err := l.fs.Stat(path); err == nil {
			logger.Debug().Str("file", fileName).Str("path", path).Msg("Resolved configuration file")
			return path, nil
		}
	}

	return "", errors.Newf(errors.ErrNotFound,
		"could not locate %s for %s in %d candidate directories", fileName, identity, len(candidates))
}

// ManualPick implements types.ConfigLocator. It prompts for an absolute
// path to the named kind of file and validates that it exists. An empty
// answer is a decline.
func (l *Locator) ManualPick(kind string) (string, error) {
	fmt.Fprintf(l.out, "Enter the full path to your %s file (empty to cancel): ", kind)

	line, err := l.in.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New(errors.ErrUserCancelled, "no path entered")
	}

	path := strings.TrimSpace(line)
	if path == "" {
		return "", errors.New(errors.ErrUserCancelled, "no path entered")
	}

	path = ExpandHome(path)
	if err := ValidatePath(path); err != nil {
		return "", err
	}
	if _, err := l.fs.Stat(path); err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigFileMissing, "no file at %s", path)
	}

	return path, nil
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
