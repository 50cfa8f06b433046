package genconfig

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/tmchartrand/synceverything/pkg/config"
	"github.com/tmchartrand/synceverything/pkg/errors"
)

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	// Path is the destination; empty means the default user config path.
	Path string

	// Force overwrites an existing file.
	Force bool

	// Effective writes the currently effective configuration instead of
	// the commented default template.
	Effective bool
	Config    *config.Config
}

// GenConfig writes a starter configuration file.
func GenConfig(opts GenConfigOptions) (string, error) {
	path := opts.Path
	if path == "" {
		path = config.DefaultPath()
	}

	if !opts.Force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.Newf(errors.ErrInvalidInput,
				"%s already exists; use --force to overwrite", path)
		}
	}

	var content []byte
	if opts.Effective && opts.Config != nil {
		data, err := toml.Marshal(opts.Config)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
		}
		content = data
	} else {
		content = []byte(config.DefaultConfigContent())
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to create config directory")
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to write %s", path)
	}

	return path, nil
}
