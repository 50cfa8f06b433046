// Package config loads the synceverything configuration: embedded defaults
// layered under the user's config file, with the access token optionally
// supplied by the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/tmchartrand/synceverything/pkg/errors"
)

// TokenEnvVar names the environment variable consulted when no token is
// configured in the config file.
const TokenEnvVar = "SYNCEVERYTHING_TOKEN"

// Config is the recognized configuration surface.
type Config struct {
	Remote RemoteConfig `koanf:"remote" toml:"remote"`
	Sync   SyncConfig   `koanf:"sync" toml:"sync"`
	Editor EditorConfig `koanf:"editor" toml:"editor"`
}

// RemoteConfig configures the remote snippet store.
type RemoteConfig struct {
	BaseURL    string `koanf:"base_url" toml:"base_url"`
	Collection string `koanf:"collection" toml:"collection"`
	Token      string `koanf:"token" toml:"token"`
}

// SyncConfig configures reconciliation behavior.
type SyncConfig struct {
	ConfirmBeforeSync bool     `koanf:"confirm_before_sync" toml:"confirm_before_sync"`
	ExcludeExtensions []string `koanf:"exclude_extensions" toml:"exclude_extensions"`
}

// EditorConfig identifies the host editor.
type EditorConfig struct {
	Command   string `koanf:"command" toml:"command"`
	Identity  string `koanf:"identity" toml:"identity"`
	ConfigDir string `koanf:"config_dir" toml:"config_dir"`
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "synceverything", "config.toml")
}

// Load builds the configuration from embedded defaults plus the config file
// at path, if it exists. An empty path uses DefaultPath. The token falls
// back to SYNCEVERYTHING_TOKEN when unset.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Load user config if it exists
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode config")
	}

	if cfg.Remote.Token == "" {
		cfg.Remote.Token = os.Getenv(TokenEnvVar)
	}

	return &cfg, nil
}

// ExcludedSet returns the exclusion list as a set for diffing.
func (c *Config) ExcludedSet() map[string]bool {
	set := make(map[string]bool, len(c.Sync.ExcludeExtensions))
	for _, id := range c.Sync.ExcludeExtensions {
		set[id] = true
	}
	return set
}
