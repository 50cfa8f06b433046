// Package state implements the persistent key-value store that caches
// per-installation data across sessions: the remote master record id, the
// resolved configuration file paths, and the installation identifier.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// Well-known state keys.
const (
	KeyMasterID        = "master_id"
	KeySettingsPath    = "settings_path"
	KeyKeybindingsPath = "keybindings_path"
	KeyInstallationID  = "installation_id"
	KeyLastSync        = "last_sync"
)

// FileStore implements types.StateStore backed by a single JSON file.
// Every Set/Delete persists immediately; there is no separate flush step.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// DefaultPath returns the state file location under the XDG state directory.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "synceverything", "state.json")
}

// Open loads the store at path, creating an empty one if the file does not
// exist yet. A file that exists but cannot be read or parsed is an error;
// silently starting fresh would discard the cached master id.
func Open(path string) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to read state file %s", path)
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "state file %s is corrupt", path)
	}

	return s, nil
}

// Get implements types.StateStore.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set implements types.StateStore.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.save()
}

// Delete implements types.StateStore.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.save()
}

// save writes the store to disk. Callers must hold s.mu.
func (s *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create state directory")
	}

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode state")
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to write state file %s", s.path)
	}

	return nil
}

// InstallationID returns the stable identifier for this installation,
// generating and persisting one on first use.
func InstallationID(store types.StateStore) (string, error) {
	if id, ok := store.Get(KeyInstallationID); ok {
		return id, nil
	}

	id := uuid.NewString()
	if err := store.Set(KeyInstallationID, id); err != nil {
		return "", err
	}
	return id, nil
}

// ResolvedPaths reads the cached configuration file paths from the store.
func ResolvedPaths(store types.StateStore) types.ResolvedPaths {
	settings, _ := store.Get(KeySettingsPath)
	keybindings, _ := store.Get(KeyKeybindingsPath)
	return types.ResolvedPaths{
		SettingsPath:    settings,
		KeybindingsPath: keybindings,
	}
}

// SaveResolvedPaths caches the configuration file paths in the store.
func SaveResolvedPaths(store types.StateStore, paths types.ResolvedPaths) error {
	if err := store.Set(KeySettingsPath, paths.SettingsPath); err != nil {
		return err
	}
	return store.Set(KeyKeybindingsPath, paths.KeybindingsPath)
}
