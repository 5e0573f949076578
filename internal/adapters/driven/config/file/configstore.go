// Package file provides file-backed configuration and prompt stores.
// Everything lives under a single directory, ~/.attest by default.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/attest-cli/internal/core/domain"
	"github.com/custodia-labs/attest-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

const (
	configDirName  = ".attest"
	configFileName = "config.toml"
)

// ConfigStore persists settings as TOML in the user's config directory.
type ConfigStore struct {
	path string
}

// NewConfigStore creates a config store rooted at ~/.attest.
func NewConfigStore() (*ConfigStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return NewConfigStoreAt(filepath.Join(home, configDirName, configFileName)), nil
}

// NewConfigStoreAt creates a config store backed by the given file path.
func NewConfigStoreAt(path string) *ConfigStore {
	return &ConfigStore{path: path}
}

// Load reads settings from disk. A missing file yields the defaults;
// fields absent from the file keep their default values.
func (s *ConfigStore) Load() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return domain.Settings{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("parse config %s: %w", s.path, err)
	}
	return settings, nil
}

// Save writes settings to disk, creating the config directory if needed.
// The file is written 0600 because it may contain API keys.
func (s *ConfigStore) Save(settings domain.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the backing file path.
func (s *ConfigStore) Path() string {
	return s.path
}
