package driven

import "github.com/custodia-labs/attest-cli/internal/core/domain"

// ConfigStore persists application settings.
type ConfigStore interface {
	// Load returns the stored settings, with defaults applied for any
	// missing values.
	Load() (domain.Settings, error)

	// Save persists the settings.
	Save(settings domain.Settings) error

	// Path returns the backing file path for user-facing messages.
	Path() string
}
