package ports

import "go.trai.ch/tsmeta/internal/core/domain"

// SettingsLoader assembles the command line settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks
type SettingsLoader interface {
	// Load reads the settings file at path, then the environment, then overrides.
	// An empty path selects the optional default settings file in the working directory.
	// Override keys are the settings file keys.
	Load(path string, overrides map[string]any) (domain.Settings, error)
}
