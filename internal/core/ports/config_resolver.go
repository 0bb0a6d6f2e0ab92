package ports

import "go.trai.ch/tsmeta/internal/core/domain"

// ProjectConfigResolver locates and expands the TypeScript project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_resolver.go -destination=mocks/mock_config_resolver.go -package=mocks
type ProjectConfigResolver interface {
	// Resolve finds the configuration starting at cwd, honoring explicitPath when it is not empty.
	//
	// With no explicit path and no file found it returns an all-default configuration rooted at cwd.
	// With an explicit path that cannot be located it returns domain.ErrConfigNotFound.
	Resolve(explicitPath, cwd string) (*domain.ProjectConfig, error)
}
