// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/tsmeta/internal/core/domain"
)

// Compiler is the full-source compiler service.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile transpiles one file with the given effective options.
	// A rejected file is reported as an error wrapping domain.ErrCompileFailed.
	Compile(ctx context.Context, req domain.CompileRequest) (domain.CompileResult, error)
}
