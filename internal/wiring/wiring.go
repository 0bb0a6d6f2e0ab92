// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tsmeta/internal/adapters/fs"
	_ "go.trai.ch/tsmeta/internal/adapters/logger"
	_ "go.trai.ch/tsmeta/internal/adapters/report"
	_ "go.trai.ch/tsmeta/internal/adapters/settings"
	_ "go.trai.ch/tsmeta/internal/adapters/tsconfig"
	// Register app nodes.
	_ "go.trai.ch/tsmeta/internal/app"
)
