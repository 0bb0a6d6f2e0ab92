package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tsmeta/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/tsmeta/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tsmeta/internal/adapters/report"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tsmeta/internal/adapters/settings" //nolint:depguard // Wired in app layer
	"go.trai.ch/tsmeta/internal/adapters/tsconfig" //nolint:depguard // Wired in app layer
	"go.trai.ch/tsmeta/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			tsconfig.NodeID,
			settings.NodeID,
			report.NodeID,
			fs.WalkerNodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.ProjectConfigResolver](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.SettingsLoader](ctx)
			if err != nil {
				return nil, err
			}

			writer, err := graft.Dep[ports.ReportWriter](ctx)
			if err != nil {
				return nil, err
			}

			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}

			return New(log, resolver, loader, writer, walker), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(a, log), nil
		},
	})
}
