package tsconfig

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tsmeta/internal/adapters/logger"
	"go.trai.ch/tsmeta/internal/core/ports"
)

// NodeID is the unique identifier for the project config resolver Graft node.
const NodeID graft.ID = "adapter.tsconfig"

func init() {
	graft.Register(graft.Node[ports.ProjectConfigResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProjectConfigResolver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(log), nil
		},
	})
}
