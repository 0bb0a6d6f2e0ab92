package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tsmeta/internal/adapters/logger"
	"go.trai.ch/tsmeta/internal/core/ports"
)

// WalkerNodeID is the unique identifier for the source walker Graft node.
const WalkerNodeID graft.ID = "adapter.fs.walker"

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Walker, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWalker(log), nil
		},
	})
}
