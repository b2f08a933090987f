package config

import (
	"context"

	"github.com/WestonVoglesonger/Multifact-V3/internal/adapters/logger"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the config loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
