package app

import (
	"context"

	"github.com/WestonVoglesonger/Multifact-V3/internal/adapters/config"
	"github.com/WestonVoglesonger/Multifact-V3/internal/adapters/logger"
	"github.com/WestonVoglesonger/Multifact-V3/internal/adapters/watcher"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
	"github.com/grindlemire/graft"
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
			config.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			fsWatcher, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, fsWatcher, log), nil
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
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    application,
		Logger: log,
	}, nil
}
