package logger

import (
	"context"

	"github.com/WestonVoglesonger/Multifact-V3/internal/adapters/detector"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{detector.NodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			format, err := graft.Dep[detector.LogFormat](ctx)
			if err != nil {
				return nil, err
			}
			log := New()
			if format == detector.FormatJSON {
				log.SetJSON(true)
			}
			return log, nil
		},
	})
}
