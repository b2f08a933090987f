package detector

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the log format detector Graft node.
const NodeID graft.ID = "adapter.log_format"

// EnvOverride is the environment variable that overrides log format
// detection.
const EnvOverride = "SNC_LOG_FORMAT"

func init() {
	graft.Register(graft.Node[LogFormat]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (LogFormat, error) {
			return ResolveFormat(DetectEnvironment(), os.Getenv(EnvOverride)), nil
		},
	})
}
