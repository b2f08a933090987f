// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/WestonVoglesonger/Multifact-V3/internal/adapters/config"
	_ "github.com/WestonVoglesonger/Multifact-V3/internal/adapters/detector"
	_ "github.com/WestonVoglesonger/Multifact-V3/internal/adapters/logger"
	_ "github.com/WestonVoglesonger/Multifact-V3/internal/adapters/watcher"
	// Register app nodes.
	_ "github.com/WestonVoglesonger/Multifact-V3/internal/app"
)
