package ports

import "github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"

// ConfigLoader defines the interface for loading the engine configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration for the project containing cwd. When no
	// project file exists the defaults are returned.
	Load(cwd string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to find the project root.
	// Returns the directory containing snc.yaml, or cwd when none exists.
	DiscoverRoot(cwd string) (string, error)
}
