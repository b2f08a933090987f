package ports

import (
	"context"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

// CompileFunc produces the artifact for an input hash on a cache miss.
type CompileFunc func(ctx context.Context) (*domain.CompiledArtifact, error)

// ArtifactCache defines the interface for caching compiled artifacts by
// input hash.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ArtifactCache interface {
	// Lookup retrieves the cached artifact for an input hash.
	// Returns nil, nil if not found.
	Lookup(ctx context.Context, inputHash string) (*domain.CompiledArtifact, error)

	// Store records a terminal artifact under its input hash.
	Store(ctx context.Context, inputHash string, artifact *domain.CompiledArtifact) error

	// Do runs fn for the given input hash, collapsing concurrent calls with
	// the same hash into a single execution whose result every caller
	// shares. A terminal artifact (valid or failed) is stored before it is
	// returned; an error result is never stored.
	Do(ctx context.Context, inputHash string, fn CompileFunc) (*domain.CompiledArtifact, error)
}
