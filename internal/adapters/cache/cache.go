// Package cache provides the artifact cache: a bounded in-memory LRU in
// front of the artifact store, with singleflight collapsing so concurrent
// compiles of the same input hash run once.
package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// Cache holds terminal artifacts keyed by input hash. Reads fall through to
// the artifact store and populate the LRU; writes go through to the store.
// Safe for concurrent use.
type Cache struct {
	entries *lru.Cache[string, *domain.CompiledArtifact]
	store   ports.ArtifactStore
	group   singleflight.Group
	logger  ports.Logger
}

var _ ports.ArtifactCache = (*Cache)(nil)

// New builds a cache holding at most size entries in memory.
func New(size int, store ports.ArtifactStore, logger ports.Logger) (*Cache, error) {
	entries, err := lru.New[string, *domain.CompiledArtifact](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create artifact cache")
	}
	return &Cache{entries: entries, store: store, logger: logger}, nil
}

// Lookup retrieves the artifact for an input hash, reading through to the
// store when the entry is not in memory. Returns nil, nil if not found.
func (c *Cache) Lookup(ctx context.Context, inputHash string) (*domain.CompiledArtifact, error) {
	if artifact, ok := c.entries.Get(inputHash); ok {
		return artifact, nil
	}

	artifact, err := c.store.GetArtifact(ctx, inputHash)
	if err != nil {
		return nil, zerr.Wrap(err, "artifact lookup failed")
	}
	if artifact != nil {
		c.entries.Add(inputHash, artifact)
	}
	return artifact, nil
}

// Store records a terminal artifact in memory and writes it through to the
// store.
func (c *Cache) Store(ctx context.Context, inputHash string, artifact *domain.CompiledArtifact) error {
	c.entries.Add(inputHash, artifact)
	if err := c.store.PutArtifact(ctx, artifact); err != nil {
		return zerr.Wrap(err, "artifact write-through failed")
	}
	return nil
}

// Do runs fn for the given input hash, collapsing concurrent calls with the
// same hash into one execution. A terminal artifact is stored before it is
// returned; errors are never stored. A failed write-through does not discard
// the artifact.
func (c *Cache) Do(ctx context.Context, inputHash string, fn ports.CompileFunc) (*domain.CompiledArtifact, error) {
	result, err, _ := c.group.Do(inputHash, func() (any, error) {
		artifact, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if artifact != nil {
			if err := c.Store(ctx, inputHash, artifact); err != nil {
				c.logger.Warn(fmt.Sprintf("%s: %v", artifact.TokenPath, err))
			}
		}
		return artifact, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.CompiledArtifact), nil
}
