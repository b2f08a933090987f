package ports

import (
	"context"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// DocumentStore defines the interface for persisting parsed documents.
type DocumentStore interface {
	// SaveDocument stores the document and its token list, replacing any
	// previous version for the same source path.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// LoadDocument retrieves the last stored document for a source path.
	// Returns nil, nil if not found.
	LoadDocument(ctx context.Context, path string) (*domain.Document, error)
}

// ArtifactStore defines the interface for persisting compiled artifacts.
type ArtifactStore interface {
	// GetArtifact retrieves the artifact stored for an input hash.
	// Returns nil, nil if not found.
	GetArtifact(ctx context.Context, inputHash string) (*domain.CompiledArtifact, error)

	// PutArtifact stores the artifact under its input hash.
	PutArtifact(ctx context.Context, artifact *domain.CompiledArtifact) error
}

// StateStore combines document and artifact persistence.
type StateStore interface {
	DocumentStore
	ArtifactStore

	// Close releases any resources held by the store.
	Close() error
}
