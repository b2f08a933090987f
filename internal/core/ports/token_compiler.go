package ports

import (
	"context"
	"io"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

//go:generate mockgen -source=token_compiler.go -destination=mocks/mock_token_compiler.go -package=mocks

// CompiledDependency pairs a direct dependency token with its compiled
// artifact.
type CompiledDependency struct {
	Token    *domain.Token
	Artifact *domain.CompiledArtifact
}

// CompileRequest describes one token compilation. Dependencies must be the
// token's direct dependencies in graph dependency order; their order feeds
// the token's input hash.
type CompileRequest struct {
	Token        *domain.Token
	Dependencies []CompiledDependency
	// NoCache skips the cache lookup. The result is still stored so later
	// runs can reuse it.
	NoCache bool
}

// TokenCompiler resolves a single token to a terminal artifact.
type TokenCompiler interface {
	// Compile returns a terminal artifact: valid code, or a failure that
	// exhausted its repair attempts. Provider and checker breakdowns are
	// returned as errors. Checker output is streamed to output when it is
	// non-nil.
	Compile(ctx context.Context, req CompileRequest, output io.Writer) (*domain.CompiledArtifact, error)
}
