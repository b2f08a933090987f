// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks

// DependencySnippet is the compiled code of a direct dependency, handed to
// the generator so references in the narrative resolve against real code.
type DependencySnippet struct {
	// Name is the token name the narrative references.
	Name string
	// Path is the structural identity of the dependency token.
	Path string
	// Code is the dependency's compiled artifact code.
	Code string
}

// GenerateRequest describes one code generation call for a token.
type GenerateRequest struct {
	// TokenPath is the structural identity of the token being compiled.
	TokenPath string
	// Kind is the token's narrative kind.
	Kind domain.TokenKind
	// Narrative is the token's verbatim narrative content.
	Narrative string
	// Language is the target language, e.g. "typescript".
	Language string
	// Framework is the target framework, e.g. "angular". May be empty.
	Framework string
	// Style holds extra style guidance appended to the prompt. May be empty.
	Style string
	// Dependencies are the compiled direct dependencies in dependency order.
	Dependencies []DependencySnippet
}

// FixRequest describes one repair call for code that failed validation.
type FixRequest struct {
	// TokenPath is the structural identity of the token being repaired.
	TokenPath string
	// Language is the target language.
	Language string
	// Code is the code of the failing attempt.
	Code string
	// Diagnostics are the validation findings the fix must address.
	Diagnostics []domain.Diagnostic
}

// EvaluateRequest describes one evaluation call for a valid artifact.
type EvaluateRequest struct {
	// TokenPath is the structural identity of the evaluated token.
	TokenPath string
	// Narrative is the token's narrative content.
	Narrative string
	// Language is the target language.
	Language string
	// Code is the valid artifact code.
	Code string
}

// Evaluation is the outcome of scoring an artifact against its narrative.
type Evaluation struct {
	// Score grades how well the code matches the narrative, 0 to 10.
	Score float64
	// Feedback is a short reviewer note.
	Feedback string
}

// Generator defines the interface for model-backed code generation.
type Generator interface {
	// GenerateCode produces code for a token's narrative.
	// It returns an error when the provider call itself fails; the caller
	// treats that as transient and never caches it.
	GenerateCode(ctx context.Context, req GenerateRequest) (string, error)

	// FixCode produces a corrected version of code that failed validation.
	FixCode(ctx context.Context, req FixRequest) (string, error)

	// EvaluateCode scores a valid artifact against its narrative.
	EvaluateCode(ctx context.Context, req EvaluateRequest) (Evaluation, error)
}
