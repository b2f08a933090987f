// Package llm implements the Generator port backed by chat completion
// providers. The openai provider speaks the OpenAI-compatible chat
// completions protocol (OpenAI, Groq and friends), the gemini provider uses
// the Google GenAI SDK, and the static provider produces deterministic code
// without network access.
package llm

import (
	"context"

	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

var (
	errCompletionFailed = zerr.New("completion request failed")
	errEmptyCompletion  = zerr.New("empty completion response")
	errBadEvaluation    = zerr.New("malformed evaluation response")
)

// New creates the Generator named by the configuration.
func New(ctx context.Context, cfg *domain.Config) (ports.Generator, error) {
	switch cfg.Provider {
	case domain.ProviderOpenAI:
		return NewOpenAI(cfg)
	case domain.ProviderGemini:
		return NewGemini(ctx, cfg)
	case domain.ProviderStatic:
		return NewStatic(), nil
	default:
		return nil, zerr.With(domain.ErrUnknownProvider, "provider", cfg.Provider)
	}
}
