package llm

import (
	"context"
	"os"
	"strings"

	"go.trai.ch/zerr"
	"google.golang.org/genai"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// Gemini implements ports.Generator with the Google GenAI SDK. The API has
// no system/user message split in this usage, so both prompt halves are
// joined into one text part.
type Gemini struct {
	client *genai.Client
	model  string
}

var _ ports.Generator = (*Gemini)(nil)

// NewGemini creates a Gemini generator from the configuration.
func NewGemini(ctx context.Context, cfg *domain.Config) (*Gemini, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, zerr.With(domain.ErrMissingAPIKey, "env", cfg.APIKeyEnv)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, zerr.Wrap(err, errCompletionFailed.Error())
	}

	return &Gemini{client: client, model: cfg.Model}, nil
}

// GenerateCode produces code for a token's narrative.
func (g *Gemini) GenerateCode(ctx context.Context, req ports.GenerateRequest) (string, error) {
	prompt := generateSystemPrompt(req.Language, req.Framework, req.Style) + "\n\n" + generateUserPrompt(req)
	return g.generate(ctx, prompt, false)
}

// FixCode produces a corrected version of code that failed validation.
func (g *Gemini) FixCode(ctx context.Context, req ports.FixRequest) (string, error) {
	prompt := fixSystemPrompt(req.Language) + "\n\n" + fixUserPrompt(req)
	return g.generate(ctx, prompt, false)
}

// EvaluateCode scores a valid artifact against its narrative.
func (g *Gemini) EvaluateCode(ctx context.Context, req ports.EvaluateRequest) (ports.Evaluation, error) {
	prompt := evaluateSystemPrompt() + "\n\n" + evaluateUserPrompt(req)
	raw, err := g.generate(ctx, prompt, true)
	if err != nil {
		return ports.Evaluation{}, err
	}
	return parseEvaluation(raw)
}

func (g *Gemini) generate(ctx context.Context, prompt string, jsonOnly bool) (string, error) {
	var genCfg *genai.GenerateContentConfig
	if jsonOnly {
		genCfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		genCfg,
	)
	if err != nil {
		return "", zerr.Wrap(err, errCompletionFailed.Error())
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errEmptyCompletion
	}

	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}
