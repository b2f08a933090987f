package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"

	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1/chat/completions"

// Sampling parameters per call kind. Generation stays close to the
// narrative, repair may restructure a little more, evaluation must not vary.
const (
	generateTemperature = 0.2
	generateMaxTokens   = 2000
	fixTemperature      = 0.3
	fixMaxTokens        = 1500
	evaluateTemperature = 0
	evaluateMaxTokens   = 400
)

// maxErrorBody caps how much of an error response body lands in the error.
const maxErrorBody = 2048

// OpenAI implements ports.Generator against an OpenAI-compatible chat
// completions endpoint. Cancellation and deadlines come from the request
// context.
type OpenAI struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

var _ ports.Generator = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI-compatible generator from the configuration.
// The API key is read from the environment variable the config names.
func NewOpenAI(cfg *domain.Config) (*OpenAI, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, zerr.With(domain.ErrMissingAPIKey, "env", cfg.APIKeyEnv)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	return &OpenAI{
		client:  &http.Client{},
		baseURL: baseURL,
		apiKey:  key,
		model:   cfg.Model,
	}, nil
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float32           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateCode produces code for a token's narrative.
func (o *OpenAI) GenerateCode(ctx context.Context, req ports.GenerateRequest) (string, error) {
	system := generateSystemPrompt(req.Language, req.Framework, req.Style)
	return o.complete(ctx, system, generateUserPrompt(req), generateTemperature, generateMaxTokens, false)
}

// FixCode produces a corrected version of code that failed validation.
func (o *OpenAI) FixCode(ctx context.Context, req ports.FixRequest) (string, error) {
	return o.complete(ctx, fixSystemPrompt(req.Language), fixUserPrompt(req), fixTemperature, fixMaxTokens, false)
}

// EvaluateCode scores a valid artifact against its narrative.
func (o *OpenAI) EvaluateCode(ctx context.Context, req ports.EvaluateRequest) (ports.Evaluation, error) {
	raw, err := o.complete(ctx, evaluateSystemPrompt(), evaluateUserPrompt(req), evaluateTemperature, evaluateMaxTokens, true)
	if err != nil {
		return ports.Evaluation{}, err
	}
	return parseEvaluation(raw)
}

func (o *OpenAI) complete(ctx context.Context, system, user string, temperature float32, maxTokens int, jsonOnly bool) (string, error) {
	body := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	if jsonOnly {
		body.ResponseFormat = map[string]string{"type": "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", zerr.Wrap(err, errCompletionFailed.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", zerr.Wrap(err, errCompletionFailed.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", zerr.Wrap(err, errCompletionFailed.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := zerr.With(errCompletionFailed, "status", resp.Status)
		return "", zerr.With(statusErr, "body", string(detail))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", zerr.Wrap(err, errCompletionFailed.Error())
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", errEmptyCompletion
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
