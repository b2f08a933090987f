package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// displayName returns the narrative name of the token a path identifies,
// e.g. "Cart" for "scene:Checkout/component:Cart".
func displayName(tokenPath string) string {
	segment := tokenPath
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	if i := strings.Index(segment, ":"); i >= 0 {
		segment = segment[i+1:]
	}
	return segment
}

func generateSystemPrompt(language, framework, style string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a world-class coding assistant specializing in %s", language)
	if framework != "" {
		fmt.Fprintf(&b, " and %s development", framework)
	}
	b.WriteString(". ")
	fmt.Fprintf(&b, "You must ONLY return the %s code. NO explanations, NO comments outside the code, NO disclaimers.\n\n", language)
	b.WriteString("Rules:\n")
	b.WriteString("1. Make every declaration strongly typed\n")
	b.WriteString("2. Use proper dependency injection\n")
	b.WriteString("3. Initialize all properties\n")
	b.WriteString("4. Add error handling\n")
	b.WriteString("5. Use async/await for asynchronous work\n")
	if style != "" {
		b.WriteString("\nStyle guidance:\n")
		b.WriteString(strings.TrimSpace(style))
		b.WriteString("\n")
	}
	b.WriteString("\nIMPORTANT: Return ONLY the code. No explanations before or after. No disclaimers. No apologies.")
	return b.String()
}

func kindGuidance(kind domain.TokenKind, name string) string {
	switch kind {
	case domain.KindScene:
		return fmt.Sprintf("Create a top-level scene named %s with its layout, state wiring, error handling and loading states.", name)
	case domain.KindComponent:
		return fmt.Sprintf("Create a component named %s with lifecycle hooks, error handling and loading states.", name)
	default:
		return fmt.Sprintf("Create a service named %s with dependency injection, error handling and strong typing.", name)
	}
}

func generateUserPrompt(req ports.GenerateRequest) string {
	name := displayName(req.TokenPath)
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %s code for %s.\n\n", req.Kind, name)
	fmt.Fprintf(&b, "Requirements:\n%s\n\n", strings.TrimSpace(req.Narrative))
	if len(req.Dependencies) > 0 {
		b.WriteString("The following dependencies are already compiled. Use them as-is; do not redefine them.\n\n")
		for _, dep := range req.Dependencies {
			fmt.Fprintf(&b, "// %s\n%s\n\n", dep.Name, strings.TrimSpace(dep.Code))
		}
	}
	b.WriteString(kindGuidance(req.Kind, name))
	fmt.Fprintf(&b, "\n\nReturn ONLY the %s code. No explanations. No disclaimers.", req.Language)
	return b.String()
}

func fixSystemPrompt(language string) string {
	return fmt.Sprintf(
		"You are a coding assistant. You have been given %s code that contains errors. "+
			"You must fix the code so that every reported finding is resolved. "+
			"Return only the fixed %s code without any markdown code block markers or explanations. "+
			"Keep as much of the original structure as possible.",
		language, language,
	)
}

func fixUserPrompt(req ports.FixRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is the current code:\n%s\n\n", req.Code)
	b.WriteString("The checks reported:\n")
	for _, d := range req.Diagnostics {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nReturn only the fixed %s code without any markdown code block markers.", req.Language)
	return b.String()
}

func evaluateSystemPrompt() string {
	return "You are a strict code reviewer. Grade how well the given code implements the narrative " +
		"it was generated from. Respond with a JSON object of the form " +
		`{"score": <number between 0 and 10>, "feedback": "<one sentence>"} and nothing else.`
}

func evaluateUserPrompt(req ports.EvaluateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Narrative:\n%s\n\n", strings.TrimSpace(req.Narrative))
	fmt.Fprintf(&b, "Code (%s):\n%s\n", req.Language, req.Code)
	return b.String()
}

type evaluationPayload struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// parseEvaluation decodes a provider's evaluation response. Models in JSON
// mode return raw JSON, but a fenced block is tolerated.
func parseEvaluation(raw string) (ports.Evaluation, error) {
	text := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(text, "```"); ok {
		if i := strings.Index(rest, "\n"); i >= 0 {
			rest = rest[i+1:]
		}
		rest, _ = strings.CutSuffix(strings.TrimSpace(rest), "```")
		text = strings.TrimSpace(rest)
	}

	var payload evaluationPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return ports.Evaluation{}, zerr.Wrap(err, errBadEvaluation.Error())
	}
	if payload.Score < 0 || payload.Score > 10 {
		return ports.Evaluation{}, zerr.With(errBadEvaluation, "score", payload.Score)
	}
	return ports.Evaluation{Score: payload.Score, Feedback: payload.Feedback}, nil
}
