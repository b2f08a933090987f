// Package compiler turns single tokens into compiled artifacts. It owns the
// generate/validate/repair loop; scheduling across tokens lives in the
// orchestrator.
package compiler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// retryBackoff is the base delay between transient provider retries. The
// delay grows linearly with the retry count.
const retryBackoff = 250 * time.Millisecond

// Compiler resolves tokens to artifacts through generation, validation and
// bounded repair.
type Compiler struct {
	generator ports.Generator
	validator ports.Validator
	cache     ports.ArtifactCache
	logger    ports.Logger
	cfg       *domain.Config
}

var _ ports.TokenCompiler = (*Compiler)(nil)

// New creates a Compiler with the given collaborators.
func New(
	generator ports.Generator,
	validator ports.Validator,
	cache ports.ArtifactCache,
	logger ports.Logger,
	cfg *domain.Config,
) *Compiler {
	return &Compiler{
		generator: generator,
		validator: validator,
		cache:     cache,
		logger:    logger,
		cfg:       cfg,
	}
}

// Compile resolves the artifact for one token. Checker output is streamed to
// output when it is non-nil.
//
// A returned artifact is always terminal: either valid code or a failure that
// exhausted its repair attempts. Both are cached under the input hash.
// Provider and checker breakdowns are returned as errors and never cached.
func (c *Compiler) Compile(ctx context.Context, req ports.CompileRequest, output io.Writer) (*domain.CompiledArtifact, error) {
	token := req.Token

	for _, dep := range req.Dependencies {
		if dep.Artifact == nil || !dep.Artifact.Valid {
			err := zerr.With(domain.ErrDependencyNotReady, "token", token.PathString())
			return nil, zerr.With(err, "dependency", dep.Token.PathString())
		}
	}

	depHashes := make([]string, len(req.Dependencies))
	for i, dep := range req.Dependencies {
		depHashes[i] = dep.Artifact.CodeHash
	}
	inputHash := domain.ComputeInputHash(token.Hash, depHashes)

	if !req.NoCache {
		cached, err := c.cache.Lookup(ctx, inputHash)
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
		}
		if cached != nil {
			return retarget(cached, token, true), nil
		}
	}

	artifact, err := c.cache.Do(ctx, inputHash, func(ctx context.Context) (*domain.CompiledArtifact, error) {
		return c.compile(ctx, req, inputHash, output)
	})
	if err != nil {
		return nil, err
	}
	return retarget(artifact, token, false), nil
}

// retarget returns a copy of the artifact bound to the given token. Cached
// artifacts and results shared between in-flight callers carry the identity
// of whichever token produced them first.
func retarget(artifact *domain.CompiledArtifact, token *domain.Token, cacheHit bool) *domain.CompiledArtifact {
	out := *artifact
	out.TokenID = token.ID
	out.TokenPath = token.PathString()
	out.CacheHit = cacheHit
	return &out
}

// compile runs the generate/validate/repair loop for a cache miss.
func (c *Compiler) compile(
	ctx context.Context,
	req ports.CompileRequest,
	inputHash string,
	output io.Writer,
) (*domain.CompiledArtifact, error) {
	token := req.Token
	path := token.PathString()

	snippets := make([]ports.DependencySnippet, len(req.Dependencies))
	for i, dep := range req.Dependencies {
		snippets[i] = ports.DependencySnippet{
			Name: dep.Token.Name,
			Path: dep.Token.PathString(),
			Code: dep.Artifact.Code,
		}
	}

	var code string
	var diags []domain.Diagnostic

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		// A canceled run finishes the attempt in flight but starts no
		// further one.
		if attempt > 1 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		raw, err := c.produce(ctx, token, snippets, code, diags, attempt)
		if err != nil {
			genErr := zerr.Wrap(err, domain.ErrGeneration.Error())
			genErr = zerr.With(genErr, "token", path)
			return nil, zerr.With(genErr, "attempt", attempt)
		}
		code = StripFences(raw)

		diags, err = c.validator.Check(ctx, code, token.Content, output)
		if err != nil {
			chkErr := zerr.Wrap(err, domain.ErrCheckerFailed.Error())
			return nil, zerr.With(chkErr, "token", path)
		}

		if len(diags) == 0 {
			artifact := c.newArtifact(token, inputHash, code)
			artifact.Valid = true
			artifact.Attempts = attempt
			c.evaluate(ctx, token, artifact)
			return artifact, nil
		}

		c.logger.Warn(fmt.Sprintf("%s: attempt %d left %d finding(s)", path, attempt, len(diags)))
	}

	artifact := c.newArtifact(token, inputHash, code)
	artifact.Valid = false
	artifact.Attempts = c.cfg.MaxAttempts
	artifact.Diagnostics = diags
	return artifact, nil
}

// produce asks the generator for code: a fresh generation on the first
// attempt, a repair of the previous code on every later one.
func (c *Compiler) produce(
	ctx context.Context,
	token *domain.Token,
	snippets []ports.DependencySnippet,
	code string,
	diags []domain.Diagnostic,
	attempt int,
) (string, error) {
	if attempt == 1 {
		return c.withRetries(ctx, func(ctx context.Context) (string, error) {
			return c.generator.GenerateCode(ctx, ports.GenerateRequest{
				TokenPath:    token.PathString(),
				Kind:         token.Kind,
				Narrative:    token.Content,
				Language:     c.cfg.Language,
				Framework:    c.cfg.Framework,
				Style:        c.cfg.Style,
				Dependencies: snippets,
			})
		})
	}

	return c.withRetries(ctx, func(ctx context.Context) (string, error) {
		return c.generator.FixCode(ctx, ports.FixRequest{
			TokenPath:   token.PathString(),
			Language:    c.cfg.Language,
			Code:        code,
			Diagnostics: diags,
		})
	})
}

// withRetries reruns fn on error up to the configured transient retry count.
// Each call runs under its own timeout, detached from the caller's
// cancellation: canceling a run lets the request already on the wire finish
// instead of aborting it, and cancellation is honored between calls.
func (c *Compiler) withRetries(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.TransientRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}

		out, err := func() (string, error) {
			callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.Timeout)
			defer cancel()
			return fn(callCtx)
		}()
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// evaluate scores a valid artifact against its narrative. Scoring problems
// are logged and never fail the compilation.
func (c *Compiler) evaluate(ctx context.Context, token *domain.Token, artifact *domain.CompiledArtifact) {
	if !c.cfg.Evaluate {
		return
	}

	evalCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	ev, err := c.generator.EvaluateCode(evalCtx, ports.EvaluateRequest{
		TokenPath: token.PathString(),
		Narrative: token.Content,
		Language:  c.cfg.Language,
		Code:      artifact.Code,
	})
	if err != nil {
		evalErr := zerr.Wrap(err, domain.ErrEvaluationFailed.Error())
		c.logger.Error(zerr.With(evalErr, "token", token.PathString()))
		return
	}

	artifact.Score = ev.Score
	artifact.Feedback = ev.Feedback
}

func (c *Compiler) newArtifact(token *domain.Token, inputHash, code string) *domain.CompiledArtifact {
	artifact := domain.NewArtifact(token, inputHash, code)
	artifact.Language = c.cfg.Language
	artifact.Framework = c.cfg.Framework
	return artifact
}

// StripFences removes a surrounding Markdown code fence from provider
// output. The opening fence may carry a language tag. Fences inside the code
// are left alone.
func StripFences(raw string) string {
	code := strings.TrimSpace(raw)
	if !strings.HasPrefix(code, "```") {
		return code
	}

	lines := strings.Split(code, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
