// Package orchestrator schedules token compilation over the reference graph:
// bounded parallelism, skip propagation for failed dependencies and
// incremental recompilation driven by the previous document version.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// Orchestrator runs full compilation passes over parsed documents.
type Orchestrator struct {
	compiler ports.TokenCompiler
	store    ports.StateStore
	tracer   ports.Tracer
	logger   ports.Logger
	cfg      *domain.Config
}

// New creates an Orchestrator with the given collaborators.
func New(
	compiler ports.TokenCompiler,
	store ports.StateStore,
	tracer ports.Tracer,
	logger ports.Logger,
	cfg *domain.Config,
) *Orchestrator {
	return &Orchestrator{
		compiler: compiler,
		store:    store,
		tracer:   tracer,
		logger:   logger,
		cfg:      cfg,
	}
}

// RunOptions adjusts a single compilation run.
type RunOptions struct {
	// NoCache bypasses artifact cache lookups. Results are still stored.
	NoCache bool

	// Fresh treats the document as its first version even when stored state
	// exists. The run replaces that state on save.
	Fresh bool
}

// Run compiles every token of the document and returns an outcome for each
// one. Compilation failures are reported through the result, not the error;
// the error covers setup problems such as an invalid graph or an unreadable
// state store.
//
// When the context is canceled, provider calls already in flight finish, no
// further work starts, and every token without a terminal outcome is
// reported as skipped with the result marked interrupted.
func (o *Orchestrator) Run(ctx context.Context, doc *domain.Document, opts RunOptions) (*domain.CompileResult, error) {
	start := time.Now()

	graph, err := domain.BuildGraph(doc.Tokens)
	if err != nil {
		return nil, err
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	if opts.Fresh {
		o.logger.Info(fmt.Sprintf("%s: full compilation, %d token(s)", doc.Path, len(doc.Tokens)))
	} else if err := o.carryOver(ctx, doc, graph); err != nil {
		return nil, err
	}

	state := newRunState(ctx, o, graph, doc, opts)

	planned := make([]string, 0, graph.Len())
	for token := range graph.Walk() {
		planned = append(planned, token.PathString())
	}
	o.tracer.EmitPlan(ctx, planned)

	state.runLoop()

	res := state.res
	res.Duration = time.Since(start)

	if !res.Interrupted {
		doc.UpdatedAt = time.Now().UTC()
		if err := o.store.SaveDocument(ctx, doc); err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
		}
	}

	return res, nil
}

// carryOver merges identity and version from the previously stored document
// and logs what the new version changes.
func (o *Orchestrator) carryOver(ctx context.Context, doc *domain.Document, graph *domain.Graph) error {
	previous, err := o.store.LoadDocument(ctx, doc.Path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	if previous == nil {
		o.logger.Info(fmt.Sprintf("%s: first compilation, %d token(s)", doc.Path, len(doc.Tokens)))
		return nil
	}

	doc.ID = previous.ID
	doc.Version = previous.Version + 1
	doc.CreatedAt = previous.CreatedAt

	diff := domain.DiffTokens(previous.Tokens, doc.Tokens)

	seeds := make([]domain.InternedString, 0, len(diff.Added)+len(diff.Changed))
	for _, t := range diff.Added {
		seeds = append(seeds, t.Path())
	}
	for _, t := range diff.Changed {
		seeds = append(seeds, t.Path())
	}
	dirty := graph.TransitiveDependents(seeds...)

	o.logger.Info(fmt.Sprintf(
		"%s: version %d, %d added, %d changed, %d removed, %d of %d token(s) need fresh compilation",
		doc.Path, doc.Version,
		len(diff.Added), len(diff.Changed), len(diff.Removed),
		len(dirty), len(doc.Tokens),
	))
	return nil
}

// result is one finished token compilation.
type result struct {
	path     domain.InternedString
	artifact *domain.CompiledArtifact
	err      error
}

type runState struct {
	ctx   context.Context
	o     *Orchestrator
	graph *domain.Graph
	doc   *domain.Document
	opts  RunOptions

	inDegree  map[domain.InternedString]int
	status    map[domain.InternedString]domain.TokenStatus
	artifacts map[domain.InternedString]*domain.CompiledArtifact
	ready     []domain.InternedString
	active    int
	resultsCh chan result
	res       *domain.CompileResult
}

func newRunState(ctx context.Context, o *Orchestrator, graph *domain.Graph, doc *domain.Document, opts RunOptions) *runState {
	state := &runState{
		ctx:       ctx,
		o:         o,
		graph:     graph,
		doc:       doc,
		opts:      opts,
		inDegree:  make(map[domain.InternedString]int, graph.Len()),
		status:    make(map[domain.InternedString]domain.TokenStatus, graph.Len()),
		artifacts: make(map[domain.InternedString]*domain.CompiledArtifact, graph.Len()),
		resultsCh: make(chan result, o.cfg.Parallelism),
		res:       &domain.CompileResult{DocumentPath: doc.Path},
	}

	// Seed the ready queue in execution order so equal-depth tokens start
	// in document order.
	for token := range graph.Walk() {
		path := token.Path()
		state.status[path] = domain.TokenStatusPending
		state.inDegree[path] = len(graph.Dependencies(path))
		if state.inDegree[path] == 0 {
			state.ready = append(state.ready, path)
		}
	}

	return state
}

func (state *runState) runLoop() {
	done := state.ctx.Done()
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			break
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-done:
			// In-flight tokens drain through the results channel; a nil
			// channel keeps this case from firing again.
			done = nil
		}
	}

	if state.ctx.Err() != nil {
		state.res.Interrupted = true
	}
	state.finishRemaining()
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.o.cfg.Parallelism && state.ctx.Err() == nil {
		path := state.ready[0]
		state.ready = state.ready[1:]

		// Skip propagation may have terminalized a queued token.
		if state.status[path] != domain.TokenStatusPending {
			continue
		}

		req := state.buildRequest(path)
		state.status[path] = domain.TokenStatusGenerating
		state.active++
		go state.compileToken(path, req)
	}
}

// buildRequest snapshots the token and its dependency artifacts. It must run
// on the loop goroutine; workers never touch the shared maps.
func (state *runState) buildRequest(path domain.InternedString) ports.CompileRequest {
	depPaths := state.graph.Dependencies(path)
	deps := make([]ports.CompiledDependency, len(depPaths))
	for i, depPath := range depPaths {
		deps[i] = ports.CompiledDependency{
			Token:    state.graph.Token(depPath),
			Artifact: state.artifacts[depPath],
		}
	}
	return ports.CompileRequest{
		Token:        state.graph.Token(path),
		Dependencies: deps,
		NoCache:      state.opts.NoCache,
	}
}

func (state *runState) compileToken(path domain.InternedString, req ports.CompileRequest) {
	// Close the span before the result is sent so the loop never finishes
	// with a span still open.
	res := func() result {
		ctx, span := state.o.tracer.Start(state.ctx, path.String())
		defer span.End()

		artifact, err := state.o.compiler.Compile(ctx, req, span)
		if err != nil {
			span.RecordError(err)
			return result{path: path, err: err}
		}
		if artifact.CacheHit {
			span.SetAttribute("snc.cached", true)
		}
		if !artifact.Valid {
			span.RecordError(zerr.With(domain.ErrValidationFailed, "token", path.String()))
		}
		return result{path: path, artifact: artifact}
	}()

	state.resultsCh <- res
}

func (state *runState) handleResult(res result) {
	state.active--

	switch {
	case res.err != nil && state.ctx.Err() != nil:
		// The run is being canceled; the error is fallout, not a failure.
		state.terminalize(res.path, domain.TokenOutcome{
			TokenPath: res.path.String(),
			Status:    domain.TokenStatusSkipped,
			Error:     "compilation interrupted",
		})

	case res.err != nil:
		state.terminalize(res.path, domain.TokenOutcome{
			TokenPath: res.path.String(),
			Status:    domain.TokenStatusFailed,
			Error:     res.err.Error(),
		})
		state.o.logger.Error(res.err)
		state.skipDependents(res.path)

	case !res.artifact.Valid:
		state.artifacts[res.path] = res.artifact
		state.persistArtifact(res.artifact)
		state.terminalize(res.path, domain.TokenOutcome{
			TokenPath: res.path.String(),
			Status:    domain.TokenStatusFailed,
			Attempts:  res.artifact.Attempts,
			Artifact:  res.artifact,
			Error:     fmt.Sprintf("%s after %d attempt(s)", domain.ErrValidationFailed.Error(), res.artifact.Attempts),
		})
		state.skipDependents(res.path)

	default:
		state.artifacts[res.path] = res.artifact
		state.persistArtifact(res.artifact)

		status := domain.TokenStatusValid
		if res.artifact.CacheHit {
			status = domain.TokenStatusCached
		}
		state.terminalize(res.path, domain.TokenOutcome{
			TokenPath: res.path.String(),
			Status:    status,
			Attempts:  res.artifact.Attempts,
			Artifact:  res.artifact,
		})

		for _, dep := range state.graph.Dependents(res.path) {
			state.inDegree[dep]--
			if state.inDegree[dep] == 0 && state.status[dep] == domain.TokenStatusPending {
				state.ready = append(state.ready, dep)
			}
		}
	}
}

// terminalize records the outcome and final status of one token.
func (state *runState) terminalize(path domain.InternedString, outcome domain.TokenOutcome) {
	state.status[path] = outcome.Status
	state.res.Record(outcome)
}

// skipDependents marks every transitive dependent of a failed token as
// skipped. Tokens already terminal keep their outcome.
func (state *runState) skipDependents(path domain.InternedString) {
	queue := []domain.InternedString{path}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dep := range state.graph.Dependents(current) {
			if state.status[dep] != domain.TokenStatusPending {
				continue
			}
			state.terminalize(dep, domain.TokenOutcome{
				TokenPath: dep.String(),
				Status:    domain.TokenStatusSkipped,
				Error:     fmt.Sprintf("dependency %s did not produce valid code", current.String()),
			})
			queue = append(queue, dep)
		}
	}
}

// finishRemaining accounts for tokens that never reached a terminal state,
// which only happens when the run is interrupted.
func (state *runState) finishRemaining() {
	for token := range state.graph.Walk() {
		path := token.Path()
		if state.status[path].IsTerminal() {
			continue
		}
		state.terminalize(path, domain.TokenOutcome{
			TokenPath: path.String(),
			Status:    domain.TokenStatusSkipped,
			Error:     "compilation interrupted",
		})
	}
}

// persistArtifact stores a terminal artifact for status reporting. Store
// problems are logged, never fatal for the run. Artifacts of in-flight
// tokens are kept even when the run is being canceled.
func (state *runState) persistArtifact(artifact *domain.CompiledArtifact) {
	ctx := context.WithoutCancel(state.ctx)
	if err := state.o.store.PutArtifact(ctx, artifact); err != nil {
		state.o.logger.Error(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()))
	}
}
