// Package app implements the application layer for snc.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/adapters/cache"
	"github.com/WestonVoglesonger/Multifact-V3/internal/adapters/checker"
	"github.com/WestonVoglesonger/Multifact-V3/internal/adapters/llm"
	"github.com/WestonVoglesonger/Multifact-V3/internal/adapters/store"
	"github.com/WestonVoglesonger/Multifact-V3/internal/adapters/telemetry"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
	"github.com/WestonVoglesonger/Multifact-V3/internal/engine/compiler"
	"github.com/WestonVoglesonger/Multifact-V3/internal/engine/orchestrator"
	"github.com/WestonVoglesonger/Multifact-V3/internal/engine/parser"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	watcher      ports.Watcher
	logger       ports.Logger
	parser       *parser.Parser
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, watcher ports.Watcher, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		watcher:      watcher,
		logger:       log,
		parser:       parser.New(),
	}
}

// CompileOptions configuration for the Compile method.
type CompileOptions struct {
	// Full recompiles from scratch, ignoring stored state and cached
	// artifacts.
	Full bool
	// NoCache bypasses artifact cache lookups.
	NoCache bool
	// Parallel overrides the configured parallelism when > 0.
	Parallel int
	// Provider overrides the configured generation provider when non-empty.
	Provider string
}

// Compile runs one compilation pass over the narrative file and returns the
// per-token outcomes. Token failures are reported through the result; the
// error covers setup problems such as unreadable input or invalid
// configuration.
func (a *App) Compile(ctx context.Context, file string, opts CompileOptions) (*domain.CompileResult, error) {
	// 1. Load configuration and parse the document
	cfg, root, doc, err := a.load(file, opts)
	if err != nil {
		return nil, err
	}

	// 2. Mirror span lifecycles into the workspace debug log
	tracer, closeTracer := a.setupTelemetry(root)
	defer closeTracer()

	// 3. Assemble the engine for this run from the loaded configuration
	generator, err := llm.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	validator, err := checker.New(cfg)
	if err != nil {
		return nil, err
	}
	stateStore, err := store.New(cfg, root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = stateStore.Close() }()

	artifactCache, err := cache.New(cfg.CacheSize, stateStore, a.logger)
	if err != nil {
		return nil, err
	}

	comp := compiler.New(generator, validator, artifactCache, a.logger, cfg)
	orch := orchestrator.New(comp, stateStore, tracer, a.logger, cfg)

	// 4. Run and emit the generated sources
	res, err := orch.Run(ctx, doc, orchestrator.RunOptions{
		NoCache: opts.NoCache || opts.Full,
		Fresh:   opts.Full,
	})
	if err != nil {
		return nil, err
	}
	a.emitArtifacts(root, res)

	return res, nil
}

// PlanResult lists what a compile run would do without calling any provider.
type PlanResult struct {
	DocumentPath string   `json:"document_path"`
	TokenPaths   []string `json:"token_paths"`
}

// Plan parses the narrative file and returns its tokens in execution order.
func (a *App) Plan(_ context.Context, file string) (*PlanResult, error) {
	_, _, doc, err := a.load(file, CompileOptions{})
	if err != nil {
		return nil, err
	}

	graph, err := domain.BuildGraph(doc.Tokens)
	if err != nil {
		return nil, err
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	plan := &PlanResult{
		DocumentPath: doc.Path,
		TokenPaths:   make([]string, 0, graph.Len()),
	}
	for token := range graph.Walk() {
		plan.TokenPaths = append(plan.TokenPaths, token.PathString())
	}
	return plan, nil
}

// StatusReport describes how the current narrative differs from its stored
// state.
type StatusReport struct {
	DocumentPath  string   `json:"document_path"`
	StoredVersion int      `json:"stored_version,omitempty"`
	FirstCompile  bool     `json:"first_compile,omitempty"`
	Added         []string `json:"added,omitempty"`
	Changed       []string `json:"changed,omitempty"`
	Removed       []string `json:"removed,omitempty"`
	Unchanged     []string `json:"unchanged,omitempty"`
	Dirty         []string `json:"dirty,omitempty"`
}

// Status parses the narrative file and diffs it against the stored document
// without compiling anything. Dirty lists the tokens a compile run would
// regenerate, in execution order.
func (a *App) Status(ctx context.Context, file string) (*StatusReport, error) {
	cfg, root, doc, err := a.load(file, CompileOptions{})
	if err != nil {
		return nil, err
	}

	graph, err := domain.BuildGraph(doc.Tokens)
	if err != nil {
		return nil, err
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	stateStore, err := store.New(cfg, root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = stateStore.Close() }()

	previous, err := stateStore.LoadDocument(ctx, doc.Path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	report := &StatusReport{DocumentPath: doc.Path}
	if previous == nil {
		report.FirstCompile = true
		for token := range graph.Walk() {
			report.Dirty = append(report.Dirty, token.PathString())
		}
		return report, nil
	}

	report.StoredVersion = previous.Version
	diff := domain.DiffTokens(previous.Tokens, doc.Tokens)
	report.Added = tokenPaths(diff.Added)
	report.Changed = tokenPaths(diff.Changed)
	report.Removed = tokenPaths(diff.Removed)
	report.Unchanged = tokenPaths(diff.Unchanged)

	seeds := make([]domain.InternedString, 0, len(diff.Added)+len(diff.Changed))
	for _, token := range diff.Added {
		seeds = append(seeds, token.Path())
	}
	for _, token := range diff.Changed {
		seeds = append(seeds, token.Path())
	}
	dirty := graph.TransitiveDependents(seeds...)
	for token := range graph.Walk() {
		if _, ok := dirty[token.Path()]; ok {
			report.Dirty = append(report.Dirty, token.PathString())
		}
	}

	return report, nil
}

// Watch compiles the narrative file, then recompiles whenever it or the
// project configuration changes. Each finished pass is handed to onResult.
// Watch blocks until the context is canceled; compile failures are logged
// and keep the watch alive.
func (a *App) Watch(ctx context.Context, file string, opts CompileOptions, onResult func(*domain.CompileResult)) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve narrative path")
	}
	root, err := a.configLoader.DiscoverRoot(filepath.Dir(absPath))
	if err != nil {
		return zerr.Wrap(err, "failed to locate project root")
	}

	// The watcher starts before the initial pass so changes made while it
	// runs are not lost.
	if err := a.watcher.Start(ctx, root); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	defer func() { _ = a.watcher.Stop() }()

	a.runWatchPass(ctx, file, opts, onResult)
	// Only the initial pass honors Full.
	opts.Full = false

	a.logger.Info(fmt.Sprintf("watching %s", file))
	for event := range a.watcher.Events() {
		if !watchRelevant(event, absPath) {
			continue
		}
		if event.Operation == ports.OpRemove || event.Operation == ports.OpRename {
			a.logger.Warn(fmt.Sprintf("%s disappeared, waiting for it to return", file))
			continue
		}
		a.runWatchPass(ctx, file, opts, onResult)
	}

	return nil
}

// runWatchPass runs one compile pass inside the watch loop.
func (a *App) runWatchPass(ctx context.Context, file string, opts CompileOptions, onResult func(*domain.CompileResult)) {
	res, err := a.Compile(ctx, file, opts)
	if err != nil {
		a.logger.Error(err)
		return
	}
	if onResult != nil {
		onResult(res)
	}
}

// watchRelevant reports whether a watch event should trigger a recompile:
// the narrative file itself or any project configuration file.
func watchRelevant(event ports.WatchEvent, narrativePath string) bool {
	if event.Path == narrativePath {
		return true
	}
	return filepath.Base(event.Path) == domain.ConfigFileName
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Store bool
	Log   bool
	All   bool
}

// Clean removes workspace state based on the provided options.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to resolve working directory")
	}
	root, err := a.configLoader.DiscoverRoot(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to locate project root")
	}

	var errs error

	// Helper to remove a path and log the action
	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.All {
		remove(filepath.Join(root, domain.DefaultWorkspacePath()), "workspace")
		return errs
	}

	if options.Store {
		remove(filepath.Join(root, domain.DefaultStorePath()), "artifact store")
		remove(filepath.Join(root, domain.DefaultStateDBPath()), "state database")
		remove(filepath.Join(root, domain.DefaultArtifactsPath()), "emitted artifacts")
	}

	if options.Log {
		remove(filepath.Join(root, domain.DefaultDebugLogPath()), "debug log")
	}

	return errs
}

// load resolves configuration, project root and the parsed document for one
// narrative file.
func (a *App) load(file string, opts CompileOptions) (*domain.Config, string, *domain.Document, error) {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return nil, "", nil, zerr.Wrap(err, "failed to resolve narrative path")
	}

	content, err := os.ReadFile(absPath) // #nosec G304 -- user-supplied CLI argument
	if err != nil {
		readErr := zerr.Wrap(err, "failed to read narrative file")
		return nil, "", nil, zerr.With(readErr, "file", file)
	}

	dir := filepath.Dir(absPath)
	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, "", nil, zerr.Wrap(err, "failed to load configuration")
	}
	root, err := a.configLoader.DiscoverRoot(dir)
	if err != nil {
		return nil, "", nil, zerr.Wrap(err, "failed to locate project root")
	}

	// Flag overrides trump snc.yaml; validation re-runs on the result.
	if opts.Parallel > 0 {
		cfg.Parallelism = opts.Parallel
	}
	if opts.Provider != "" {
		cfg.Provider = opts.Provider
	}
	if opts.Parallel > 0 || opts.Provider != "" {
		if err := cfg.Validate(); err != nil {
			return nil, "", nil, err
		}
	}

	tokens, err := a.parser.Parse(string(content))
	if err != nil {
		return nil, "", nil, err
	}

	doc := domain.NewDocument(documentPath(root, absPath), string(content))
	doc.Tokens = tokens
	return cfg, root, doc, nil
}

// documentPath keys stored state by the path relative to the project root,
// so runs from different working directories update the same state.
func documentPath(root, absPath string) string {
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		return absPath
	}
	return rel
}

// setupTelemetry routes OTel spans into the workspace debug log. A workspace
// that cannot be written degrades to no tracing rather than failing the run.
func (a *App) setupTelemetry(root string) (ports.Tracer, func()) {
	logPath := filepath.Join(root, domain.DefaultDebugLogPath())
	if err := os.MkdirAll(filepath.Dir(logPath), domain.DirPerm); err != nil {
		a.logger.Warn(fmt.Sprintf("debug log disabled: %v", err))
		return telemetry.NewNoOpTracer(), func() {}
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.PrivateFilePerm) // #nosec G304 -- path rooted in the discovered project
	if err != nil {
		a.logger.Warn(fmt.Sprintf("debug log disabled: %v", err))
		return telemetry.NewNoOpTracer(), func() {}
	}

	tp := setupOTel(telemetry.NewBridge(logFile))
	cleanup := func() {
		_ = tp.Shutdown(context.Background())
		_ = logFile.Close()
	}
	return telemetry.NewOTelTracer("snc"), cleanup
}

// setupOTel configures the global OpenTelemetry SDK with the debug log bridge.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	// All started spans report their lifecycle to the bridge.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}

// emitArtifacts writes the code of valid artifacts under .snc/artifacts so
// generated sources are inspectable without the store. Failures are logged,
// never fatal for the run.
func (a *App) emitArtifacts(root string, res *domain.CompileResult) {
	dir := filepath.Join(root, domain.DefaultArtifactsPath())
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		a.logger.Warn(fmt.Sprintf("artifact emission disabled: %v", err))
		return
	}

	for _, outcome := range res.Outcomes {
		if outcome.Artifact == nil || !outcome.Artifact.Valid {
			continue
		}
		name := artifactFileName(outcome.TokenPath, outcome.Artifact.Language)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(outcome.Artifact.Code), domain.FilePerm); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to write artifact %s: %v", name, err))
		}
	}
}

// artifactFileName flattens a token path into a file name for the artifacts
// directory.
func artifactFileName(tokenPath, language string) string {
	return strings.ReplaceAll(tokenPath, "/", "__") + artifactExtension(language)
}

// artifactExtension maps a target language onto a source file extension.
func artifactExtension(language string) string {
	switch language {
	case "typescript":
		return ".ts"
	case "javascript":
		return ".js"
	default:
		return ".txt"
	}
}

// tokenPaths renders a token list as path strings.
func tokenPaths(tokens []*domain.Token) []string {
	paths := make([]string, len(tokens))
	for i, token := range tokens {
		paths[i] = token.PathString()
	}
	return paths
}
