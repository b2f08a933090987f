package domain

import "go.trai.ch/zerr"

var (
	// ErrSyntax is returned when a narrative document contains a malformed header line.
	ErrSyntax = zerr.New("syntax error in narrative document")

	// ErrDuplicateToken is returned when two sibling tokens share a name.
	ErrDuplicateToken = zerr.New("duplicate token name in scope")

	// ErrUnresolvedReference is returned when a token references a name that no token carries.
	ErrUnresolvedReference = zerr.New("unresolved reference")

	// ErrCyclicDependency is returned when the reference graph contains a cycle.
	ErrCyclicDependency = zerr.New("dependency cycle detected")

	// ErrTokenNotFound is returned when a requested token is not part of the graph.
	ErrTokenNotFound = zerr.New("token not found")

	// ErrGeneration is returned when the generation capability fails for transient reasons
	// (provider unreachable, malformed completion, timeout). Never cached.
	ErrGeneration = zerr.New("code generation failed")

	// ErrCheckerFailed is returned when the validation tool itself could not run.
	ErrCheckerFailed = zerr.New("checker execution failed")

	// ErrValidationFailed is returned when an artifact exhausted its repair attempts.
	ErrValidationFailed = zerr.New("artifact failed validation")

	// ErrDependencyNotReady is returned when a token is compiled before all of its
	// dependencies have valid artifacts.
	ErrDependencyNotReady = zerr.New("dependency artifact not ready")

	// ErrEvaluationFailed is returned when scoring a valid artifact fails.
	ErrEvaluationFailed = zerr.New("artifact evaluation failed")

	// ErrCompilationFailed is returned when a compilation run finished with failures.
	ErrCompilationFailed = zerr.New("compilation finished with failures")

	// ErrCacheMiss is returned when a requested item is not found in the cache.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrUnknownProvider is returned when the configured generation provider is not known.
	ErrUnknownProvider = zerr.New("unknown generation provider")

	// ErrMissingAPIKey is returned when the configured provider requires an API key
	// and none is present in the environment.
	ErrMissingAPIKey = zerr.New("missing provider API key")

	// ErrUnknownStoreDriver is returned when the configured store driver is not known.
	ErrUnknownStoreDriver = zerr.New("unknown store driver, expected 'file' or 'sqlite'")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file contains invalid values.
	ErrConfigInvalid = zerr.New("invalid config value")

	// ErrDocumentNotFound is returned when no stored state exists for a document.
	ErrDocumentNotFound = zerr.New("document not found")

	// ErrArtifactNotFound is returned when a requested artifact is not in the store.
	ErrArtifactNotFound = zerr.New("artifact not found")

	// ErrStoreCreateFailed is returned when the state store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state store directory")

	// ErrStoreReadFailed is returned when state cannot be read from the store.
	ErrStoreReadFailed = zerr.New("failed to read from state store")

	// ErrStoreWriteFailed is returned when state cannot be written to the store.
	ErrStoreWriteFailed = zerr.New("failed to write to state store")

	// ErrStoreMarshalFailed is returned when state cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal state")

	// ErrStoreUnmarshalFailed is returned when stored state cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal state")

	// ErrStoreMigrateFailed is returned when the sqlite schema migration fails.
	ErrStoreMigrateFailed = zerr.New("failed to migrate state store schema")
)
