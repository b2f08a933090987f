package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Provider names accepted in configuration.
const (
	// ProviderOpenAI is an OpenAI-compatible chat completions endpoint.
	ProviderOpenAI = "openai"
	// ProviderGemini is the Google Gemini API.
	ProviderGemini = "gemini"
	// ProviderStatic is the deterministic offline provider.
	ProviderStatic = "static"
)

// Store drivers accepted in configuration.
const (
	// StoreDriverFile persists state as JSON files under the workspace store.
	StoreDriverFile = "file"
	// StoreDriverSQLite persists state in a sqlite database.
	StoreDriverSQLite = "sqlite"
)

// Checker kinds accepted in configuration.
const (
	// CheckerCommand validates artifacts with an external compiler command.
	CheckerCommand = "command"
	// CheckerStatic accepts every artifact without running a tool.
	CheckerStatic = "static"
)

// CheckerConfig describes how generated code is validated.
type CheckerConfig struct {
	Kind    string
	Command string
	Strict  bool
}

// Config is the resolved engine configuration. Loaders fill it from the
// project file and the environment; the rest of the engine treats it as
// immutable.
type Config struct {
	Provider         string
	Model            string
	BaseURL          string
	APIKeyEnv        string
	Language         string
	Framework        string
	Style            string
	MaxAttempts      int
	Parallelism      int
	Timeout          time.Duration
	TransientRetries int
	Evaluate         bool
	CacheSize        int
	StoreDriver      string
	Checker          CheckerConfig
}

// DefaultConfig returns the configuration used when no project file overrides
// a value.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderOpenAI,
		Model:       "gpt-4o-mini",
		APIKeyEnv:   "OPENAI_API_KEY",
		Language:    "typescript",
		Framework:   "angular",
		MaxAttempts: 3,
		Parallelism: 4,
		Timeout:     60 * time.Second,
		CacheSize:   256,
		StoreDriver: StoreDriverFile,
		Checker: CheckerConfig{
			Kind:    CheckerCommand,
			Command: "tsc",
		},
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderStatic:
	default:
		return zerr.With(ErrConfigInvalid, "provider", c.Provider)
	}
	switch c.StoreDriver {
	case StoreDriverFile, StoreDriverSQLite:
	default:
		return zerr.With(ErrConfigInvalid, "store", c.StoreDriver)
	}
	switch c.Checker.Kind {
	case CheckerCommand, CheckerStatic:
	default:
		return zerr.With(ErrConfigInvalid, "checker", c.Checker.Kind)
	}
	if c.MaxAttempts < 1 {
		return zerr.With(ErrConfigInvalid, "max_attempts", c.MaxAttempts)
	}
	if c.Parallelism < 1 {
		return zerr.With(ErrConfigInvalid, "parallelism", c.Parallelism)
	}
	if c.Timeout <= 0 {
		return zerr.With(ErrConfigInvalid, "timeout", c.Timeout.String())
	}
	if c.TransientRetries < 0 {
		return zerr.With(ErrConfigInvalid, "transient_retries", c.TransientRetries)
	}
	if c.CacheSize < 1 {
		return zerr.With(ErrConfigInvalid, "cache_size", c.CacheSize)
	}
	if c.Language == "" {
		return zerr.With(ErrConfigInvalid, "language", c.Language)
	}
	return nil
}
