package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenStatus represents the lifecycle state of a token in the compile pipeline.
type TokenStatus string

const (
	// TokenStatusPending indicates the token is waiting for dependencies or scheduling.
	TokenStatusPending TokenStatus = "pending"
	// TokenStatusGenerating indicates code is being generated for the token.
	TokenStatusGenerating TokenStatus = "generating"
	// TokenStatusValidating indicates generated code is being checked.
	TokenStatusValidating TokenStatus = "validating"
	// TokenStatusValid indicates the token compiled to code that passed validation.
	TokenStatusValid TokenStatus = "valid"
	// TokenStatusInvalid indicates the latest attempt failed validation and a repair attempt is due.
	TokenStatusInvalid TokenStatus = "invalid"
	// TokenStatusFailed indicates all repair attempts were exhausted without valid code.
	TokenStatusFailed TokenStatus = "failed"
	// TokenStatusCached indicates the artifact was reused from the cache without a generation call.
	TokenStatusCached TokenStatus = "cached"
	// TokenStatusSkipped indicates the token was not compiled because a dependency did not produce valid code.
	TokenStatusSkipped TokenStatus = "skipped"
)

// IsTerminal checks if a status is a terminal state (Valid, Failed, Cached, Skipped).
func (s TokenStatus) IsTerminal() bool {
	switch s {
	case TokenStatusValid, TokenStatusFailed, TokenStatusCached, TokenStatusSkipped:
		return true
	default:
		return false
	}
}

// NormalizeTokenStatus converts a string to a TokenStatus, defaulting to pending if unknown.
// This is useful for deserialization or API boundaries.
func NormalizeTokenStatus(s string) TokenStatus {
	switch strings.ToLower(s) {
	case string(TokenStatusPending):
		return TokenStatusPending
	case string(TokenStatusGenerating):
		return TokenStatusGenerating
	case string(TokenStatusValidating):
		return TokenStatusValidating
	case string(TokenStatusValid):
		return TokenStatusValid
	case string(TokenStatusInvalid):
		return TokenStatusInvalid
	case string(TokenStatusFailed):
		return TokenStatusFailed
	case string(TokenStatusCached):
		return TokenStatusCached
	case string(TokenStatusSkipped):
		return TokenStatusSkipped
	default:
		return TokenStatusPending
	}
}

// Diagnostic is a single validation finding in generated code.
type Diagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Char    int    `json:"char"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// String renders the diagnostic in compiler notation, e.g.
// "artifact.ts(12,5): TS2322: Type 'string' is not assignable to type 'number'".
func (d Diagnostic) String() string {
	if d.Code == "" {
		return fmt.Sprintf("%s(%d,%d): %s", d.File, d.Line, d.Char, d.Message)
	}
	return fmt.Sprintf("%s(%d,%d): %s: %s", d.File, d.Line, d.Char, d.Code, d.Message)
}

// CompiledArtifact is the code produced for a single token, together with the
// provenance needed for caching and incremental recompilation.
type CompiledArtifact struct {
	ID          uuid.UUID    `json:"id"`
	TokenID     uuid.UUID    `json:"token_id"`
	TokenPath   string       `json:"token_path"`
	Language    string       `json:"language"`
	Framework   string       `json:"framework,omitempty"`
	Code        string       `json:"code"`
	Valid       bool         `json:"valid"`
	CacheHit    bool         `json:"cache_hit"`
	InputHash   string       `json:"input_hash"`
	CodeHash    string       `json:"code_hash"`
	Score       float64      `json:"score,omitempty"`
	Feedback    string       `json:"feedback,omitempty"`
	Attempts    int          `json:"attempts"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NewArtifact creates an artifact for the given token and code. CodeHash is
// derived from the code so dependents can fold it into their input hashes.
func NewArtifact(token *Token, inputHash, code string) *CompiledArtifact {
	return &CompiledArtifact{
		ID:        uuid.New(),
		TokenID:   token.ID,
		TokenPath: token.PathString(),
		Code:      code,
		InputHash: inputHash,
		CodeHash:  HashContent(code),
		CreatedAt: time.Now().UTC(),
	}
}

// CacheEntry maps an input hash to the artifact it produced. Entries cover
// valid artifacts and terminal failures alike; transient generation errors are
// never cached. Entries are immutable after insert.
type CacheEntry struct {
	InputHash string            `json:"input_hash"`
	Artifact  *CompiledArtifact `json:"artifact"`
	CreatedAt time.Time         `json:"created_at"`
}
