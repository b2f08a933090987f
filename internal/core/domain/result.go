package domain

import "time"

// TokenOutcome records the terminal state of one token in a compile run.
type TokenOutcome struct {
	TokenPath string            `json:"token_path"`
	Status    TokenStatus       `json:"status"`
	Attempts  int               `json:"attempts,omitempty"`
	Artifact  *CompiledArtifact `json:"artifact,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// CompileResult aggregates the outcome of a compile run over one document.
// Compiled counts tokens that produced valid code on the first attempt,
// Repaired those that needed at least one fix round. Counts and outcomes
// always cover every scheduled token; a failed run is reported, not hidden.
type CompileResult struct {
	DocumentPath string         `json:"document_path"`
	Compiled     int            `json:"compiled"`
	CacheHits    int            `json:"cache_hits"`
	Repaired     int            `json:"repaired"`
	Failed       int            `json:"failed"`
	Skipped      int            `json:"skipped"`
	Interrupted  bool           `json:"interrupted,omitempty"`
	Duration     time.Duration  `json:"duration_ns"`
	Outcomes     []TokenOutcome `json:"outcomes"`
}

// Record appends an outcome and bumps the matching counter.
func (r *CompileResult) Record(outcome TokenOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	switch outcome.Status {
	case TokenStatusValid:
		if outcome.Attempts > 1 {
			r.Repaired++
		} else {
			r.Compiled++
		}
	case TokenStatusCached:
		r.CacheHits++
	case TokenStatusFailed:
		r.Failed++
	case TokenStatusSkipped:
		r.Skipped++
	}
}

// Ok reports whether every scheduled token produced valid code.
func (r *CompileResult) Ok() bool {
	return !r.Interrupted && r.Failed == 0 && r.Skipped == 0
}

// Total returns the number of tokens the run accounted for.
func (r *CompileResult) Total() int {
	return len(r.Outcomes)
}
