package ports

import (
	"context"
	"io"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

// Validator defines the interface for checking generated code.
//
//go:generate mockgen -source=validator.go -destination=mocks/mock_validator.go -package=mocks
type Validator interface {
	// Check validates code with the configured toolchain and against the
	// expectations the narrative states. The returned diagnostics describe
	// findings in the code; an empty slice means the code is valid. The
	// error reports the checker itself failing to run, not findings.
	//
	// Raw tool output is streamed to output when it is non-nil.
	Check(ctx context.Context, code, narrative string, output io.Writer) ([]domain.Diagnostic, error)
}
