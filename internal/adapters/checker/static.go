package checker

import (
	"context"
	"io"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// Static accepts every artifact without running a tool.
type Static struct{}

var _ ports.Validator = (*Static)(nil)

// NewStatic returns a validator that reports no findings.
func NewStatic() *Static {
	return &Static{}
}

// Check reports the code as clean.
func (s *Static) Check(_ context.Context, _, _ string, _ io.Writer) ([]domain.Diagnostic, error) {
	return nil, nil
}
