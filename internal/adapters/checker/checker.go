// Package checker validates generated artifacts. The command checker writes
// an artifact into a throwaway workspace next to framework declaration stubs
// and runs an external compiler over it; the static checker accepts every
// artifact for offline runs where no toolchain is installed.
package checker

import (
	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// New builds the validator selected by cfg.Checker.Kind.
func New(cfg *domain.Config) (ports.Validator, error) {
	switch cfg.Checker.Kind {
	case domain.CheckerCommand:
		return NewCommand(cfg.Checker.Command, cfg.Checker.Strict), nil
	case domain.CheckerStatic:
		return NewStatic(), nil
	default:
		return nil, zerr.With(domain.ErrConfigInvalid, "checker", cfg.Checker.Kind)
	}
}
