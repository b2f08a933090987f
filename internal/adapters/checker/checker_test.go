package checker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("Command", func(t *testing.T) {
		cfg := domain.DefaultConfig()
		cfg.Checker.Kind = domain.CheckerCommand

		validator, err := New(cfg)
		require.NoError(t, err)
		assert.IsType(t, &Command{}, validator)
	})

	t.Run("Static", func(t *testing.T) {
		cfg := domain.DefaultConfig()
		cfg.Checker.Kind = domain.CheckerStatic

		validator, err := New(cfg)
		require.NoError(t, err)
		assert.IsType(t, &Static{}, validator)
	})

	t.Run("Unknown kind", func(t *testing.T) {
		cfg := domain.DefaultConfig()
		cfg.Checker.Kind = "quantum"

		validator, err := New(cfg)
		require.ErrorContains(t, err, domain.ErrConfigInvalid.Error())
		assert.Nil(t, validator)
	})
}

func TestStatic_Check(t *testing.T) {
	validator := NewStatic()

	diags, err := validator.Check(context.Background(), "not even typescript {{{", "a component named Ghost", nil)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestNewCommand_DefaultTool(t *testing.T) {
	checker := NewCommand("", false)
	assert.Equal(t, []string{"tsc"}, checker.argv)
}
