package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

func TestDiffTokens(t *testing.T) {
	previous := []*domain.Token{
		fn("Unchanged", 0),
		fn("Changed", 1),
		fn("Removed", 2),
	}
	current := []*domain.Token{
		fn("Unchanged", 0),
		domain.NewToken(domain.KindFunction, "Changed", nil, 1, "new narrative"),
		fn("Added", 2),
	}

	res := domain.DiffTokens(previous, current)

	require.Len(t, res.Unchanged, 1)
	assert.Equal(t, "Unchanged", res.Unchanged[0].Name)

	require.Len(t, res.Changed, 1)
	assert.Equal(t, "Changed", res.Changed[0].Name)

	require.Len(t, res.Added, 1)
	assert.Equal(t, "Added", res.Added[0].Name)

	require.Len(t, res.Removed, 1)
	assert.Equal(t, "Removed", res.Removed[0].Name)
}

func TestDiffTokens_CarriesIdentity(t *testing.T) {
	oldUnchanged := fn("Unchanged", 0)
	oldChanged := fn("Changed", 1)

	newUnchanged := fn("Unchanged", 0)
	newChanged := domain.NewToken(domain.KindFunction, "Changed", nil, 1, "new narrative")
	added := fn("Added", 2)

	res := domain.DiffTokens(
		[]*domain.Token{oldUnchanged, oldChanged},
		[]*domain.Token{newUnchanged, newChanged, added},
	)

	require.Len(t, res.Unchanged, 1)
	assert.Equal(t, oldUnchanged.ID, res.Unchanged[0].ID)

	require.Len(t, res.Changed, 1)
	assert.Equal(t, oldChanged.ID, res.Changed[0].ID)

	require.Len(t, res.Added, 1)
	assert.NotEqual(t, oldUnchanged.ID, res.Added[0].ID)
	assert.NotEqual(t, oldChanged.ID, res.Added[0].ID)
}

func TestDiffTokens_RefChangeIsChange(t *testing.T) {
	old := fn("A", 0, "B")
	upd := fn("A", 0, "C")

	res := domain.DiffTokens([]*domain.Token{old}, []*domain.Token{upd})

	assert.Empty(t, res.Unchanged)
	require.Len(t, res.Changed, 1)
	assert.Equal(t, old.ID, res.Changed[0].ID)
}

func TestCompileResult_Record(t *testing.T) {
	var res domain.CompileResult

	res.Record(domain.TokenOutcome{TokenPath: "function:A", Status: domain.TokenStatusValid, Attempts: 1})
	res.Record(domain.TokenOutcome{TokenPath: "function:B", Status: domain.TokenStatusValid, Attempts: 3})
	res.Record(domain.TokenOutcome{TokenPath: "function:C", Status: domain.TokenStatusCached})
	res.Record(domain.TokenOutcome{TokenPath: "function:D", Status: domain.TokenStatusFailed, Error: "boom"})
	res.Record(domain.TokenOutcome{TokenPath: "function:E", Status: domain.TokenStatusSkipped})

	assert.Equal(t, 1, res.Compiled)
	assert.Equal(t, 1, res.Repaired)
	assert.Equal(t, 1, res.CacheHits)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 5, res.Total())
	assert.False(t, res.Ok())
}

func TestTokenStatus_IsTerminal(t *testing.T) {
	terminal := []domain.TokenStatus{
		domain.TokenStatusValid,
		domain.TokenStatusFailed,
		domain.TokenStatusCached,
		domain.TokenStatusSkipped,
	}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "expected %s to be terminal", s)
	}

	working := []domain.TokenStatus{
		domain.TokenStatusPending,
		domain.TokenStatusGenerating,
		domain.TokenStatusValidating,
		domain.TokenStatusInvalid,
	}
	for _, s := range working {
		assert.False(t, s.IsTerminal(), "expected %s to be non-terminal", s)
	}
}
