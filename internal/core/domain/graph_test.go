package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

func fn(name string, order int, refs ...string) *domain.Token {
	t := domain.NewToken(domain.KindFunction, name, nil, order, "narrative for "+name)
	for _, r := range refs {
		t.AddRef(r)
	}
	return t
}

func TestGraph_Cycle(t *testing.T) {
	tests := []struct {
		name        string
		tokens      []*domain.Token
		wantErr     bool
		errContains string
	}{
		{
			name:        "Self Reference A->A",
			tokens:      []*domain.Token{fn("A", 0, "A")},
			wantErr:     true,
			errContains: "cycle",
		},
		{
			name: "Two Token Cycle A->B->A",
			tokens: []*domain.Token{
				fn("A", 0, "B"),
				fn("B", 1, "A"),
			},
			wantErr:     true,
			errContains: "cycle",
		},
		{
			name: "Three Token Cycle A->B->C->A",
			tokens: []*domain.Token{
				fn("A", 0, "B"),
				fn("B", 1, "C"),
				fn("C", 2, "A"),
			},
			wantErr:     true,
			errContains: "cycle",
		},
		{
			name: "No Cycle A->B->C",
			tokens: []*domain.Token{
				fn("A", 0, "B"),
				fn("B", 1, "C"),
				fn("C", 2),
			},
			wantErr: false,
		},
		{
			name: "Disconnected Components No Cycle",
			tokens: []*domain.Token{
				fn("A", 0, "B"),
				fn("B", 1),
				fn("C", 2, "D"),
				fn("D", 3),
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := domain.BuildGraph(tt.tokens)
			require.NoError(t, err)
			err = g.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGraph_CycleNamesPath(t *testing.T) {
	g, err := domain.BuildGraph([]*domain.Token{
		fn("A", 0, "B"),
		fn("B", 1, "A"),
	})
	require.NoError(t, err)

	err = g.Validate()
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T: %v", err, err)
	assert.Equal(t, "function:A -> function:B -> function:A", zErr.Metadata()["cycle"])
}

func TestGraph_UnresolvedReference(t *testing.T) {
	_, err := domain.BuildGraph([]*domain.Token{
		fn("A", 0, "Ghost"),
	})
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrUnresolvedReference.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T: %v", err, err)
	assert.Equal(t, "Ghost", zErr.Metadata()["reference"])
	assert.Equal(t, "function:A", zErr.Metadata()["token"])
}

func TestGraph_ResolutionFirstTokenWins(t *testing.T) {
	scene := domain.NewToken(domain.KindScene, "Checkout", nil, 0, "checkout flow")
	dupA := domain.NewToken(domain.KindComponent, "Cart", scene, 1, "first cart")
	other := domain.NewToken(domain.KindScene, "Admin", nil, 2, "admin flow")
	dupB := domain.NewToken(domain.KindComponent, "Cart", other, 3, "second cart")
	user := fn("ShowCart", 4, "Cart")

	g, err := domain.BuildGraph([]*domain.Token{scene, dupA, other, dupB, user})
	require.NoError(t, err)

	deps := g.Dependencies(user.Path())
	require.Len(t, deps, 1)
	assert.Equal(t, dupA.Path(), deps[0])
}

func TestGraph_TopologicalSort(t *testing.T) {
	// A -> B, C
	// B -> D
	// C -> D
	// D -> (leaf)
	tA := fn("A", 0, "B", "C")
	tB := fn("B", 1, "D")
	tC := fn("C", 2, "D")
	tD := fn("D", 3)

	g, err := domain.BuildGraph([]*domain.Token{tA, tB, tC, tD})
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	var execOrder []string
	for token := range g.Walk() {
		execOrder = append(execOrder, token.Name)
	}

	// Dependencies must come before their dependents, and among ready tokens
	// document order decides, so the result is exactly D, B, C, A.
	assert.Equal(t, []string{"D", "B", "C", "A"}, execOrder)
}

func TestGraph_TransitiveDependents(t *testing.T) {
	tA := fn("A", 0, "B")
	tB := fn("B", 1, "C")
	tC := fn("C", 2)
	tX := fn("X", 3)

	g, err := domain.BuildGraph([]*domain.Token{tA, tB, tC, tX})
	require.NoError(t, err)

	closure := g.TransitiveDependents(tC.Path())
	assert.Len(t, closure, 3)
	assert.Contains(t, closure, tA.Path())
	assert.Contains(t, closure, tB.Path())
	assert.Contains(t, closure, tC.Path())
	assert.NotContains(t, closure, tX.Path())
}

func TestGraph_DependenciesSortedByDocumentOrder(t *testing.T) {
	tA := fn("A", 0)
	tB := fn("B", 1)
	user := fn("User", 2, "B", "A")

	g, err := domain.BuildGraph([]*domain.Token{tA, tB, user})
	require.NoError(t, err)

	deps := g.Dependencies(user.Path())
	require.Len(t, deps, 2)
	assert.Equal(t, tA.Path(), deps[0])
	assert.Equal(t, tB.Path(), deps[1])
}
