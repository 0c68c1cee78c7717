package term_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcinvent/lcinvent/term"
)

// TestHashConsUniqueness locks in property 1: structurally equal subtrees
// insert to the same NodeId.
func TestHashConsUniqueness(t *testing.T) {
	s := term.NewStore()

	a1 := s.Prim("+")
	a2 := s.Prim("+")
	require.Equal(t, a1, a2, "identical Prim insertions must hash-cons to the same id")

	v1 := s.Var(0)
	app1, err := s.App(a1, v1)
	require.NoError(t, err)
	app2, err := s.App(a2, s.Var(0))
	require.NoError(t, err)
	require.Equal(t, app1, app2, "structurally identical App nodes must share a handle")

	lam1, err := s.Lam(app1)
	require.NoError(t, err)
	lam2, err := s.Lam(app2)
	require.NoError(t, err)
	require.Equal(t, lam1, lam2)
}

// TestAnalysisSoundness locks in property 2 for free_vars and
// inventionless_cost across App and Lam.
func TestAnalysisSoundness(t *testing.T) {
	s := term.NewStore()

	// (lam (+ $0 $1)) : free_vars should be {0} (the $1 reference shifts to 0
	// once $0's binder is crossed).
	plus := s.Prim("+")
	v0 := s.Var(0)
	v1 := s.Var(1)
	inner, err := s.App(plus, v0)
	require.NoError(t, err)
	inner, err = s.App(inner, v1)
	require.NoError(t, err)
	lam, err := s.Lam(inner)
	require.NoError(t, err)

	fv := s.FreeVars(lam)
	require.Equal(t, []int{0}, fv.Slice())

	// Cost: Lam(1) + App(1) + App(1) + Prim(100) + Var(100) + Var(100) = 303
	require.Equal(t, 1+1+1+100+100+100, s.Cost(lam))
}

// TestProgramsRejectsFreeVars locks in the Programs() ingestion invariant
//: a root with any free de Bruijn variable is fatal.
func TestProgramsRejectsFreeVars(t *testing.T) {
	s := term.NewStore()
	v0 := s.Var(0)
	_, err := s.Programs(v0)
	require.ErrorIs(t, err, term.ErrFreeVarsInRoot)
}

// TestProgramsRejectsFreeIVars mirrors the above for invention variables.
func TestProgramsRejectsFreeIVars(t *testing.T) {
	s := term.NewStore()
	iv := s.IVar(0)
	_, err := s.Programs(iv)
	require.ErrorIs(t, err, term.ErrFreeIVarsInRoot)
}

// TestInsertExtractRoundTrip checks Insert/Extract agree structurally.
func TestInsertExtractRoundTrip(t *testing.T) {
	s := term.NewStore()
	expr := &term.Expr{
		Kind: term.KindLam,
		Children: []*term.Expr{{
			Kind: term.KindApp,
			Children: []*term.Expr{
				{Kind: term.KindPrim, Sym: "+"},
				{Kind: term.KindVar, Index: 0},
			},
		}},
	}
	id, err := s.Insert(expr)
	require.NoError(t, err)

	out, err := s.Extract(id)
	require.NoError(t, err)
	require.Equal(t, term.KindLam, out.Kind)
	require.Equal(t, term.KindApp, out.Children[0].Kind)
	require.Equal(t, "+", out.Children[0].Children[0].Sym)
	require.Equal(t, 0, out.Children[0].Children[1].Index)
}

// TestSharedSubtreeDedup checks that two programs sharing a subtree under
// different contexts hash-cons to the same node for the shared part.
func TestSharedSubtreeDedup(t *testing.T) {
	s := term.NewStore()
	plus := s.Prim("+")
	one := s.Prim("1")
	two := s.Prim("2")

	mkPlus1X := func(x term.NodeId) term.NodeId {
		a, err := s.App(plus, one)
		require.NoError(t, err)
		b, err := s.App(a, x)
		require.NoError(t, err)
		return b
	}

	p1 := mkPlus1X(two)
	p2 := mkPlus1X(two)
	require.Equal(t, p1, p2)

	before := s.Len()
	p3 := mkPlus1X(two)
	require.Equal(t, before, s.Len(), "re-inserting an identical subtree must not grow the store")
	require.Equal(t, p1, p3)
}
