package sexpr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcinvent/lcinvent/sexpr"
	"github.com/lcinvent/lcinvent/term"
)

func TestPrintMatchesCurriedInput(t *testing.T) {
	s := term.NewStore()
	f := s.Prim("f")
	v0 := s.Var(0)
	i1 := s.IVar(1)
	inner, err := s.App(f, v0)
	require.NoError(t, err)
	root, err := s.App(inner, i1)
	require.NoError(t, err)

	require.Equal(t, "(app (app f $0) #1)", sexpr.Print(s, root))
}

// TestParsePrintRoundTrip checks Parse -> Insert -> Print returns the
// canonical curried form of the input, regardless of whether the input used
// curried or uncurried syntax.
func TestParsePrintRoundTrip(t *testing.T) {
	for _, src := range []string{
		"(app (app f $0) $1)",
		"(f $0 $1)",
		"(lam (g #0))",
		"(programs (lam (f $0)) (g a b))",
	} {
		e, err := sexpr.Parse(src)
		require.NoError(t, err)

		s := term.NewStore()
		id, err := s.Insert(e)
		require.NoError(t, err)

		printed := sexpr.Print(s, id)

		reparsed, err := sexpr.Parse(printed)
		require.NoError(t, err)
		id2, err := s.Insert(reparsed)
		require.NoError(t, err)
		require.Equal(t, id, id2, "printing then reparsing must hash-cons back to the same node")
	}
}

func TestPrintExprMatchesPrint(t *testing.T) {
	e, err := sexpr.Parse("(f $0 #2)")
	require.NoError(t, err)

	s := term.NewStore()
	id, err := s.Insert(e)
	require.NoError(t, err)

	require.Equal(t, sexpr.Print(s, id), sexpr.PrintExpr(e))
}
