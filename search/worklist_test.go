package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcinvent/lcinvent/search"
	"github.com/lcinvent/lcinvent/term"
)

// TestRunFindsSharedArgumentAbstraction builds a tiny two-program corpus
// where both programs apply the same function to a different leaf argument:
// (double a) and (double b). Abstracting over the argument is the one
// candidate whose left/right edges agree across both occurrences, so it must
// surface among the completed candidates.
func TestRunFindsSharedArgumentAbstraction(t *testing.T) {
	s := term.NewStore()
	double := s.Prim("double")
	a := s.Prim("a")
	b := s.Prim("b")
	p1, err := s.App(double, a)
	require.NoError(t, err)
	p2, err := s.App(double, b)
	require.NoError(t, err)

	cat := buildCatalogue(t, s, []term.NodeId{p1, p2})
	opts := search.NewOptions(search.WithMaxArity(2), search.WithMaxDonelist(64))

	done, err := search.Run(context.Background(), s, cat, []term.NodeId{p1, p2}, opts)
	require.NoError(t, err)
	require.Greater(t, done.Len(), 0)

	found := false
	for _, item := range done.Top(0) {
		if item.Tuple.Arity != 1 {
			continue
		}
		if len(item.Nodes) == 2 {
			require.ElementsMatch(t, []term.NodeId{p1, p2}, item.Nodes)
			require.Equal(t, 0, item.Utility)
			found = true
		}
	}
	require.True(t, found, "expected a 2-use arity-1 candidate abstracting the shared argument position")
}

// TestRunDeterministicSingleThread checks that two single-threaded runs over
// the same corpus produce identical top-ranked candidates, relying on
// CompareZTuple as the tie-breaker.
func TestRunDeterministicSingleThread(t *testing.T) {
	build := func() (*term.Store, []term.NodeId) {
		s := term.NewStore()
		f := s.Prim("f")
		xs := []string{"a", "b", "c"}
		var roots []term.NodeId
		for _, x := range xs {
			n, err := s.App(f, s.Prim(x))
			require.NoError(t, err)
			roots = append(roots, n)
		}
		return s, roots
	}

	run := func() []search.FinishedItem {
		s, roots := build()
		cat := buildCatalogue(t, s, roots)
		opts := search.NewOptions(search.WithThreads(1), search.WithMaxArity(2))
		done, err := search.Run(context.Background(), s, cat, roots, opts)
		require.NoError(t, err)
		return done.Top(0)
	}

	first := run()
	second := run()
	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].Utility, second[i].Utility)
		require.Equal(t, 0, search.CompareZTuple(first[i].Tuple, second[i].Tuple))
	}
}

// TestRunNoOptFreeVarsNeverShrinksCandidates checks that disabling escape
// pruning (NoOptFreeVars) never removes a candidate that the default,
// pruning-enabled run would have found — it can only add.
func TestRunNoOptFreeVarsNeverShrinksCandidates(t *testing.T) {
	s := term.NewStore()
	f := s.Prim("f")
	g := s.Prim("g")
	v0 := s.Var(0)

	body1, err := s.App(f, v0)
	require.NoError(t, err)
	lam1, err := s.Lam(body1)
	require.NoError(t, err)

	body2, err := s.App(g, v0)
	require.NoError(t, err)
	lam2, err := s.Lam(body2)
	require.NoError(t, err)

	roots := []term.NodeId{lam1, lam2}
	cat := buildCatalogue(t, s, roots)

	pruned, err := search.Run(context.Background(), s, cat, roots, search.NewOptions())
	require.NoError(t, err)
	unpruned, err := search.Run(context.Background(), s, cat, roots, search.NewOptions(search.WithNoOptFreeVars(true)))
	require.NoError(t, err)

	require.GreaterOrEqual(t, unpruned.Len(), pruned.Len())
}

// TestRunRespectsMaxArity checks that no completed candidate exceeds the
// configured arity cap.
func TestRunRespectsMaxArity(t *testing.T) {
	s := term.NewStore()
	f := s.Prim("f")
	var roots []term.NodeId
	for _, x := range []string{"a", "b", "c", "d"} {
		n, err := s.App(f, s.Prim(x))
		require.NoError(t, err)
		roots = append(roots, n)
	}
	cat := buildCatalogue(t, s, roots)
	opts := search.NewOptions(search.WithMaxArity(1))
	done, err := search.Run(context.Background(), s, cat, roots, opts)
	require.NoError(t, err)
	for _, item := range done.Top(0) {
		require.LessOrEqual(t, item.Tuple.Arity, 1)
	}
}
