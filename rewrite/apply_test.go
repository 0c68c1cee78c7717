package rewrite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcinvent/lcinvent/rewrite"
	"github.com/lcinvent/lcinvent/search"
	"github.com/lcinvent/lcinvent/term"
)

// TestApplyReducesCorpusCost builds the classic shared-argument corpus,
// takes the winning search candidate, applies the rewrite, and checks the
// rewritten programs cost no more than the originals (and strictly less for
// at least one of them, since the whole point of a positive-utility
// invention is that it shrinks the corpus).
func TestApplyReducesCorpusCost(t *testing.T) {
	s := term.NewStore()
	plus := s.Prim("plus")
	one := s.Prim("1")
	two := s.Prim("2")
	three := s.Prim("3")
	inner, err := s.App(plus, one)
	require.NoError(t, err)
	p1, err := s.App(inner, two)
	require.NoError(t, err)
	p2, err := s.App(inner, three)
	require.NoError(t, err)

	roots := []term.NodeId{p1, p2}
	cat, order := buildCatalogue(t, s, roots)

	opts := search.NewOptions(search.WithMaxArity(2))
	done, err := search.Run(context.Background(), s, cat, roots, opts)
	require.NoError(t, err)
	require.Greater(t, done.Len(), 0)

	top := done.Top(1)[0]
	require.Greater(t, top.Utility, 0) // the shared "(plus 1)" partial application is a real saving

	subst, err := rewrite.Apply(s, cat, top, "fn_0", order)
	require.NoError(t, err)
	require.NotEmpty(t, subst)

	rewritten, err := rewrite.RewriteCorpus(s, order, subst)
	require.NoError(t, err)

	occCounts, err := rewrite.OccurrencesPerRoot(s, roots, top.Nodes)
	require.NoError(t, err)
	summaries := rewrite.Programs(s, roots, rewritten, occCounts)
	require.Len(t, summaries, 2)

	totalBefore, totalAfter := 0, 0
	for _, pr := range summaries {
		totalBefore += pr.OriginalCost
		totalAfter += pr.RewrittenCost
	}
	require.Less(t, totalAfter, totalBefore)
}

// TestApplyRejectsEmptyWinner checks the guard against a FinishedItem with
// no occurrence nodes.
func TestApplyRejectsEmptyWinner(t *testing.T) {
	s := term.NewStore()
	_, order := buildCatalogue(t, s, nil)
	_, err := rewrite.Apply(s, nil, search.FinishedItem{}, "fn_0", order)
	require.ErrorIs(t, err, rewrite.ErrEmptyWinner)
}
