// File: apply.go
// Role: replace every occurrence of a winning candidate with a call to its
// fresh primitive, then rebuild the whole corpus bottom-up so every ancestor
// on the path back to a program root picks up the substitution. Grounded on
// walk's visit-and-rebuild shape: one pass over the same child-first order,
// memoized per NodeId so a shared subtree is rebuilt at most once.
package rewrite

import (
	"fmt"

	"github.com/lcinvent/lcinvent/search"
	"github.com/lcinvent/lcinvent/term"
	"github.com/lcinvent/lcinvent/walk"
	"github.com/lcinvent/lcinvent/zipper"
)

// ProgramRewrite reports one program root's before/after state.
type ProgramRewrite struct {
	ProgramIndex    int
	OriginalRoot    term.NodeId
	RewrittenRoot   term.NodeId
	OriginalCost    int
	RewrittenCost   int
	OccurrenceCount int
}

// Apply builds, for every node in winner.Nodes, a call to a fresh primitive
// named name, and returns the occurrence -> call-site substitution map. It
// does not rebuild the corpus itself: pass the map to RewriteCorpus, and use
// OccurrencesPerRoot and Programs for the per-program report. order must be
// a child-first ordering of the full corpus (e.g. from walk.ChildFirst over
// roots).
//
// Per the source's own ambiguity about "threadable" applications, the
// non-threading match path is always tried first: every occurrence's call
// arguments are read straight from the original, unrewritten corpus. That
// path is inapplicable only when one occurrence's own extracted argument is
// itself another occurrence in the same group — the threading path handles
// that by rewriting occurrences in dependency order so an outer call site
// sees its inner occurrence already replaced.
func Apply(store *term.Store, catalogue *zipper.Catalogue, winner search.FinishedItem, name string, order []term.NodeId) (map[term.NodeId]term.NodeId, error) {
	if len(winner.Nodes) == 0 {
		return nil, ErrEmptyWinner
	}

	if !hasNestedOccurrence(catalogue, winner) {
		return applyNonThreaded(store, catalogue, winner, name)
	}
	return applyThreaded(store, catalogue, winner, name, order)
}

func hasNestedOccurrence(catalogue *zipper.Catalogue, winner search.FinishedItem) bool {
	occ := make(map[term.NodeId]bool, len(winner.Nodes))
	for _, m := range winner.Nodes {
		occ[m] = true
	}
	for _, m := range winner.Nodes {
		for _, zid := range winner.Tuple.Multiarg {
			if az, ok := catalogue.AppliedZipperAt(m, zid); ok && occ[az.Arg] {
				return true
			}
		}
	}
	return false
}

// callSite builds Prim(name) applied, left to right, to the arity arguments
// resolveArg supplies for occurrence m.
func callSite(store *term.Store, name string, arity int, resolveArg func(ivar int) term.NodeId) (term.NodeId, error) {
	call := store.Prim(name)
	for i := 0; i < arity; i++ {
		next, err := store.App(call, resolveArg(i))
		if err != nil {
			return term.Invalid, err
		}
		call = next
	}
	return call, nil
}

// applyNonThreaded resolves every occurrence's call-site arguments directly
// from the catalogue against the untouched corpus.
func applyNonThreaded(store *term.Store, catalogue *zipper.Catalogue, winner search.FinishedItem, name string) (map[term.NodeId]term.NodeId, error) {
	subst := make(map[term.NodeId]term.NodeId, len(winner.Nodes))
	for _, m := range winner.Nodes {
		m := m
		call, err := callSite(store, name, winner.Tuple.Arity, func(i int) term.NodeId {
			az, _ := catalogue.AppliedZipperAt(m, winner.Tuple.Multiarg[i])
			return az.Arg
		})
		if err != nil {
			return nil, fmt.Errorf("rewrite: building call site for node %d: %w", m, err)
		}
		subst[m] = call
	}
	return subst, nil
}

// applyThreaded processes occurrences in child-first (dependency) order so a
// nested occurrence is substituted before the occurrence whose argument
// contains it, letting the outer call site pick up the already-rewritten
// inner call.
func applyThreaded(store *term.Store, catalogue *zipper.Catalogue, winner search.FinishedItem, name string, order []term.NodeId) (map[term.NodeId]term.NodeId, error) {
	occ := make(map[term.NodeId]bool, len(winner.Nodes))
	for _, m := range winner.Nodes {
		occ[m] = true
	}

	subst := make(map[term.NodeId]term.NodeId, len(winner.Nodes))
	for _, n := range order {
		if !occ[n] {
			continue
		}
		m := n
		call, err := callSite(store, name, winner.Tuple.Arity, func(i int) term.NodeId {
			az, _ := catalogue.AppliedZipperAt(m, winner.Tuple.Multiarg[i])
			if rewritten, ok := subst[az.Arg]; ok {
				return rewritten
			}
			return az.Arg
		})
		if err != nil {
			return nil, fmt.Errorf("rewrite: building threaded call site for node %d: %w", m, err)
		}
		subst[m] = call
	}
	return subst, nil
}

// RewriteCorpus rebuilds every node in order under subst, replacing any node
// that is a key of subst with its mapped value and reusing every untouched
// subtree unchanged. It returns the full old-NodeId -> new-NodeId map; look
// up any of the original roots in it to get the rewritten corpus.
func RewriteCorpus(store *term.Store, order []term.NodeId, subst map[term.NodeId]term.NodeId) (map[term.NodeId]term.NodeId, error) {
	memo := make(map[term.NodeId]term.NodeId, len(order))
	for _, n := range order {
		if rep, ok := subst[n]; ok {
			memo[n] = rep
			continue
		}
		switch store.Kind(n) {
		case term.KindVar, term.KindIVar, term.KindPrim:
			memo[n] = n
		case term.KindApp:
			children := store.Children(n)
			f2, x2 := memo[children[0]], memo[children[1]]
			if f2 == children[0] && x2 == children[1] {
				memo[n] = n
				continue
			}
			nn, err := store.App(f2, x2)
			if err != nil {
				return nil, err
			}
			memo[n] = nn
		case term.KindLam:
			b := store.Children(n)[0]
			b2 := memo[b]
			if b2 == b {
				memo[n] = n
				continue
			}
			nn, err := store.Lam(b2)
			if err != nil {
				return nil, err
			}
			memo[n] = nn
		default:
			return nil, fmt.Errorf("rewrite: unexpected node kind %v rewriting node %d", store.Kind(n), n)
		}
	}
	return memo, nil
}

// OccurrencesPerRoot counts, for each root, how many root-to-node paths
// reach a node in occurrences — the same top-down DP walk.ChildFirst-based
// counting search.pathCounts uses, restricted to the occurrence set and
// reported per root instead of summed.
func OccurrencesPerRoot(store *term.Store, roots []term.NodeId, occurrences []term.NodeId) (map[term.NodeId]int, error) {
	occ := make(map[term.NodeId]bool, len(occurrences))
	for _, n := range occurrences {
		occ[n] = true
	}

	out := make(map[term.NodeId]int, len(roots))
	for _, r := range roots {
		order, err := walk.ChildFirst(store, []term.NodeId{r})
		if err != nil {
			return nil, err
		}
		counts := map[term.NodeId]int{r: 1}
		total := 0
		for i := len(order) - 1; i >= 0; i-- {
			n := order[i]
			c := counts[n]
			if c == 0 {
				continue
			}
			if occ[n] {
				total += c
			}
			for _, ch := range store.Children(n) {
				counts[ch] += c
			}
		}
		out[r] = total
	}
	return out, nil
}

// Programs rebuilds the per-root ProgramRewrite summaries for a completed
// rewrite: roots is the original program root set, in corpus order.
func Programs(store *term.Store, roots []term.NodeId, rewritten map[term.NodeId]term.NodeId, occurrenceCounts map[term.NodeId]int) []ProgramRewrite {
	out := make([]ProgramRewrite, len(roots))
	for i, r := range roots {
		nr := rewritten[r]
		out[i] = ProgramRewrite{
			ProgramIndex:    i,
			OriginalRoot:    r,
			RewrittenRoot:   nr,
			OriginalCost:    store.Cost(r),
			RewrittenCost:   store.Cost(nr),
			OccurrenceCount: occurrenceCounts[r],
		}
	}
	return out
}
