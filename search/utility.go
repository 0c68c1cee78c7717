package search

import (
	"github.com/lcinvent/lcinvent/term"
	"github.com/lcinvent/lcinvent/walk"
	"github.com/lcinvent/lcinvent/zipper"
)

// edgeUtilLeft sums the utility contribution of a left-sibling sequence: one
// NonterminalCost per path position crossed (every App/Lam step, whether or
// not it has a real sibling at that slot) plus each actual sibling's own
// inventionless cost.
func edgeUtilLeft(store *term.Store, left []term.NodeId) int {
	total := len(left) * term.NonterminalCost
	for _, s := range left {
		if s == term.Invalid {
			continue
		}
		total += store.Cost(s)
	}
	return total
}

// edgeUtilRight sums the utility contribution of a right-sibling sequence:
// just each sibling's inventionless cost, no per-sibling nonterminal charge.
func edgeUtilRight(store *term.Store, right []term.NodeId) int {
	total := 0
	for _, s := range right {
		if s == term.Invalid {
			continue
		}
		total += store.Cost(s)
	}
	return total
}

// countBody reports how many Body steps appear in path, i.e. how many
// binders have been crossed by the time path is exhausted.
func countBody(path []zipper.Step) int {
	n := 0
	for _, s := range path {
		if s == zipper.StepBody {
			n++
		}
	}
	return n
}

// escapes reports whether any sibling in siblings (aligned index-for-index
// with path, both starting at whatever point the caller sliced from) has a
// free de Bruijn variable at or above the binder depth in effect at that
// position. startDepth is the number of binders already crossed before the
// first element of path/siblings.
func escapes(store *term.Store, path []zipper.Step, siblings []term.NodeId, startDepth int) bool {
	depth := startDepth
	for i, step := range path {
		if step == zipper.StepBody {
			depth++
			continue
		}
		if i >= len(siblings) {
			continue
		}
		sib := siblings[i]
		if sib == term.Invalid {
			continue
		}
		if mx, ok := store.FreeVars(sib).Max(); ok && mx >= depth {
			return true
		}
	}
	return false
}

// pathCounts computes num_paths_to_node: for every node reachable from
// roots, the number of distinct root-to-node paths (shared subtrees counted
// once per path that reaches them). Computed top-down over the child-first
// order reversed, so every node's count is finalized before its children
// receive their share.
func pathCounts(store *term.Store, roots []term.NodeId) (map[term.NodeId]int, error) {
	order, err := walk.ChildFirst(store, roots)
	if err != nil {
		return nil, err
	}
	counts := make(map[term.NodeId]int, len(order))
	for _, r := range roots {
		counts[r]++
	}
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		c := counts[n]
		if c == 0 {
			continue
		}
		for _, ch := range store.Children(n) {
			counts[ch] += c
		}
	}
	return counts, nil
}

// utilityOf computes the final utility for a completed candidate: numUses
// copies saved at -TerminalCost each, plus the accumulated left/right edge
// utility, the per-argument arity penalty, and the multi-use savings term.
// multiuseArgCost(n, elem) returns the cost of the argument a multi-use
// element refers to at node n, so the caller controls how that lookup
// reaches the catalogue.
func utilityOf(arity, numUses, leftUtil, rightUtil int, multiuse []Elem, counts map[term.NodeId]int, group []term.NodeId, multiuseArgCost func(term.NodeId, Elem) int) int {
	arityUtil := -arity * term.NonterminalCost
	multiuseUtil := 0
	for _, mu := range multiuse {
		for _, n := range group {
			multiuseUtil += counts[n] * multiuseArgCost(n, mu)
		}
	}
	return numUses*(-term.TerminalCost+leftUtil+rightUtil+arityUtil) + multiuseUtil
}
