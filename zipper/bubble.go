// File: bubble.go
// Role: bubbling — for every node in child-first order, build every
// AppliedZipper reachable by propagating a hole upward across App and Lam.
// Adapted from the teacher's traversal-with-accumulated-per-node-result
// shape (bfs.BFSResult accumulates Order/Depth per vertex as it visits);
// here each "visit" accumulates a per-node []AppliedZipper instead.
package zipper

import (
	"fmt"

	"github.com/lcinvent/lcinvent/shift"
	"github.com/lcinvent/lcinvent/term"
)

// Remap maps a Lam-downshifted argument handle back to the original handle
// it was shifted from, so a caller that needs the argument's pre-shift
// identity can recover it. Neither the search nor invention materialization
// reads it. Inventionless cost is shift-invariant, so this is never needed
// for costing — only for recovering the "as originally written" argument.
type Remap map[term.NodeId]term.NodeId

// Bubble computes Z(n) for every node in order (which must be a child-first
// ordering, e.g. from package walk) and returns the per-node applied-zipper
// sets with identity zippers already pruned, plus the accumulated remap
// table for Lam-crossed arguments.
func Bubble(store *term.Store, sh *shift.Shifter, order []term.NodeId) (map[term.NodeId][]AppliedZipper, Remap, error) {
	z := make(map[term.NodeId][]AppliedZipper, len(order))
	remap := make(Remap)

	for _, n := range order {
		zs, err := bubbleNode(store, sh, z, remap, n)
		if err != nil {
			return nil, nil, err
		}
		z[n] = zs
	}

	pruned := make(map[term.NodeId][]AppliedZipper, len(z))
	for n, zs := range z {
		out := zs[:0:0]
		for _, az := range zs {
			if !az.isIdentity() {
				out = append(out, az)
			}
		}
		pruned[n] = out
	}

	return pruned, remap, nil
}

func bubbleNode(store *term.Store, sh *shift.Shifter, z map[term.NodeId][]AppliedZipper, remap Remap, n term.NodeId) ([]AppliedZipper, error) {
	switch store.Kind(n) {
	case term.KindVar, term.KindPrim:
		return []AppliedZipper{identity(n)}, nil

	case term.KindIVar:
		return nil, fmt.Errorf("%w: node %d", ErrIVarInCorpus, n)

	case term.KindApp:
		children := store.Children(n)
		f, x := children[0], children[1]
		out := make([]AppliedZipper, 0, len(z[f])+len(z[x])+1)

		// Bubbling from the left: every zipper into f gets Func prepended,
		// with x recorded as the new right sibling.
		for _, zf := range z[f] {
			out = append(out, AppliedZipper{
				Zipper: Zipper{
					Path:  prependStep(StepFunc, zf.Path),
					Left:  prependNode(term.Invalid, zf.Left),
					Right: prependNode(x, zf.Right),
				},
				Arg: zf.Arg,
			})
		}

		// Bubbling from the right: every zipper into x gets Arg prepended,
		// with f recorded as the new left sibling.
		for _, zx := range z[x] {
			out = append(out, AppliedZipper{
				Zipper: Zipper{
					Path:  prependStep(StepArg, zx.Path),
					Left:  prependNode(f, zx.Left),
					Right: prependNode(term.Invalid, zx.Right),
				},
				Arg: zx.Arg,
			})
		}

		out = append(out, identity(n))
		return out, nil

	case term.KindLam:
		children := store.Children(n)
		b := children[0]
		out := make([]AppliedZipper, 0, len(z[b])+1)

		for _, zb := range z[b] {
			if store.FreeVars(zb.Arg).Contains(0) {
				// would escape across the binder we're about to cross
				continue
			}
			shifted, err := sh.ShiftVar(zb.Arg, -1)
			if err != nil {
				return nil, err
			}
			remap[shifted] = zb.Arg
			out = append(out, AppliedZipper{
				Zipper: Zipper{
					Path:  prependStep(StepBody, zb.Path),
					Left:  prependNode(term.Invalid, zb.Left),
					Right: prependNode(term.Invalid, zb.Right),
				},
				Arg: shifted,
			})
		}

		out = append(out, identity(n))
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, store.Kind(n))
	}
}

func prependStep(s Step, rest []Step) []Step {
	out := make([]Step, 0, len(rest)+1)
	out = append(out, s)
	return append(out, rest...)
}

func prependNode(n term.NodeId, rest []term.NodeId) []term.NodeId {
	out := make([]term.NodeId, 0, len(rest)+1)
	out = append(out, n)
	return append(out, rest...)
}
