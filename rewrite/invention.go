package rewrite

import (
	"fmt"

	"github.com/lcinvent/lcinvent/search"
	"github.com/lcinvent/lcinvent/term"
	"github.com/lcinvent/lcinvent/zipper"
)

// Invention is a materialized abstraction: a body subtree over IVars plus
// the arity that names how many positional arguments a call site supplies.
// It carries no wrapping Lam of its own — IVars are their own namespace, so
// the body already is the parameter frame.
type Invention struct {
	Name  string
	Body  term.NodeId
	Arity int
}

type pathElem struct {
	path []zipper.Step
	ivar int
}

// MaterializeBody rebuilds the invention body from one representative
// occurrence: every elem's path from that occurrence down to its hole is
// replaced by the IVar it was bound to, everything else kept as-is.
func MaterializeBody(store *term.Store, catalogue *zipper.Catalogue, winner search.FinishedItem) (term.NodeId, error) {
	if len(winner.Nodes) == 0 {
		return term.Invalid, ErrEmptyWinner
	}
	rep := winner.Nodes[0]

	elems := make([]pathElem, 0, len(winner.Tuple.Elems))
	for _, e := range winner.Tuple.Elems {
		elems = append(elems, pathElem{path: catalogue.Path(e.Zid), ivar: e.IvarIdx})
	}
	return substitute(store, rep, elems)
}

// substitute rebuilds n with every elem whose path bottoms out here replaced
// by IVar(ivar). Elems whose path continues are partitioned by their next
// step and threaded into the matching child: Func/Arg steps descend into an
// App's function/argument, Body steps descend through a Lam.
func substitute(store *term.Store, n term.NodeId, elems []pathElem) (term.NodeId, error) {
	for _, e := range elems {
		if len(e.path) == 0 {
			return store.IVar(e.ivar), nil
		}
	}
	if len(elems) == 0 {
		return n, nil
	}

	switch store.Kind(n) {
	case term.KindApp:
		children := store.Children(n)
		f, x := children[0], children[1]
		var funcElems, argElems []pathElem
		for _, e := range elems {
			switch e.path[0] {
			case zipper.StepFunc:
				funcElems = append(funcElems, pathElem{e.path[1:], e.ivar})
			case zipper.StepArg:
				argElems = append(argElems, pathElem{e.path[1:], e.ivar})
			default:
				return term.Invalid, fmt.Errorf("%w: App node %d got a Body step", ErrBadPath, n)
			}
		}
		newF, err := substitute(store, f, funcElems)
		if err != nil {
			return term.Invalid, err
		}
		newX, err := substitute(store, x, argElems)
		if err != nil {
			return term.Invalid, err
		}
		if newF == f && newX == x {
			return n, nil
		}
		return store.App(newF, newX)

	case term.KindLam:
		b := store.Children(n)[0]
		bodyElems := make([]pathElem, 0, len(elems))
		for _, e := range elems {
			if e.path[0] != zipper.StepBody {
				return term.Invalid, fmt.Errorf("%w: Lam node %d got a non-Body step", ErrBadPath, n)
			}
			bodyElems = append(bodyElems, pathElem{e.path[1:], e.ivar})
		}
		newB, err := substitute(store, b, bodyElems)
		if err != nil {
			return term.Invalid, err
		}
		if newB == b {
			return n, nil
		}
		return store.Lam(newB)

	default:
		return term.Invalid, fmt.Errorf("%w: node %d is a leaf but %d elem path(s) still expect descent", ErrBadPath, n, len(elems))
	}
}
