package zipper

import "github.com/lcinvent/lcinvent/term"

// Step names which side of a constructor a zipper's path descended through.
// The variant order Func < Body < Arg is the ordering used whenever
// paths are compared lexicographically.
type Step uint8

const (
	StepFunc Step = iota
	StepBody
	StepArg
)

// ZId is a dense, zero-based index into the path catalogue: the
// unique paths across every AppliedZipper ever built, sorted and numbered.
type ZId int

// Zipper is a path from some root node down to a hole, together with the
// sibling subtrees encountered along the way.
//
// Left[i] holds the function-side sibling when Path[i]==StepArg (we
// descended into the argument, so the function is to our left);
// Right[i] holds the argument-side sibling when Path[i]==StepFunc. Both are
// term.Invalid when Path[i]==StepBody, and on the side not used at index i.
type Zipper struct {
	Path  []Step
	Left  []term.NodeId
	Right []term.NodeId
}

// AppliedZipper is a Zipper plus the subtree currently occupying the hole —
// the "argument" an abstraction over this zipper would extract.
type AppliedZipper struct {
	Zipper
	Arg term.NodeId
}

// identity builds the trivial zero-length zipper at node n: the hole is the
// whole node, found with no context at all. Identity zippers participate in
// bubbling's induction but are pruned from the final per-node sets.
func identity(n term.NodeId) AppliedZipper {
	return AppliedZipper{Arg: n}
}

// isIdentity reports whether z has an empty path.
func (z AppliedZipper) isIdentity() bool { return len(z.Path) == 0 }

// ComparePaths orders two Step sequences lexicographically using the
// Func < Body < Arg variant order.
func ComparePaths(a, b []Step) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// compareNodeSlices lexicographically compares two NodeId slices, treating
// term.Invalid as ordering before any valid id.
func compareNodeSlices(a, b []term.NodeId) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Compare totally orders two Zippers: path, then left, then right.
func Compare(a, b Zipper) int {
	if c := ComparePaths(a.Path, b.Path); c != 0 {
		return c
	}
	if c := compareNodeSlices(a.Left, b.Left); c != 0 {
		return c
	}
	return compareNodeSlices(a.Right, b.Right)
}
