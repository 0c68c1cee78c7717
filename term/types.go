package term

import "fmt"

// Cost constants. Programs itself costs 0; its total cost is the sum of
// its children's costs, available individually via Store.Cost on each root.
const (
	NonterminalCost = 1   // App, Lam
	TerminalCost    = 100 // Var, IVar, Prim
)

// Kind discriminates the six node variants a term can be.
type Kind uint8

const (
	KindVar Kind = iota
	KindIVar
	KindPrim
	KindApp
	KindLam
	KindPrograms
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindVar:
		return "Var"
	case KindIVar:
		return "IVar"
	case KindPrim:
		return "Prim"
	case KindApp:
		return "App"
	case KindLam:
		return "Lam"
	case KindPrograms:
		return "Programs"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// NodeId is an opaque, dense handle into a Store. Two structurally equal
// subtrees always share the same NodeId (hash-cons uniqueness, property 1).
type NodeId int

// Invalid is the sentinel NodeId (-1); never returned by a successful
// insertion.
const Invalid NodeId = -1

// record is the immutable payload attached to one interned node. Analyses
// are computed once, at insertion time, so every accessor below is O(1).
type record struct {
	kind     Kind
	index    int      // payload for Var/IVar
	sym      string   // payload for Prim
	children []NodeId // App: [f, x]; Lam: [body]; Programs: roots

	freeVars  IntSet
	freeIVars IntSet
	cost      int
}

// Expr is the standalone, store-independent tree form produced by
// Store.Extract and consumed by Store.Insert. It exists so that printing,
// parsing, and cross-call handoff never need to reach into Store internals.
type Expr struct {
	Kind     Kind
	Index    int // Var/IVar
	Sym      string
	Children []*Expr // App: [f, x]; Lam: [body]; Programs: roots
}
