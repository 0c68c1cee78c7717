package term

import "fmt"

// Insert materializes a standalone Expr into the store bottom-up, returning
// the (possibly pre-existing, hash-consed) handle for its root. It is the
// inverse of Extract and the way trees produced by the surface-syntax parser
// enter a store.
func (s *Store) Insert(e *Expr) (NodeId, error) {
	if e == nil {
		return Invalid, fmt.Errorf("term: cannot insert nil expression")
	}
	switch e.Kind {
	case KindVar:
		return s.Var(e.Index), nil
	case KindIVar:
		return s.IVar(e.Index), nil
	case KindPrim:
		return s.Prim(e.Sym), nil
	case KindApp:
		if len(e.Children) != 2 {
			return Invalid, fmt.Errorf("term: App expects 2 children, got %d", len(e.Children))
		}
		f, err := s.Insert(e.Children[0])
		if err != nil {
			return Invalid, err
		}
		x, err := s.Insert(e.Children[1])
		if err != nil {
			return Invalid, err
		}
		return s.App(f, x)
	case KindLam:
		if len(e.Children) != 1 {
			return Invalid, fmt.Errorf("term: Lam expects 1 child, got %d", len(e.Children))
		}
		b, err := s.Insert(e.Children[0])
		if err != nil {
			return Invalid, err
		}
		return s.Lam(b)
	case KindPrograms:
		roots := make([]NodeId, len(e.Children))
		for i, c := range e.Children {
			id, err := s.Insert(c)
			if err != nil {
				return Invalid, err
			}
			roots[i] = id
		}
		return s.Programs(roots...)
	default:
		return Invalid, fmt.Errorf("term: unknown expr kind %v", e.Kind)
	}
}

// Extract materializes id as a standalone Expr by structural recursion.
// Shared subtrees are duplicated in the result since Expr has no notion of
// sharing; this is only ever used at the print/hand-off boundary.
func (s *Store) Extract(id NodeId) (*Expr, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	kind := s.Kind(id)
	switch kind {
	case KindVar, KindIVar:
		return &Expr{Kind: kind, Index: s.Index(id)}, nil
	case KindPrim:
		return &Expr{Kind: kind, Sym: s.Sym(id)}, nil
	case KindApp, KindLam, KindPrograms:
		children := s.Children(id)
		out := make([]*Expr, len(children))
		for i, c := range children {
			sub, err := s.Extract(c)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return &Expr{Kind: kind, Children: out}, nil
	default:
		return nil, fmt.Errorf("term: unknown kind %v for node %d", kind, id)
	}
}
