// File: store.go
// Role: hash-consed insertion and O(1) analysis accessors for the term DAG.
// Concurrency:
//   - mu guards both the intern table and the node slice; inserts are the
//     only mutation this store ever performs (append-only, never merging
//     two handles after creation).
//   - Reads (Kind/Children/FreeVars/...) take the read lock; in the search
//     phase all inserts have already happened, so RLock traffic is
//     effectively lock-free contention.
package term

import (
	"fmt"
	"sync"
)

// Store is a hash-consed, append-only DAG of term nodes. The zero value is
// not usable; construct with NewStore.
type Store struct {
	mu     sync.RWMutex
	nodes  []record
	intern map[string]NodeId
}

// NewStore returns an empty Store ready for insertion.
func NewStore() *Store {
	return &Store{
		nodes:  make([]record, 0, 1024),
		intern: make(map[string]NodeId, 1024),
	}
}

// internKey builds the hash-cons key for a (variant, payload) tuple. Using a
// string key keeps the intern table a plain map without a custom Hash/Eq
// pair per variant, at the cost of one allocation per insert attempt; the
// store amortizes that since repeated inserts of the same subtree are the
// whole point of hash-consing.
func internKey(kind Kind, index int, sym string, children []NodeId) string {
	// A short fixed prefix plus payload is enough to disambiguate variants;
	// children are NodeIds, already deduplicated by construction, so their
	// identity (not structure) is all that needs to appear here.
	key := make([]byte, 0, 4+len(sym)+8*len(children))
	key = append(key, byte(kind))
	key = fmt.Appendf(key, ":%d:%s", index, sym)
	for _, c := range children {
		key = fmt.Appendf(key, ":%d", c)
	}
	return string(key)
}

// insert is the single hash-consing choke point: look up internKey, return
// the existing handle if present, else append a fresh record and compute its
// analyses bottom-up from the (already-interned) children.
func (s *Store) insert(kind Kind, index int, sym string, children []NodeId) NodeId {
	key := internKey(kind, index, sym, children)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.intern[key]; ok {
		return id
	}

	rec := record{kind: kind, index: index, sym: sym, children: children}
	rec.freeVars, rec.freeIVars, rec.cost = analyze(s, kind, index, children)

	id := NodeId(len(s.nodes))
	s.nodes = append(s.nodes, rec)
	s.intern[key] = id

	return id
}

// analyze computes the bottom-up free-variable, free-invention-variable, and
// cost invariants for a node about to be inserted, given its already-analyzed
// children.
func analyze(s *Store, kind Kind, index int, children []NodeId) (IntSet, IntSet, int) {
	switch kind {
	case KindVar:
		return NewIntSet(index), EmptyIntSet, TerminalCost
	case KindIVar:
		return EmptyIntSet, NewIntSet(index), TerminalCost
	case KindPrim:
		return EmptyIntSet, EmptyIntSet, TerminalCost
	case KindApp:
		f, x := children[0], children[1]
		fv := Union(s.nodes[f].freeVars, s.nodes[x].freeVars)
		iv := Union(s.nodes[f].freeIVars, s.nodes[x].freeIVars)
		cost := NonterminalCost + s.nodes[f].cost + s.nodes[x].cost
		return fv, iv, cost
	case KindLam:
		b := children[0]
		fv := ShiftedDownOpen(s.nodes[b].freeVars)
		iv := s.nodes[b].freeIVars
		cost := NonterminalCost + s.nodes[b].cost
		return fv, iv, cost
	case KindPrograms:
		return EmptyIntSet, EmptyIntSet, 0
	default:
		panic(fmt.Sprintf("term: unknown kind %v", kind))
	}
}

// Var returns the handle for de Bruijn variable i (i >= 0).
func (s *Store) Var(i int) NodeId { return s.insert(KindVar, i, "", nil) }

// IVar returns the handle for invention-variable i (i >= 0).
func (s *Store) IVar(i int) NodeId { return s.insert(KindIVar, i, "", nil) }

// Prim returns the handle for the atomic symbol sym.
func (s *Store) Prim(sym string) NodeId { return s.insert(KindPrim, 0, sym, nil) }

// App returns the handle for f applied to x.
func (s *Store) App(f, x NodeId) (NodeId, error) {
	if err := s.check(f); err != nil {
		return Invalid, err
	}
	if err := s.check(x); err != nil {
		return Invalid, err
	}
	return s.insert(KindApp, 0, "", []NodeId{f, x}), nil
}

// Lam returns the handle for a binder over body b.
func (s *Store) Lam(b NodeId) (NodeId, error) {
	if err := s.check(b); err != nil {
		return Invalid, err
	}
	return s.insert(KindLam, 0, "", []NodeId{b}), nil
}

// Programs returns the corpus root over roots. Every root must already have
// empty free_vars and free_ivars; violating this is fatal to
// ingestion.
func (s *Store) Programs(roots ...NodeId) (NodeId, error) {
	for _, r := range roots {
		if err := s.check(r); err != nil {
			return Invalid, err
		}
		if s.FreeVars(r).Len() > 0 {
			return Invalid, fmt.Errorf("%w: node %d", ErrFreeVarsInRoot, r)
		}
		if s.FreeIVars(r).Len() > 0 {
			return Invalid, fmt.Errorf("%w: node %d", ErrFreeIVarsInRoot, r)
		}
	}
	cp := append([]NodeId(nil), roots...)
	return s.insert(KindPrograms, 0, "", cp), nil
}

// check validates that id was produced by this Store.
func (s *Store) check(id NodeId) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 0 || int(id) >= len(s.nodes) {
		return fmt.Errorf("%w: %d", ErrInvalidNodeId, id)
	}
	return nil
}

// Kind reports the variant of id.
func (s *Store) Kind(id NodeId) Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[id].kind
}

// Index reports the Var/IVar payload of id (0 for other kinds).
func (s *Store) Index(id NodeId) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[id].index
}

// Sym reports the Prim payload of id ("" for other kinds).
func (s *Store) Sym(id NodeId) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[id].sym
}

// Children returns id's children: [f, x] for App, [body] for Lam, the
// program roots for Programs, nil for leaves. The returned slice must not be
// mutated by the caller (it is the store's own backing array).
func (s *Store) Children(id NodeId) []NodeId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[id].children
}

// FreeVars returns id's free de Bruijn variable set.
func (s *Store) FreeVars(id NodeId) IntSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[id].freeVars
}

// FreeIVars returns id's free invention-variable set.
func (s *Store) FreeIVars(id NodeId) IntSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[id].freeIVars
}

// Cost returns id's inventionless symbolic cost.
func (s *Store) Cost(id NodeId) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[id].cost
}

// Len reports how many distinct nodes have been interned.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}
