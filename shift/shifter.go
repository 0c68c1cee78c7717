// File: shifter.go
// Role: recursive index-rewrite with early exit and per-kind memoization,
// adapted from the memoized-DP shape of a dynamic-time-warping alignment
// pass (cell already computed? return it) to a tree-shaped memo keyed on
// (NodeId, depth) or (NodeId, table digest).
package shift

import (
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lcinvent/lcinvent/term"
)

const defaultCacheSize = 8192

// Shifter performs memoized index shifting over a shared term.Store. One
// Shifter is normally reused across an entire search pass; NoCache clears
// the memo between every top-level call instead of reusing it.
type Shifter struct {
	store   *term.Store
	noCache bool
	varMemo *lru.Cache[varKey, term.NodeId]
	tblMemo *lru.Cache[tableKey, term.NodeId]
}

// New returns a Shifter over store. If noCache is true, memoization is
// disabled (cfg.no_cache): the cache is cleared after every top-level Shift
// call instead of being reused across calls.
func New(store *term.Store, noCache bool) *Shifter {
	varMemo, _ := lru.New[varKey, term.NodeId](defaultCacheSize)
	tblMemo, _ := lru.New[tableKey, term.NodeId](defaultCacheSize)
	return &Shifter{store: store, noCache: noCache, varMemo: varMemo, tblMemo: tblMemo}
}

// ShiftVar adds delta to every free de Bruijn variable in id (ShiftVar(δ)).
func (sh *Shifter) ShiftVar(id term.NodeId, delta int) (term.NodeId, error) {
	defer sh.maybeClear()
	return sh.shiftVar(id, delta, 0)
}

// ShiftIVar adds delta to every invention variable in id (ShiftIVar(δ)).
func (sh *Shifter) ShiftIVar(id term.NodeId, delta int) (term.NodeId, error) {
	defer sh.maybeClear()
	return sh.shiftIVar(id, delta)
}

// TableShiftIVar adds table[i] to each IVar(i) in id (TableShiftIVar(t)).
// Any IVar whose index is out of range for table is left untouched.
func (sh *Shifter) TableShiftIVar(id term.NodeId, table []int) (term.NodeId, error) {
	defer sh.maybeClear()
	digest := tableDigest(table)
	return sh.tableShift(id, table, digest)
}

func (sh *Shifter) maybeClear() {
	if sh.noCache {
		sh.varMemo.Purge()
		sh.tblMemo.Purge()
	}
}

func tableDigest(table []int) string {
	var b strings.Builder
	for i, v := range table {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// shiftVar rewrites free de Bruijn variables at or above depth by delta.
// Early exit: if no free variable of id is >= depth, id itself is returned
// unchanged.
func (sh *Shifter) shiftVar(id term.NodeId, delta, depth int) (term.NodeId, error) {
	max, ok := sh.store.FreeVars(id).Max()
	if !ok || max < depth {
		return id, nil
	}

	key := varKey{kind: KindShiftVar, id: int32(id), delta: int32(delta), depth: int32(depth)}
	if !sh.noCache {
		if v, ok := sh.varMemo.Get(key); ok {
			return v, nil
		}
	}

	var result term.NodeId
	var err error
	switch sh.store.Kind(id) {
	case term.KindVar:
		i := sh.store.Index(id)
		if i < depth {
			result = id
			break
		}
		ni := i + delta
		if ni < 0 {
			return term.Invalid, fmt.Errorf("%w: Var(%d) shifted by %d at depth %d", ErrWouldCapture, i, delta, depth)
		}
		result = sh.store.Var(ni)
	case term.KindIVar, term.KindPrim:
		result = id
	case term.KindApp:
		children := sh.store.Children(id)
		f, ferr := sh.shiftVar(children[0], delta, depth)
		if ferr != nil {
			return term.Invalid, ferr
		}
		x, xerr := sh.shiftVar(children[1], delta, depth)
		if xerr != nil {
			return term.Invalid, xerr
		}
		result, err = sh.store.App(f, x)
	case term.KindLam:
		children := sh.store.Children(id)
		b, berr := sh.shiftVar(children[0], delta, depth+1)
		if berr != nil {
			return term.Invalid, berr
		}
		result, err = sh.store.Lam(b)
	default:
		return term.Invalid, fmt.Errorf("shift: cannot ShiftVar a %v node", sh.store.Kind(id))
	}
	if err != nil {
		return term.Invalid, err
	}

	if !sh.noCache {
		sh.varMemo.Add(key, result)
	}
	return result, nil
}

// shiftIVar rewrites free invention variables by delta. Invention variables
// are never bound by Lam, so no binder depth is tracked.
func (sh *Shifter) shiftIVar(id term.NodeId, delta int) (term.NodeId, error) {
	if _, ok := sh.store.FreeIVars(id).Max(); !ok {
		return id, nil
	}

	key := varKey{kind: KindShiftIVar, id: int32(id), delta: int32(delta)}
	if !sh.noCache {
		if v, ok := sh.varMemo.Get(key); ok {
			return v, nil
		}
	}

	var result term.NodeId
	var err error
	switch sh.store.Kind(id) {
	case term.KindIVar:
		i := sh.store.Index(id)
		ni := i + delta
		if ni < 0 {
			return term.Invalid, fmt.Errorf("%w: IVar(%d) shifted by %d", ErrWouldCapture, i, delta)
		}
		result = sh.store.IVar(ni)
	case term.KindVar, term.KindPrim:
		result = id
	case term.KindApp:
		children := sh.store.Children(id)
		f, ferr := sh.shiftIVar(children[0], delta)
		if ferr != nil {
			return term.Invalid, ferr
		}
		x, xerr := sh.shiftIVar(children[1], delta)
		if xerr != nil {
			return term.Invalid, xerr
		}
		result, err = sh.store.App(f, x)
	case term.KindLam:
		children := sh.store.Children(id)
		b, berr := sh.shiftIVar(children[0], delta)
		if berr != nil {
			return term.Invalid, berr
		}
		result, err = sh.store.Lam(b)
	default:
		return term.Invalid, fmt.Errorf("shift: cannot ShiftIVar a %v node", sh.store.Kind(id))
	}
	if err != nil {
		return term.Invalid, err
	}

	if !sh.noCache {
		sh.varMemo.Add(key, result)
	}
	return result, nil
}

// tableShift rewrites each IVar(i) by table[i], leaving out-of-range indices
// untouched.
func (sh *Shifter) tableShift(id term.NodeId, table []int, digest string) (term.NodeId, error) {
	if sh.store.FreeIVars(id).Len() == 0 {
		return id, nil
	}

	key := tableKey{id: int32(id), tableDigest: digest}
	if !sh.noCache {
		if v, ok := sh.tblMemo.Get(key); ok {
			return v, nil
		}
	}

	var result term.NodeId
	var err error
	switch sh.store.Kind(id) {
	case term.KindIVar:
		i := sh.store.Index(id)
		if i < 0 || i >= len(table) {
			result = id
			break
		}
		ni := i + table[i]
		if ni < 0 {
			return term.Invalid, fmt.Errorf("%w: IVar(%d) table-shifted to %d", ErrWouldCapture, i, ni)
		}
		result = sh.store.IVar(ni)
	case term.KindVar, term.KindPrim:
		result = id
	case term.KindApp:
		children := sh.store.Children(id)
		f, ferr := sh.tableShift(children[0], table, digest)
		if ferr != nil {
			return term.Invalid, ferr
		}
		x, xerr := sh.tableShift(children[1], table, digest)
		if xerr != nil {
			return term.Invalid, xerr
		}
		result, err = sh.store.App(f, x)
	case term.KindLam:
		children := sh.store.Children(id)
		b, berr := sh.tableShift(children[0], table, digest)
		if berr != nil {
			return term.Invalid, berr
		}
		result, err = sh.store.Lam(b)
	default:
		return term.Invalid, fmt.Errorf("shift: cannot TableShiftIVar a %v node", sh.store.Kind(id))
	}
	if err != nil {
		return term.Invalid, err
	}

	if !sh.noCache {
		sh.tblMemo.Add(key, result)
	}
	return result, nil
}
