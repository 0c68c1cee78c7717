package search

import (
	"github.com/lcinvent/lcinvent/term"
	"github.com/lcinvent/lcinvent/zipper"
)

// Elem names one zipper participating in a multi-arg abstraction and the
// invention-variable index it maps to.
type Elem struct {
	Zid     zipper.ZId
	IvarIdx int
}

// ZTuple is a multi-arg abstraction candidate: an ordered set of zippers,
// each bound to an invention-variable slot, with enough bookkeeping to
// extend it by one more zipper without re-deriving history.
type ZTuple struct {
	Elems          []Elem       // sorted by Zid
	Arity          int          // number of distinct ivars
	Multiarg       []zipper.ZId // Multiarg[i] is the first zid introduced for ivar i
	Multiuse       []Elem       // elements that reuse an existing ivar, in introduction order
	DivergenceIdxs []int        // DivergenceIdxs[k] is where Elems[k+1] first diverges from Elems[k]
}

// LastZid returns the zid of the most recently added element.
func (t ZTuple) LastZid() zipper.ZId { return t.Elems[len(t.Elems)-1].Zid }

// extend returns a new ZTuple with one more element appended. ivarIdx equal
// to the current arity introduces a fresh ivar (multi-arg); any smaller
// ivarIdx reuses an existing one (multi-use).
func (t ZTuple) extend(zid zipper.ZId, ivarIdx, divergenceIdx int) ZTuple {
	nt := ZTuple{
		Elems:          append(append([]Elem(nil), t.Elems...), Elem{Zid: zid, IvarIdx: ivarIdx}),
		DivergenceIdxs: append(append([]int(nil), t.DivergenceIdxs...), divergenceIdx),
		Multiarg:       append([]zipper.ZId(nil), t.Multiarg...),
		Multiuse:       append([]Elem(nil), t.Multiuse...),
	}
	if ivarIdx == len(t.Multiarg) {
		nt.Multiarg = append(nt.Multiarg, zid)
		nt.Arity = t.Arity + 1
	} else {
		nt.Multiuse = append(nt.Multiuse, Elem{Zid: zid, IvarIdx: ivarIdx})
		nt.Arity = t.Arity
	}
	return nt
}

// CompareZTuple totally orders two tuples: arity, then element-by-element
// (zid, then ivar index). Used to break utility ties deterministically.
func CompareZTuple(a, b ZTuple) int {
	if a.Arity != b.Arity {
		if a.Arity < b.Arity {
			return -1
		}
		return 1
	}
	for i := 0; i < len(a.Elems) && i < len(b.Elems); i++ {
		if a.Elems[i].Zid != b.Elems[i].Zid {
			if a.Elems[i].Zid < b.Elems[i].Zid {
				return -1
			}
			return 1
		}
		if a.Elems[i].IvarIdx != b.Elems[i].IvarIdx {
			if a.Elems[i].IvarIdx < b.Elems[i].IvarIdx {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a.Elems) < len(b.Elems):
		return -1
	case len(a.Elems) > len(b.Elems):
		return 1
	default:
		return 0
	}
}

// WorklistItem is a partially built abstraction candidate awaiting further
// extension. PendingRight holds, per node where the tuple currently applies,
// the still-open right edge of the most recently added zipper — the part of
// the original spec's "right edge" that stays unconstrained until either a
// further extension folds it or the candidate is finalized.
type WorklistItem struct {
	Tuple        ZTuple
	Nodes        []term.NodeId
	PendingRight map[term.NodeId][]term.NodeId
	LeftUtility  int
	RightUtility int
	UpperBound   int
}

// FinishedItem is a completed, scored candidate.
type FinishedItem struct {
	Tuple   ZTuple
	Nodes   []term.NodeId
	Utility int
}

// Options tunes the worklist search. The zero value is not meaningful;
// build one with NewOptions.
type Options struct {
	MaxArity             int
	Threads              int
	FIFOWorklist         bool
	AscendingWorklist    bool
	UpperBound           int
	MaxDonelist          int
	NoOptFreeVars        bool
	NoOptSingleUse       bool
	NoOptUpperBound      bool
	NoOptForceMultiuse   bool
	NoOptUselessAbstract bool
}

// Option customizes Options before a Run.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		MaxArity:    2,
		Threads:     1,
		UpperBound:  1 << 40, // permissive sentinel, not a tuned bound (see DESIGN.md)
		MaxDonelist: defaultMaxDonelist,
	}
}

// NewOptions builds Options from defaults plus opts, applied in order.
func NewOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxArity caps the number of distinct invention variables per candidate.
func WithMaxArity(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxArity = n
		}
	}
}

// WithThreads sets worklist worker-pool parallelism.
func WithThreads(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Threads = n
		}
	}
}

// WithFIFOWorklist selects FIFO pop order; default is LIFO.
func WithFIFOWorklist(fifo bool) Option {
	return func(o *Options) { o.FIFOWorklist = fifo }
}

// WithAscendingWorklist sorts newly produced items ascending by upper bound
// before they are pushed back onto the worklist.
func WithAscendingWorklist(asc bool) Option {
	return func(o *Options) { o.AscendingWorklist = asc }
}

// WithUpperBound overrides the admissible (permissive) utility upper bound
// assigned to freshly seeded worklist items.
func WithUpperBound(ub int) Option {
	return func(o *Options) { o.UpperBound = ub }
}

// WithMaxDonelist caps the number of FinishedItems retained.
func WithMaxDonelist(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxDonelist = n
		}
	}
}

// WithNoOptFreeVars disables escape pruning (keeps candidates whose fold or
// outer edges reference a variable bound above the abstraction point).
func WithNoOptFreeVars(v bool) Option { return func(o *Options) { o.NoOptFreeVars = v } }

// WithNoOptSingleUse keeps singleton node groups instead of discarding them.
func WithNoOptSingleUse(v bool) Option { return func(o *Options) { o.NoOptSingleUse = v } }

// WithNoOptUpperBound disables upper-bound pruning of worklist items.
func WithNoOptUpperBound(v bool) Option { return func(o *Options) { o.NoOptUpperBound = v } }

// WithNoOptForceMultiuse disables the multi-use extension path, so every
// extension introduces a fresh ivar up to MaxArity.
func WithNoOptForceMultiuse(v bool) Option { return func(o *Options) { o.NoOptForceMultiuse = v } }

// WithNoOptUselessAbstract sets Options.NoOptUselessAbstract. Run does not
// read this field; degenerate (identity-equivalent) candidates are filtered,
// or kept, by the caller after the search.
func WithNoOptUselessAbstract(v bool) Option {
	return func(o *Options) { o.NoOptUselessAbstract = v }
}
