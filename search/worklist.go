package search

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lcinvent/lcinvent/term"
	"github.com/lcinvent/lcinvent/zipper"
)

// deque is the worklist's pending-item queue, LIFO by default (matching the
// teacher's depth-first branch-and-bound stack) or FIFO when opts.FIFOWorklist
// is set.
type deque struct {
	items []WorklistItem
	fifo  bool
}

func newDeque(fifo bool) *deque { return &deque{fifo: fifo} }

func (d *deque) push(items ...WorklistItem) { d.items = append(d.items, items...) }

func (d *deque) pop() WorklistItem {
	if d.fifo {
		it := d.items[0]
		d.items = d.items[1:]
		return it
	}
	it := d.items[len(d.items)-1]
	d.items = d.items[:len(d.items)-1]
	return it
}

func (d *deque) len() int { return len(d.items) }

// Run searches for the best multi-arg, multi-use abstraction candidates over
// the zippers in catalogue, returning a Donelist ranked by utility. roots
// are the programs whose num_paths_to_node counts drive utility; they may be
// a subset of the roots the catalogue was built from, in which case nodes
// reachable only from the other roots count zero uses.
//
// Work fans out across opts.Threads goroutines sharing one worklist and one
// Donelist cutoff, the way the teacher's max-flow search drains one shared
// frontier across parallel augmenting-path probes, checked against ctx at
// every pop.
func Run(ctx context.Context, store *term.Store, catalogue *zipper.Catalogue, roots []term.NodeId, opts Options) (*Donelist, error) {
	if store == nil {
		return nil, ErrStoreNil
	}
	if catalogue == nil {
		return nil, ErrCatalogueNil
	}
	if opts.Threads < 1 {
		return nil, ErrThreadsInvalid
	}

	counts, err := pathCounts(store, roots)
	if err != nil {
		return nil, err
	}

	done := NewDonelist(opts.MaxDonelist)
	wl := newDeque(opts.FIFOWorklist)
	seed(store, catalogue, counts, opts, done, wl)

	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	cond := sync.NewCond(&mu)
	pending := int64(wl.len())

	worker := func() error {
		for {
			mu.Lock()
			for wl.len() == 0 && pending > 0 {
				cond.Wait()
			}
			if wl.len() == 0 {
				mu.Unlock()
				return nil
			}
			item := wl.pop()
			mu.Unlock()

			if gctx.Err() != nil {
				mu.Lock()
				pending--
				cond.Broadcast()
				mu.Unlock()
				return ErrCancelled
			}

			produced := extend(store, catalogue, counts, opts, done, item)
			if opts.AscendingWorklist {
				sort.Slice(produced, func(i, j int) bool { return produced[i].UpperBound < produced[j].UpperBound })
			}

			mu.Lock()
			pending += int64(len(produced)) - 1
			wl.push(produced...)
			cond.Broadcast()
			mu.Unlock()
		}
	}

	for i := 0; i < opts.Threads; i++ {
		g.Go(worker)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return done, nil
}

// seed builds the arity-1 starting candidates: for every catalogued zipper,
// nodes sharing it are grouped by full (left, right) edge into immediately
// completed candidates, and by left edge alone into worklist items open for
// further extension on the right.
func seed(store *term.Store, catalogue *zipper.Catalogue, counts map[term.NodeId]int, opts Options, done *Donelist, wl *deque) {
	for zid := zipper.ZId(0); zid < zipper.ZId(catalogue.NumPaths()); zid++ {
		nodes := catalogue.NodesOfZid(zid)
		if len(nodes) == 0 {
			continue
		}
		path := catalogue.Path(zid)

		azByNode := make(map[term.NodeId]zipper.AppliedZipper, len(nodes))
		groupsLR := map[string][]term.NodeId{}
		groupsL := map[string][]term.NodeId{}
		for _, n := range nodes {
			az, ok := catalogue.AppliedZipperAt(n, zid)
			if !ok {
				continue
			}
			azByNode[n] = az
			keyLR := encodeNodes(az.Left) + "#" + encodeNodes(az.Right)
			groupsLR[keyLR] = append(groupsLR[keyLR], n)
			keyL := encodeNodes(az.Left)
			groupsL[keyL] = append(groupsL[keyL], n)
		}

		tuple := ZTuple{Elems: []Elem{{Zid: zid, IvarIdx: 0}}, Arity: 1, Multiarg: []zipper.ZId{zid}}

		for _, group := range groupsLR {
			if len(group) < 2 && !opts.NoOptSingleUse {
				continue
			}
			rep := azByNode[group[0]]
			if !opts.NoOptFreeVars && (escapes(store, path, rep.Left, 0) || escapes(store, path, rep.Right, 0)) {
				continue
			}
			leftUtil := edgeUtilLeft(store, rep.Left)
			rightUtil := edgeUtilRight(store, rep.Right)
			numUses := sumCounts(counts, group)
			utility := utilityOf(1, numUses, leftUtil, rightUtil, nil, counts, group, nil)
			if utility > done.Cutoff() {
				done.Offer(FinishedItem{Tuple: tuple, Nodes: append([]term.NodeId(nil), group...), Utility: utility})
			}
		}

		for _, group := range groupsL {
			if len(group) < 2 && !opts.NoOptSingleUse {
				continue
			}
			rep := azByNode[group[0]]
			if !opts.NoOptFreeVars && escapes(store, path, rep.Left, 0) {
				continue
			}
			leftUtil := edgeUtilLeft(store, rep.Left)
			pendingRight := make(map[term.NodeId][]term.NodeId, len(group))
			for _, n := range group {
				pendingRight[n] = azByNode[n].Right
			}
			wl.push(WorklistItem{
				Tuple:        tuple,
				Nodes:        append([]term.NodeId(nil), group...),
				PendingRight: pendingRight,
				LeftUtility:  leftUtil,
				UpperBound:   opts.UpperBound,
			})
		}
	}
}

// extMapKey groups candidate extensions by the zid being added and which
// invention-variable slot it would bind to (a fresh one, or an existing one
// for a multi-use match).
type extMapKey struct {
	zid  zipper.ZId
	ivar int
}

// extend enumerates every way to grow item by one more zipper, scores and
// offers the resulting completed candidates to done, and returns the
// resulting extended WorklistItems still open for further growth.
func extend(store *term.Store, catalogue *zipper.Catalogue, counts map[term.NodeId]int, opts Options, done *Donelist, item WorklistItem) []WorklistItem {
	if !opts.NoOptUpperBound && item.UpperBound <= done.Cutoff() {
		return nil
	}

	lastZid := item.Tuple.LastZid()
	cut := catalogue.FirstMergeableZid(lastZid)

	candidates := map[extMapKey][]term.NodeId{}
	for _, n := range item.Nodes {
		for _, zid2 := range catalogue.ZidsOfNode(n) {
			if zid2 < cut {
				continue
			}
			az2, ok := catalogue.AppliedZipperAt(n, zid2)
			if !ok {
				continue
			}
			if item.Tuple.Arity < opts.MaxArity {
				k := extMapKey{zid2, item.Tuple.Arity}
				candidates[k] = append(candidates[k], n)
			}
			if !opts.NoOptForceMultiuse {
				for ivarIdx := 0; ivarIdx < item.Tuple.Arity; ivarIdx++ {
					repZid := item.Tuple.Multiarg[ivarIdx]
					repAz, ok2 := catalogue.AppliedZipperAt(n, repZid)
					if ok2 && repAz.Arg == az2.Arg {
						k := extMapKey{zid2, ivarIdx}
						candidates[k] = append(candidates[k], n)
					}
				}
			}
		}
	}

	keys := make([]extMapKey, 0, len(candidates))
	for k := range candidates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].zid != keys[j].zid {
			return keys[i].zid < keys[j].zid
		}
		return keys[i].ivar < keys[j].ivar
	})

	lastPath := catalogue.Path(lastZid)
	var produced []WorklistItem

	for _, k := range keys {
		nodes := candidates[k]
		newPath := catalogue.Path(k.zid)
		divIdx := divergenceIndex(lastPath, newPath)
		newTuple := item.Tuple.extend(k.zid, k.ivar, divIdx)
		preDepth := countBody(lastPath[:divIdx])

		azAt := make(map[term.NodeId]zipper.AppliedZipper, len(nodes))
		leftFoldAt := make(map[term.NodeId][]term.NodeId, len(nodes))
		rightFoldAt := make(map[term.NodeId][]term.NodeId, len(nodes))
		byFold := map[string][]term.NodeId{}
		for _, n := range nodes {
			az, ok := catalogue.AppliedZipperAt(n, k.zid)
			if !ok {
				continue
			}
			azAt[n] = az
			pr := item.PendingRight[n]
			var lf []term.NodeId
			if divIdx <= len(pr) {
				lf = pr[divIdx:]
			}
			var rf []term.NodeId
			if divIdx <= len(az.Left) {
				rf = az.Left[divIdx:]
			}
			leftFoldAt[n] = lf
			rightFoldAt[n] = rf
			fk := encodeNodes(lf) + "#" + encodeNodes(rf)
			byFold[fk] = append(byFold[fk], n)
		}

		for _, foldNodes := range byFold {
			if len(foldNodes) < 2 && !opts.NoOptSingleUse {
				continue
			}
			rep := foldNodes[0]
			lf := leftFoldAt[rep]
			rf := rightFoldAt[rep]
			if !opts.NoOptFreeVars {
				if escapes(store, lastPath[divIdx:], lf, preDepth) {
					continue
				}
				if escapes(store, newPath[divIdx:], rf, preDepth) {
					continue
				}
			}
			newLeftUtility := item.LeftUtility + edgeUtilLeft(store, rf)
			newRightUtility := item.RightUtility + edgeUtilRight(store, lf)

			byEdge := map[string][]term.NodeId{}
			for _, n := range foldNodes {
				byEdge[encodeNodes(azAt[n].Right)] = append(byEdge[encodeNodes(azAt[n].Right)], n)
			}
			for _, edgeNodes := range byEdge {
				if len(edgeNodes) < 2 && !opts.NoOptSingleUse {
					continue
				}
				repAz := azAt[edgeNodes[0]]
				if !opts.NoOptFreeVars && escapes(store, newPath, repAz.Right, 0) {
					continue
				}
				finalRightUtility := newRightUtility + edgeUtilRight(store, repAz.Right)
				numUses := sumCounts(counts, edgeNodes)
				argCost := func(n term.NodeId, e Elem) int {
					az, ok := catalogue.AppliedZipperAt(n, e.Zid)
					if !ok {
						return 0
					}
					return store.Cost(az.Arg)
				}
				utility := utilityOf(newTuple.Arity, numUses, newLeftUtility, finalRightUtility, newTuple.Multiuse, counts, edgeNodes, argCost)
				if utility > done.Cutoff() {
					done.Offer(FinishedItem{Tuple: newTuple, Nodes: append([]term.NodeId(nil), edgeNodes...), Utility: utility})
				}
			}

			pendingRight := make(map[term.NodeId][]term.NodeId, len(foldNodes))
			for _, n := range foldNodes {
				pendingRight[n] = azAt[n].Right
			}
			produced = append(produced, WorklistItem{
				Tuple:        newTuple,
				Nodes:        append([]term.NodeId(nil), foldNodes...),
				PendingRight: pendingRight,
				LeftUtility:  newLeftUtility,
				RightUtility: newRightUtility,
				UpperBound:   item.UpperBound,
			})
		}
	}

	return produced
}
