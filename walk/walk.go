// File: walk.go
// Role: child-first topological ordering, adapted from dfs.TopologicalSort's
// visited-state DFS. The term store is acyclic by construction, so there is
// no Gray (in-progress) state to detect a back-edge with — only "seen" and
// "not yet seen" — but the traversal shape (visited map, post-order append,
// cancellation check at entry) is the same idiom.
package walk

import (
	"context"

	"github.com/lcinvent/lcinvent/term"
)

// Option configures ChildFirst.
type Option func(*options)

type options struct {
	ctx context.Context
}

func defaultOptions() options { return options{ctx: context.Background()} }

// WithCancelContext sets the cancellation context for ChildFirst. A nil
// context has no effect.
func WithCancelContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// walker encapsulates the traversal state for one ChildFirst call.
type walker struct {
	store   *term.Store
	opts    options
	visited map[term.NodeId]bool
	order   []term.NodeId
}

// ChildFirst returns every node reachable from roots, each node preceded in
// the result by all of its children. Each node appears exactly once,
// regardless of how many parents reference it — the whole point of walking
// the hash-consed DAG once up front. Roots are typically a Programs node's
// children (one per corpus program); passing the Programs node itself also
// works and appends it last.
func ChildFirst(store *term.Store, roots []term.NodeId, opts ...Option) ([]term.NodeId, error) {
	if store == nil {
		return nil, ErrStoreNil
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w := &walker{
		store:   store,
		opts:    o,
		visited: make(map[term.NodeId]bool, store.Len()),
		order:   make([]term.NodeId, 0, store.Len()),
	}

	for _, r := range roots {
		if !w.visited[r] {
			if err := w.visit(r); err != nil {
				return nil, err
			}
		}
	}

	return w.order, nil
}

// visit performs a post-order DFS from id, respecting cancellation.
func (w *walker) visit(id term.NodeId) error {
	select {
	case <-w.opts.ctx.Done():
		return w.opts.ctx.Err()
	default:
	}

	w.visited[id] = true

	for _, c := range w.store.Children(id) {
		if !w.visited[c] {
			if err := w.visit(c); err != nil {
				return err
			}
		}
	}

	w.order = append(w.order, id)
	return nil
}
