// Package walk provides a child-first (post-order) ordering over a term DAG,
// the traversal every later phase (zipper bubbling, utility accounting)
// iterates in. The term store is acyclic by construction (hash-consing
// can only add a node whose children already exist), so this package never
// needs cycle detection — unlike its general-graph ancestor.
package walk

import "errors"

// ErrStoreNil is returned when a nil *term.Store is passed to ChildFirst.
var ErrStoreNil = errors.New("walk: store is nil")
