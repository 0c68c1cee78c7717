// Package zipper builds, for every node of a term DAG, every "applied
// zipper" reachable by bubbling a candidate abstraction hole upward,
// then deduplicates and indexes the resulting paths into a dense catalogue.
package zipper

import "errors"

// ErrIVarInCorpus indicates bubbling reached an IVar node. The corpus must
// never contain invention variables; encountering one here is a fatal
// invariant violation rather than a recoverable condition.
var ErrIVarInCorpus = errors.New("zipper: unexpected invention variable during bubbling")

// ErrUnknownKind indicates a node kind bubbling does not know how to handle
// (e.g. a Programs node reached mid-tree, which should never happen since
// Programs is top-level only).
var ErrUnknownKind = errors.New("zipper: unexpected node kind during bubbling")
