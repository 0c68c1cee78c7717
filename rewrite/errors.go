// Package rewrite replaces occurrences of a chosen invention throughout a
// corpus with calls to a fresh named primitive, and rebuilds every ancestor
// on the path back to each program root — the external collaborator the
// search and driver packages hand their winning candidate to.
package rewrite

import "errors"

// ErrEmptyWinner is returned when Apply is given a FinishedItem with no
// occurrence nodes.
var ErrEmptyWinner = errors.New("rewrite: winner has no occurrence nodes")

// ErrBadPath indicates a catalogue path disagreed with the actual shape of
// the node it was recorded against (a Func/Arg step into a non-App, or a
// Body step into a non-Lam) — an invariant violation between zipper and
// rewrite, never expected in legal use.
var ErrBadPath = errors.New("rewrite: path step does not match node kind")
