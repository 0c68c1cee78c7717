// Package shift implements de Bruijn / invention-variable index shifting
// over a term.Store, with per-kind memoization. Three kinds are
// supported: ShiftVar (de Bruijn variables), ShiftIVar (invention
// variables), and TableShiftIVar (per-index invention-variable remapping).
package shift

import "errors"

// ErrWouldCapture indicates a shift would have produced a negative de
// Bruijn or invention-variable index, i.e. it would capture a binder that
// does not exist. Legal callers pre-check free_vars/free_ivars before
// shifting, so this is treated as an assertion failure rather
// than a recoverable condition.
var ErrWouldCapture = errors.New("shift: operation would capture a binder")
