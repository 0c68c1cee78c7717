// Package sexpr reads and writes the curried/uncurried S-expression surface
// syntax for term.Expr trees: the external collaborator a driver or CLI uses
// to turn corpus files into Exprs and invention bodies back into text.
package sexpr

import "errors"

var ErrUnknownHead = errors.New("sexpr: unknown node head")
var ErrArityMismatch = errors.New("sexpr: arity mismatch")
var ErrUnterminatedList = errors.New("sexpr: unterminated list")
var ErrUnexpectedToken = errors.New("sexpr: unexpected token")
var ErrTrailingInput = errors.New("sexpr: trailing input after expression")
var ErrBadVarIndex = errors.New("sexpr: malformed variable index")
var ErrEmptyInput = errors.New("sexpr: empty input")
