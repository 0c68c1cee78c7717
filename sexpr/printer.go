// File: printer.go
// Role: pretty-print a stored term back into curried S-expression surface
// syntax, the inverse of parser.go. IVars print with their already-assigned
// declaration-order index, satisfying arity-aware invention printing without
// any extra bookkeeping here.
package sexpr

import (
	"fmt"
	"strings"

	"github.com/lcinvent/lcinvent/term"
)

// Print renders the subtree rooted at id in curried form.
func Print(store *term.Store, id term.NodeId) string {
	var b strings.Builder
	printNode(&b, store, id)
	return b.String()
}

func printNode(b *strings.Builder, store *term.Store, id term.NodeId) {
	switch store.Kind(id) {
	case term.KindVar:
		fmt.Fprintf(b, "$%d", store.Index(id))
	case term.KindIVar:
		fmt.Fprintf(b, "#%d", store.Index(id))
	case term.KindPrim:
		b.WriteString(store.Sym(id))
	case term.KindApp:
		children := store.Children(id)
		b.WriteString("(app ")
		printNode(b, store, children[0])
		b.WriteByte(' ')
		printNode(b, store, children[1])
		b.WriteByte(')')
	case term.KindLam:
		b.WriteString("(lam ")
		printNode(b, store, store.Children(id)[0])
		b.WriteByte(')')
	case term.KindPrograms:
		b.WriteString("(programs")
		for _, c := range store.Children(id) {
			b.WriteByte(' ')
			printNode(b, store, c)
		}
		b.WriteByte(')')
	}
}

// PrintExpr renders a standalone Expr the same way Print renders a stored
// node, for callers that have not yet inserted the tree into a Store.
func PrintExpr(e *term.Expr) string {
	var b strings.Builder
	printExprNode(&b, e)
	return b.String()
}

func printExprNode(b *strings.Builder, e *term.Expr) {
	switch e.Kind {
	case term.KindVar:
		fmt.Fprintf(b, "$%d", e.Index)
	case term.KindIVar:
		fmt.Fprintf(b, "#%d", e.Index)
	case term.KindPrim:
		b.WriteString(e.Sym)
	case term.KindApp:
		b.WriteString("(app ")
		printExprNode(b, e.Children[0])
		b.WriteByte(' ')
		printExprNode(b, e.Children[1])
		b.WriteByte(')')
	case term.KindLam:
		b.WriteString("(lam ")
		printExprNode(b, e.Children[0])
		b.WriteByte(')')
	case term.KindPrograms:
		b.WriteString("(programs")
		for _, c := range e.Children {
			b.WriteByte(' ')
			printExprNode(b, c)
		}
		b.WriteByte(')')
	}
}
