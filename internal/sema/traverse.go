package sema

import (
	"ferrite/internal/expr"
)

// folder is the contract between the fold engine and a predicate.
// identity/combine/done define the combinator: conjunction-with-default-
// true for the boolean predicates, first-non-identity-result for the
// diagnostic and tri-state ones. visit is the per-node-kind override
// table; returning ok=false hands the node to structural recursion.
type folder[R any] interface {
	identity() R
	combine(R, R) R
	done(R) bool
	visit(expr.ExprID) (R, bool)
}

// fold visits id: the folder's override first, otherwise every
// structural child, combining results and short-circuiting once done.
// A node with no children (and no override) yields the identity, so each
// predicate's visit must map the leaf kinds it has to reject.
func fold[R any](cx *Context, f folder[R], id expr.ExprID) R {
	if res, ok := f.visit(id); ok {
		return res
	}
	acc := f.identity()
	cx.Exprs.EachChild(id, func(c expr.ExprID) bool {
		acc = f.combine(acc, fold(cx, f, c))
		return !f.done(acc)
	})
	return acc
}

// conjunction is the All-mode combinator: default true, logical AND,
// short-circuit on the first false.
type conjunction struct{}

func (conjunction) identity() bool         { return true }
func (conjunction) combine(a, b bool) bool { return a && b }
func (conjunction) done(r bool) bool       { return !r }

// firstResult is the Any-mode combinator over a comparable result type:
// the identity is the zero value and the first non-zero result wins.
type firstResult[R comparable] struct{}

func (firstResult[R]) identity() R { var zero R; return zero }

func (firstResult[R]) combine(a, b R) R {
	var zero R
	if a != zero {
		return a
	}
	return b
}

func (firstResult[R]) done(r R) bool {
	var zero R
	return r != zero
}
