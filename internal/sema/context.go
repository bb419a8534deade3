package sema

import (
	"ferrite/internal/expr"
	"ferrite/internal/source"
	"ferrite/internal/symbols"
)

// Context bundles the read-only inputs every predicate needs: the
// expression arena and the symbol/scope table. Contexts carry no mutable
// state, so one Context may serve any number of concurrent checks.
type Context struct {
	Exprs *expr.Exprs
	Syms  *symbols.Table
}

func NewContext(es *expr.Exprs, syms *symbols.Table) *Context {
	return &Context{Exprs: es, Syms: syms}
}

func (cx *Context) intrinsicName(e *expr.Expr) string {
	if e == nil || !e.Intrinsic.IsValid() {
		return ""
	}
	name, _ := cx.Syms.Strings.Lookup(e.Intrinsic)
	return name
}

// isVariable extends the designator test with function references whose
// result is a data pointer: such calls name storage too.
func (cx *Context) isVariable(id expr.ExprID) bool {
	if cx.Exprs.IsVariable(id) {
		return true
	}
	e := cx.Exprs.Get(id)
	if e == nil || e.Kind != expr.KindCall || !e.Sym.IsValid() {
		return false
	}
	sym := cx.Syms.Symbol(cx.Syms.Ultimate(e.Sym))
	return sym != nil && sym.Result != nil && sym.Result.Pointer
}

func (cx *Context) span(id expr.ExprID) source.Span {
	if e := cx.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}
