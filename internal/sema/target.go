package sema

import (
	"fmt"

	"ferrite/internal/diag"
	"ferrite/internal/expr"
	"ferrite/internal/symbols"
)

// IsInitialDataTarget determines whether an expression is allowable as
// the static data address used to initialize a pointer with "=> x".
// Only addresses of named, persistent objects qualify; computed values
// never do. Attribute violations on referenced symbols are reported
// through r but do not affect the structural verdict: a diagnosed
// symbol reference still counts as a legal target shape.
func IsInitialDataTarget(cx *Context, id expr.ExprID, r diag.Reporter) bool {
	if !id.IsValid() {
		return false
	}
	return fold(cx, targetFolder{cx: cx, reporter: r}, id)
}

type targetFolder struct {
	conjunction
	cx       *Context
	reporter diag.Reporter
}

func (f targetFolder) visit(id expr.ExprID) (bool, bool) {
	e := f.cx.Exprs.Get(id)
	if e == nil {
		return false, true
	}
	switch e.Kind {
	case expr.KindNullPointer:
		return true, true
	case expr.KindSymbolRef:
		return f.symbol(e), true
	case expr.KindBOZLiteral, expr.KindConstant, expr.KindStaticObject,
		expr.KindTypeParamInquiry, expr.KindDescriptorInquiry,
		expr.KindCoarrayRef, expr.KindArrayCtor, expr.KindStructCtor,
		expr.KindCall, expr.KindProcRef, expr.KindUnary, expr.KindBinary,
		expr.KindRelational:
		return false, true
	case expr.KindParentheses:
		return fold(f.cx, f, e.Left), true
	case expr.KindArrayRef:
		return f.arrayRef(e), true
	case expr.KindTriplet:
		return f.triplet(e), true
	case expr.KindSubstring:
		return f.constantOrAbsent(e.Left) && f.constantOrAbsent(e.Right) &&
			fold(f.cx, f, e.Base), true
	}
	return false, false
}

// symbol reports each violated precondition on the ultimate symbol and
// still returns true: structural and attribute legality are checked
// together but reported independently.
func (f targetFolder) symbol(e *expr.Expr) bool {
	ultimate := f.cx.Syms.Ultimate(e.Sym)
	sym := f.cx.Syms.Symbol(ultimate)
	if sym == nil {
		return false
	}
	name := f.cx.Syms.Name(ultimate)
	switch {
	case sym.Attrs.Has(symbols.AttrAllocatable):
		f.report(diag.SemaTargetAllocatable, e,
			"an initial data target may not be a reference to an ALLOCATABLE '%s'", name)
	case sym.Corank > 0:
		f.report(diag.SemaTargetCoarray, e,
			"an initial data target may not be a reference to a coarray '%s'", name)
	case !sym.Attrs.Has(symbols.AttrTarget):
		f.report(diag.SemaTargetNotTarget, e,
			"an initial data target may not be a reference to an object '%s' that lacks the TARGET attribute", name)
	case !f.cx.Syms.IsSaved(ultimate):
		f.report(diag.SemaTargetNotSaved, e,
			"an initial data target may not be a reference to an object '%s' that lacks the SAVE attribute", name)
	}
	return true
}

func (f targetFolder) arrayRef(e *expr.Expr) bool {
	if !fold(f.cx, f, e.Base) {
		return false
	}
	for _, s := range e.Args {
		sub := f.cx.Exprs.Get(s)
		if sub == nil {
			return false
		}
		if sub.Kind == expr.KindTriplet {
			if !f.triplet(sub) {
				return false
			}
		} else if sub.Rank != 0 || !IsConstantExpr(f.cx, s) {
			return false
		}
	}
	return true
}

func (f targetFolder) triplet(e *expr.Expr) bool {
	return f.constantOrAbsent(e.Left) && f.constantOrAbsent(e.Right) &&
		f.constantOrAbsent(e.Base)
}

// constantOrAbsent treats a defaulted bound or stride as constant.
func (f targetFolder) constantOrAbsent(id expr.ExprID) bool {
	return !id.IsValid() || IsConstantExpr(f.cx, id)
}

func (f targetFolder) report(code diag.Code, e *expr.Expr, format string, args ...any) {
	diag.ReportError(f.reporter, code, e.Span, fmt.Sprintf(format, args...)).Emit()
}
