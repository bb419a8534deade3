package sema

import (
	"ferrite/internal/expr"
	"ferrite/internal/symbols"
)

// IsConstantExpr determines whether an expression is a constant
// expression: evaluable purely from compile-time-determinable
// quantities. This is not the same thing as being foldable to a known
// value yet; the expression may reference kind type parameters whose
// values are not known at this stage.
func IsConstantExpr(cx *Context, id expr.ExprID) bool {
	if !id.IsValid() {
		return false
	}
	return fold(cx, constFolder{cx: cx}, id)
}

// ConstantParamValue reports whether a type-parameter value is constant:
// it must be explicit and its explicit expression constant.
func ConstantParamValue(cx *Context, pv expr.ParamValue) bool {
	return pv.IsExplicit() && IsConstantExpr(cx, pv.Value)
}

type constFolder struct {
	conjunction
	cx *Context
}

func (f constFolder) visit(id expr.ExprID) (bool, bool) {
	e := f.cx.Exprs.Get(id)
	if e == nil {
		return false, true
	}
	switch e.Kind {
	case expr.KindTypeParamInquiry:
		return e.Param == expr.ParamKind, true
	case expr.KindSymbolRef:
		sym := f.cx.Syms.Symbol(e.Sym)
		return sym != nil && (sym.IsNamedConstant() || sym.Attrs.Has(symbols.AttrImpliedDo)), true
	case expr.KindCoarrayRef:
		// Image-dependent, never constant.
		return false, true
	case expr.KindProcRef:
		// A procedure designator names a procedure, not a value.
		return false, true
	case expr.KindCall:
		if !e.Sym.IsValid() && e.Intrinsic.IsValid() {
			// TODO: accept other inquiry intrinsics.
			return f.cx.intrinsicName(e) == "kind", true
		}
		return false, true
	case expr.KindBinary:
		if e.Op == expr.OpDivide && e.Cat == expr.CatInteger {
			return f.integerDivision(e), true
		}
	}
	return false, false
}

// integerDivision forbids division by zero in constants: the divisor
// must fold to a non-zero scalar, and a divisor whose value cannot be
// determined makes the whole expression non-constant.
func (f constFolder) integerDivision(e *expr.Expr) bool {
	if !IsConstantExpr(f.cx, e.Left) {
		return false
	}
	divisor, ok := f.cx.Exprs.ScalarIntConstant(e.Right)
	return ok && divisor != 0
}
