package sema

import (
	"fmt"

	"ferrite/internal/diag"
	"ferrite/internal/expr"
	"ferrite/internal/symbols"
)

// CheckSpecificationExpr validates that an expression may appear in a
// specification context (array bound, type-parameter value) given the
// enclosing scope. On failure one diagnostic naming the first offending
// subexpression is emitted through r; success emits nothing.
func CheckSpecificationExpr(cx *Context, id expr.ExprID, scope symbols.ScopeID, r diag.Reporter) {
	if why := specExprWhy(cx, id, scope); why != "" {
		diag.ReportError(r, diag.SemaSpecExprInvalid, cx.span(id),
			fmt.Sprintf("invalid specification expression: %s", why)).Emit()
	}
}

// specExprWhy returns "" when the expression is legal, else the reason
// the first offending subexpression is not.
func specExprWhy(cx *Context, id expr.ExprID, scope symbols.ScopeID) string {
	if !id.IsValid() {
		return ""
	}
	return fold(cx, specFolder{cx: cx, scope: scope}, id)
}

type specFolder struct {
	firstResult[string]
	cx    *Context
	scope symbols.ScopeID
}

func (f specFolder) visit(id expr.ExprID) (string, bool) {
	e := f.cx.Exprs.Get(id)
	if e == nil {
		return "unresolved expression", true
	}
	switch e.Kind {
	case expr.KindProcRef:
		return "dummy procedure argument", true
	case expr.KindCoarrayRef:
		return "coindexed reference", true
	case expr.KindSymbolRef:
		return f.symbol(e.Sym), true
	case expr.KindComponent:
		// The component symbol itself is not constrained.
		return fold(f.cx, f, e.Base), true
	case expr.KindDescriptorInquiry:
		// SIZE(), LBOUND() &c. valid in specification expressions were
		// already converted to descriptor inquiries by folding.
		return "", true
	case expr.KindCall:
		return f.call(id, e), true
	}
	return "", false
}

func (f specFolder) symbol(id symbols.SymbolID) string {
	sym := f.cx.Syms.Symbol(id)
	if sym == nil {
		return "reference to unresolved entity"
	}
	name := f.cx.Syms.Name(id)
	if sym.IsNamedConstant() {
		return ""
	}
	if sym.IsDummy() {
		switch {
		case sym.Attrs.Has(symbols.AttrOptional):
			return fmt.Sprintf("reference to OPTIONAL dummy argument '%s'", name)
		case sym.Attrs.Has(symbols.AttrIntentOut):
			return fmt.Sprintf("reference to INTENT(OUT) dummy argument '%s'", name)
		case sym.Kind == symbols.SymbolObject:
			return ""
		default:
			return "dummy procedure argument"
		}
	}
	if sym.Assoc == symbols.AssocUse || sym.Assoc == symbols.AssocHost {
		return ""
	}
	if owner := f.cx.Syms.Scope(sym.Scope); owner != nil && owner.Kind == symbols.ScopeModule {
		return ""
	}
	// Common-block membership is accepted as sufficient; the interaction
	// with EQUIVALENCE and blank common is a provisional rule.
	if sym.Kind == symbols.SymbolObject && sym.Assoc == symbols.AssocCommon {
		return ""
	}
	if f.cx.Syms.IsAncestor(sym.Scope, f.scope) {
		return ""
	}
	return fmt.Sprintf("reference to local entity '%s'", name)
}

func (f specFolder) call(id expr.ExprID, e *expr.Expr) string {
	if e.Sym.IsValid() {
		sym := f.cx.Syms.Symbol(f.cx.Syms.Ultimate(e.Sym))
		if sym == nil || !sym.Attrs.Has(symbols.AttrPure) {
			return fmt.Sprintf("reference to impure function '%s'", f.cx.Syms.Name(e.Sym))
		}
	} else {
		if f.cx.intrinsicName(e) == "present" {
			return "" // no need to check argument(s)
		}
		if IsConstantExpr(f.cx, id) {
			// Inquiry intrinsics need not check their argument(s).
			return ""
		}
	}
	for _, a := range e.Args {
		if why := fold(f.cx, f, a); why != "" {
			return why
		}
	}
	return ""
}
