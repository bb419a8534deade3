package sema

import (
	"ferrite/internal/expr"
	"ferrite/internal/intrinsics"
	"ferrite/internal/symbols"
)

// triState is the contiguity analysis result: unknown until some node
// determines the answer.
type triState uint8

const (
	triUnknown triState = iota
	triFalse
	triTrue
)

func (t triState) yes() bool { return t == triTrue }

// IsSimplyContiguous determines whether an array-valued expression is
// guaranteed to occupy consecutive memory. Non-variable expressions
// (computed values) are trivially contiguous; for variables an unknown
// analysis result resolves to false.
func IsSimplyContiguous(cx *Context, id expr.ExprID, table *intrinsics.Table) bool {
	if !id.IsValid() {
		return false
	}
	if !cx.isVariable(id) {
		return true
	}
	return fold(cx, contigFolder{cx: cx, table: table}, id).yes()
}

type contigFolder struct {
	firstResult[triState]
	cx    *Context
	table *intrinsics.Table
}

func (f contigFolder) visit(id expr.ExprID) (triState, bool) {
	e := f.cx.Exprs.Get(id)
	if e == nil {
		return triFalse, true
	}
	switch e.Kind {
	case expr.KindSymbolRef:
		return f.symbol(e.Sym), true
	case expr.KindArrayRef:
		return f.arrayRef(id, e), true
	case expr.KindCoarrayRef:
		if _, ok := f.checkSubscripts(f.cx.Exprs.Subscripts(id)); ok {
			return triTrue, true
		}
		return triFalse, true
	case expr.KindComponent:
		// A component of an array-valued base is never simply contiguous.
		if base := f.cx.Exprs.Get(e.Base); base != nil && base.Rank == 0 &&
			f.symbol(e.Sym) == triTrue {
			return triTrue, true
		}
		return triFalse, true
	case expr.KindComplexPart, expr.KindSubstring:
		return triFalse, true
	case expr.KindCall:
		return f.functionResult(e), true
	}
	return triUnknown, false
}

func (f contigFolder) symbol(id symbols.SymbolID) triState {
	sym := f.cx.Syms.Symbol(id)
	if sym == nil {
		return triFalse
	}
	switch {
	case sym.Attrs.Has(symbols.AttrContiguous) || sym.Rank == 0:
		return triTrue
	case sym.Attrs.Has(symbols.AttrPointer):
		return triFalse
	case sym.Kind == symbols.SymbolObject:
		// ALLOCATABLEs are deferred shape, not assumed, and the runtime
		// always allocates them contiguously.
		if sym.Shape != symbols.ShapeAssumedShape && sym.Shape != symbols.ShapeAssumedRank {
			return triTrue
		}
		return triFalse
	default:
		return triFalse
	}
}

func (f contigFolder) arrayRef(id expr.ExprID, e *expr.Expr) triState {
	if f.symbol(f.cx.Exprs.LastSymbol(id)) != triTrue {
		return triFalse
	}
	rank, ok := f.checkSubscripts(e.Args)
	if !ok {
		return triFalse
	}
	// a(:)%b(1,1) is not contiguous; a(1)%b(:,:) is.
	if rank > 0 || e.Rank == 0 {
		return triTrue
	}
	return triFalse
}

func (f contigFolder) functionResult(e *expr.Expr) triState {
	if result, ok := intrinsics.CharacterizeResult(e, f.cx.Syms, f.table); ok {
		if !result.ProcPointer && result.Pointer && result.Contiguous {
			return triTrue
		}
	}
	return triFalse
}

// checkSubscripts scans a subscript list from the last dimension to the
// first and returns the rank the reference would have if it can possibly
// be simply contiguous. Advancing (triplet) subscripts must have unit
// stride and may carry explicit bounds only in the rightmost triplet;
// a positive-rank or post-triplet scalar subscript invalidates the
// reference.
func (f contigFolder) checkSubscripts(subs []expr.ExprID) (int, bool) {
	anyTriplet := false
	rank := 0
	for j := len(subs) - 1; j >= 0; j-- {
		sub := f.cx.Exprs.Get(subs[j])
		if sub == nil {
			return 0, false
		}
		if sub.Kind == expr.KindTriplet {
			if !f.cx.Exprs.IsStrideOne(subs[j]) {
				return 0, false
			}
			if anyTriplet {
				if sub.Left.IsValid() || sub.Right.IsValid() {
					// All triplets before the last one must be just ":".
					return 0, false
				}
			} else {
				anyTriplet = true
			}
			rank++
		} else if anyTriplet || sub.Rank > 0 {
			return 0, false
		}
	}
	return rank, true
}
