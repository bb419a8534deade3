package expr

import (
	"ferrite/internal/symbols"
)

// EachChild invokes f on every structural child of id in source order,
// stopping early when f returns false. Invalid child slots (defaulted
// triplet bounds, absent inquiry bases) are skipped.
func (es *Exprs) EachChild(id ExprID, f func(ExprID) bool) {
	e := es.Get(id)
	if e == nil {
		return
	}
	visit := func(c ExprID) bool {
		if !c.IsValid() {
			return true
		}
		return f(c)
	}
	switch e.Kind {
	case KindSymbolRef, KindConstant, KindBOZLiteral, KindNullPointer,
		KindStaticObject, KindProcRef:
		// leaves
	case KindCall, KindArrayCtor, KindStructCtor:
		for _, a := range e.Args {
			if !visit(a) {
				return
			}
		}
	case KindUnary, KindParentheses:
		visit(e.Left)
	case KindBinary, KindRelational:
		if !visit(e.Left) {
			return
		}
		visit(e.Right)
	case KindArrayRef, KindCoarrayRef:
		if !visit(e.Base) {
			return
		}
		for _, a := range e.Args {
			if !visit(a) {
				return
			}
		}
	case KindComponent, KindComplexPart, KindTypeParamInquiry, KindDescriptorInquiry:
		visit(e.Base)
	case KindSubstring:
		if !visit(e.Base) {
			return
		}
		if !visit(e.Left) {
			return
		}
		visit(e.Right)
	case KindTriplet:
		if !visit(e.Left) {
			return
		}
		if !visit(e.Right) {
			return
		}
		visit(e.Base)
	}
}

// Subscripts returns a coarray reference's subscripts without its
// cosubscripts, or an array reference's subscripts.
func (es *Exprs) Subscripts(id ExprID) []ExprID {
	e := es.Get(id)
	if e == nil {
		return nil
	}
	switch e.Kind {
	case KindArrayRef:
		return e.Args
	case KindCoarrayRef:
		return e.Args[:e.NumSubs]
	}
	return nil
}

// LastSymbol resolves a designator to the symbol of its rightmost part:
// the component symbol for component accesses, the base symbol otherwise.
func (es *Exprs) LastSymbol(id ExprID) symbols.SymbolID {
	e := es.Get(id)
	if e == nil {
		return symbols.NoSymbolID
	}
	switch e.Kind {
	case KindSymbolRef, KindComponent:
		return e.Sym
	case KindArrayRef, KindCoarrayRef, KindSubstring, KindComplexPart:
		return es.LastSymbol(e.Base)
	}
	return symbols.NoSymbolID
}

// IsVariable reports whether id is a designator, i.e. names storage
// rather than a computed value. Parenthesizing a variable yields a
// non-variable expression.
func (es *Exprs) IsVariable(id ExprID) bool {
	e := es.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindSymbolRef, KindArrayRef, KindCoarrayRef, KindComponent,
		KindSubstring, KindComplexPart:
		return true
	}
	return false
}

// ScalarIntConstant looks through parentheses and returns the folded
// value of a rank-0 integer constant.
func (es *Exprs) ScalarIntConstant(id ExprID) (int64, bool) {
	for {
		e := es.Get(id)
		if e == nil {
			return 0, false
		}
		if e.Kind == KindParentheses {
			id = e.Left
			continue
		}
		if e.Kind == KindConstant && e.HasLit && e.Rank == 0 {
			return e.Lit, true
		}
		return 0, false
	}
}
