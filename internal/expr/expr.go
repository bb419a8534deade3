package expr

import (
	"ferrite/internal/source"
	"ferrite/internal/symbols"
)

// Expr is one immutable expression node. A single struct serves every
// kind; fields not listed for a kind are zero.
//
//	SymbolRef:          Sym, Rank, Corank
//	Constant:           Cat, Rank, Lit+HasLit (folded scalar integers)
//	ProcRef, Call:      Sym or Intrinsic, Args (calls), Rank
//	Unary:              Op, Left
//	Binary, Relational: Op, Cat, Left, Right
//	Parentheses:        Left
//	ArrayRef:           Base, Args (subscripts), Rank
//	CoarrayRef:         Base, Args (subscripts then cosubscripts), NumSubs
//	Component:          Base, Sym, Rank
//	Substring:          Base, Left (lower), Right (upper)
//	ComplexPart:        Base
//	ArrayCtor:          Cat, Args, Rank=1
//	StructCtor:         Args
//	TypeParamInquiry:   Base (optional), Param
//	DescriptorInquiry:  Base, Field
//	Triplet:            Left (lower), Right (upper), Base (stride); an
//	                    invalid ID means the default bound / unit stride
type Expr struct {
	Kind    ExprKind
	Op      OpKind
	Cat     TypeCategory
	Param   TypeParamAttr
	Field   InquiryField
	Rank    uint8
	Corank  uint8
	NumSubs uint8
	HasLit  bool
	Lit     int64
	Sym     symbols.SymbolID
	// Intrinsic names the specific intrinsic on calls and procedure
	// designators that do not resolve to a user symbol.
	Intrinsic source.StringID
	Left      ExprID
	Right     ExprID
	Base      ExprID
	Args      []ExprID
	Span      source.Span
}

// IsStrideOne reports whether a triplet has the default (unit) stride or
// a stride that folds to 1.
func (es *Exprs) IsStrideOne(id ExprID) bool {
	t := es.Get(id)
	if t == nil || t.Kind != KindTriplet {
		return false
	}
	if !t.Base.IsValid() {
		return true
	}
	v, ok := es.ScalarIntConstant(t.Base)
	return ok && v == 1
}

// ParamValueKind classifies a type-parameter value in a declaration.
type ParamValueKind uint8

const (
	// ParamExplicit carries an explicit expression.
	ParamExplicit ParamValueKind = iota
	// ParamAssumed is an assumed (*) type parameter.
	ParamAssumed
	// ParamDeferred is a deferred (:) type parameter.
	ParamDeferred
)

// ParamValue is the value of a type parameter in a declaration.
type ParamValue struct {
	Kind  ParamValueKind
	Value ExprID
}

// IsExplicit reports whether the value carries an explicit expression.
func (pv ParamValue) IsExplicit() bool { return pv.Kind == ParamExplicit }
