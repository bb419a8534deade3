package expr

import (
	"fmt"

	"fortio.org/safecast"

	"ferrite/internal/source"
	"ferrite/internal/symbols"
)

// Exprs stores expression nodes in a compact slice-based arena.
// Nodes are built once by the front end and never mutated; the checkers
// hold only borrowing references into the arena.
type Exprs struct {
	nodes []Expr
}

// NewExprs creates an arena with index 0 reserved for NoExprID.
func NewExprs() *Exprs {
	return &Exprs{nodes: make([]Expr, 1, 64)}
}

// Get returns the node pointer or nil if the ID is invalid.
func (es *Exprs) Get(id ExprID) *Expr {
	if !id.IsValid() || int(id) >= len(es.nodes) {
		return nil
	}
	return &es.nodes[id]
}

// Len reports the number of allocated nodes excluding the sentinel.
func (es *Exprs) Len() int { return len(es.nodes) - 1 }

func (es *Exprs) alloc(e Expr) ExprID {
	value, err := safecast.Conv[uint32](len(es.nodes))
	if err != nil {
		panic(fmt.Errorf("expression arena overflow: %w", err))
	}
	es.nodes = append(es.nodes, e)
	return ExprID(value)
}

// SymbolRef builds a bare reference to a named entity.
func (es *Exprs) SymbolRef(sym symbols.SymbolID, rank, corank uint8, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindSymbolRef, Sym: sym, Rank: rank, Corank: corank, Span: span})
}

// IntConst builds a scalar integer constant with a folded value.
func (es *Exprs) IntConst(value int64, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindConstant, Cat: CatInteger, HasLit: true, Lit: value, Span: span})
}

// Const builds a typed constant without a folded scalar value.
func (es *Exprs) Const(cat TypeCategory, rank uint8, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindConstant, Cat: cat, Rank: rank, Span: span})
}

// BOZ builds an untyped binary/octal/hex literal.
func (es *Exprs) BOZ(span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindBOZLiteral, Span: span})
}

// Null builds the NULL() pointer literal.
func (es *Exprs) Null(span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindNullPointer, Span: span})
}

// StaticObject builds a reference to compiler-materialized static data.
func (es *Exprs) StaticObject(span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindStaticObject, Span: span})
}

// ProcRef builds a bare procedure designator. Exactly one of sym and
// intrinsic is expected to be set.
func (es *Exprs) ProcRef(sym symbols.SymbolID, intrinsic source.StringID, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindProcRef, Sym: sym, Intrinsic: intrinsic, Span: span})
}

// Call builds a function reference through a user symbol or a specific
// intrinsic.
func (es *Exprs) Call(sym symbols.SymbolID, intrinsic source.StringID, args []ExprID, rank uint8, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindCall, Sym: sym, Intrinsic: intrinsic, Args: args, Rank: rank, Span: span})
}

// Unary builds a unary operation.
func (es *Exprs) Unary(op OpKind, cat TypeCategory, x ExprID, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindUnary, Op: op, Cat: cat, Left: x, Rank: es.rankOf(x), Span: span})
}

// Binary builds a binary operation; the rank is the maximum operand rank
// (conformability is the front end's concern, not ours).
func (es *Exprs) Binary(op OpKind, cat TypeCategory, x, y ExprID, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindBinary, Op: op, Cat: cat, Left: x, Right: y, Rank: maxRank(es.rankOf(x), es.rankOf(y)), Span: span})
}

// Parens wraps an operand.
func (es *Exprs) Parens(x ExprID, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindParentheses, Left: x, Rank: es.rankOf(x), Span: span})
}

// Relational builds a comparison.
func (es *Exprs) Relational(op OpKind, x, y ExprID, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindRelational, Op: op, Cat: CatLogical, Left: x, Right: y, Rank: maxRank(es.rankOf(x), es.rankOf(y)), Span: span})
}

// ArrayRef builds a subscripted reference. The rank is the sum of the
// subscript ranks: a triplet contributes one, a vector subscript its own
// rank, a scalar subscript nothing.
func (es *Exprs) ArrayRef(base ExprID, subs []ExprID, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindArrayRef, Base: base, Args: subs, Rank: es.subscriptRank(subs), Span: span})
}

// CoarrayRef builds a coindexed reference; cosubscripts follow the
// subscripts in Args with NumSubs marking the split.
func (es *Exprs) CoarrayRef(base ExprID, subs, cosubs []ExprID, span source.Span) ExprID {
	args := make([]ExprID, 0, len(subs)+len(cosubs))
	args = append(args, subs...)
	args = append(args, cosubs...)
	n, err := safecast.Conv[uint8](len(subs))
	if err != nil {
		panic(fmt.Errorf("subscript count overflow: %w", err))
	}
	return es.alloc(Expr{Kind: KindCoarrayRef, Base: base, Args: args, NumSubs: n, Rank: es.subscriptRank(subs), Span: span})
}

// Component builds a derived-type component access.
func (es *Exprs) Component(base ExprID, sym symbols.SymbolID, rank uint8, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindComponent, Base: base, Sym: sym, Rank: rank, Span: span})
}

// Substring builds a character substring over parent with the given
// bounds.
func (es *Exprs) Substring(parent, lower, upper ExprID, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindSubstring, Base: parent, Left: lower, Right: upper, Rank: es.rankOf(parent), Span: span})
}

// ComplexPart selects the real or imaginary part of a complex object.
func (es *Exprs) ComplexPart(base ExprID, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindComplexPart, Base: base, Rank: es.rankOf(base), Span: span})
}

// ArrayCtor builds an array constructor (always rank 1).
func (es *Exprs) ArrayCtor(cat TypeCategory, items []ExprID, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindArrayCtor, Cat: cat, Args: items, Rank: 1, Span: span})
}

// StructCtor builds a structure constructor.
func (es *Exprs) StructCtor(items []ExprID, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindStructCtor, Cat: CatDerived, Args: items, Span: span})
}

// TypeParamInquiry asks for a type parameter; base may be invalid for an
// inquiry on the current instance.
func (es *Exprs) TypeParamInquiry(base ExprID, param TypeParamAttr, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindTypeParamInquiry, Base: base, Param: param, Span: span})
}

// DescriptorInquiry builds a materialized SIZE/bound query.
func (es *Exprs) DescriptorInquiry(base ExprID, field InquiryField, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindDescriptorInquiry, Base: base, Field: field, Span: span})
}

// Triplet builds a lower:upper:stride subscript; invalid IDs mean the
// default bound or unit stride.
func (es *Exprs) Triplet(lower, upper, stride ExprID, span source.Span) ExprID {
	return es.alloc(Expr{Kind: KindTriplet, Left: lower, Right: upper, Base: stride, Rank: 1, Span: span})
}

func (es *Exprs) rankOf(id ExprID) uint8 {
	if e := es.Get(id); e != nil {
		return e.Rank
	}
	return 0
}

func (es *Exprs) subscriptRank(subs []ExprID) uint8 {
	rank := uint8(0)
	for _, s := range subs {
		rank += es.rankOf(s)
	}
	return rank
}

func maxRank(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}
