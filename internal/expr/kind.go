package expr

// ExprKind enumerates expression node kinds.
// The checkers in internal/sema switch over this set; kinds they do not
// special-case fall back to structural recursion, which must stay
// conservative when new kinds are added here.
type ExprKind uint8

const (
	KindInvalid ExprKind = iota
	// KindSymbolRef is a bare reference to a named entity.
	KindSymbolRef
	// KindConstant is a typed literal constant.
	KindConstant
	// KindBOZLiteral is an untyped binary/octal/hex literal.
	KindBOZLiteral
	// KindNullPointer is the NULL() pointer literal.
	KindNullPointer
	// KindStaticObject is a compiler-materialized static data object,
	// such as a character literal in read-only storage.
	KindStaticObject
	// KindProcRef is a bare procedure designator (not a call).
	KindProcRef
	// KindCall is a function reference.
	KindCall
	// KindUnary is a unary operation.
	KindUnary
	// KindBinary is a binary operation.
	KindBinary
	// KindParentheses wraps an operand.
	KindParentheses
	// KindRelational is a comparison.
	KindRelational
	// KindArrayRef is a subscripted array reference.
	KindArrayRef
	// KindCoarrayRef is a coindexed reference.
	KindCoarrayRef
	// KindComponent is a derived-type component access.
	KindComponent
	// KindSubstring is a character substring.
	KindSubstring
	// KindComplexPart selects %RE or %IM of a complex object.
	KindComplexPart
	// KindArrayCtor is an array constructor.
	KindArrayCtor
	// KindStructCtor is a structure constructor.
	KindStructCtor
	// KindTypeParamInquiry asks for a type parameter of an object.
	KindTypeParamInquiry
	// KindDescriptorInquiry is a SIZE/bound query already validated and
	// materialized by a prior folding pass.
	KindDescriptorInquiry
	// KindTriplet is a lower:upper:stride subscript.
	KindTriplet
)

func (k ExprKind) String() string {
	switch k {
	case KindSymbolRef:
		return "SymbolRef"
	case KindConstant:
		return "Constant"
	case KindBOZLiteral:
		return "BOZLiteral"
	case KindNullPointer:
		return "NullPointer"
	case KindStaticObject:
		return "StaticObject"
	case KindProcRef:
		return "ProcRef"
	case KindCall:
		return "Call"
	case KindUnary:
		return "Unary"
	case KindBinary:
		return "Binary"
	case KindParentheses:
		return "Parentheses"
	case KindRelational:
		return "Relational"
	case KindArrayRef:
		return "ArrayRef"
	case KindCoarrayRef:
		return "CoarrayRef"
	case KindComponent:
		return "Component"
	case KindSubstring:
		return "Substring"
	case KindComplexPart:
		return "ComplexPart"
	case KindArrayCtor:
		return "ArrayCtor"
	case KindStructCtor:
		return "StructCtor"
	case KindTypeParamInquiry:
		return "TypeParamInquiry"
	case KindDescriptorInquiry:
		return "DescriptorInquiry"
	case KindTriplet:
		return "Triplet"
	default:
		return "Invalid"
	}
}

// OpKind enumerates operators carried by unary/binary/relational nodes.
type OpKind uint8

const (
	OpNone OpKind = iota
	OpNegate
	OpNot
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
	OpConcat
	OpAnd
	OpOr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// TypeCategory is the coarse type classification the checkers need.
type TypeCategory uint8

const (
	CatNone TypeCategory = iota
	CatInteger
	CatReal
	CatComplex
	CatCharacter
	CatLogical
	CatDerived
)

// TypeParamAttr distinguishes kind from length type parameters.
type TypeParamAttr uint8

const (
	// ParamKind is a kind type parameter, fixed at compile time.
	ParamKind TypeParamAttr = iota
	// ParamLen is a length type parameter.
	ParamLen
)

// InquiryField says which descriptor field an inquiry reads.
type InquiryField uint8

const (
	InquirySize InquiryField = iota
	InquiryLowerBound
	InquiryUpperBound
	InquiryExtent
	InquiryLen
)
