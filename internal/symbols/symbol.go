package symbols

import (
	"ferrite/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	// SymbolObject is a data object (variable or named constant).
	SymbolObject
	// SymbolProcedure is a function or subroutine.
	SymbolProcedure
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolObject:
		return "object"
	case SymbolProcedure:
		return "procedure"
	default:
		return "invalid"
	}
}

// ProcResult records the characterized result of a function, as far as the
// interface makes it knowable.
type ProcResult struct {
	Pointer     bool
	ProcPointer bool
	Contiguous  bool
}

// Symbol describes a named entity owned by a scope.
type Symbol struct {
	Name   source.StringID
	Kind   SymbolKind
	Attrs  Attr
	Assoc  Assoc
	Shape  Shape
	Rank   uint8
	Corank uint8
	Scope  ScopeID
	Span   source.Span
	// Alias links a use/host-associated symbol to the entity it renames.
	Alias SymbolID
	// Result holds function result characteristics; nil when unknown.
	Result *ProcResult
}

// IsNamedConstant reports whether the symbol is a PARAMETER.
func (s *Symbol) IsNamedConstant() bool {
	return s.Attrs.Has(AttrParameter)
}

// IsDummy reports whether the symbol is a dummy argument.
func (s *Symbol) IsDummy() bool {
	return s.Assoc == AssocDummy
}
