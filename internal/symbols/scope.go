package symbols

import (
	"ferrite/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	// ScopeGlobal is the root of the scope tree.
	ScopeGlobal
	// ScopeModule is a module scope.
	ScopeModule
	// ScopeProcedure is a function or subroutine body scope.
	ScopeProcedure
	// ScopeBlock is a BLOCK construct scope.
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeModule:
		return "module"
	case ScopeProcedure:
		return "procedure"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy.
// The hierarchy is acyclic by construction: parents always pre-exist
// their children in the arena.
type Scope struct {
	Kind     ScopeKind
	Parent   ScopeID
	Name     source.StringID
	Symbols  []SymbolID
	Children []ScopeID
}

// IsGlobal reports whether this is the root scope.
func (s *Scope) IsGlobal() bool { return s.Kind == ScopeGlobal }
