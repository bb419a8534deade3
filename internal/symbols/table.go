package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"ferrite/internal/source"
)

// Table stores scopes and symbols in compact slice-based arenas.
// Index 0 of each arena is reserved for the invalid ID.
type Table struct {
	Strings *source.Interner
	scopes  []Scope
	symbols []Symbol
	global  ScopeID
}

// NewTable creates a table with the global scope pre-allocated.
func NewTable() *Table {
	t := &Table{
		Strings: source.NewInterner(),
		scopes:  make([]Scope, 1, 16),
		symbols: make([]Symbol, 1, 64),
	}
	t.global = t.NewScope(ScopeGlobal, NoScopeID, source.NoStringID)
	return t
}

// Global returns the root scope ID.
func (t *Table) Global() ScopeID { return t.global }

// NewScope allocates a scope and links it under parent.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, name source.StringID) ScopeID {
	value, err := safecast.Conv[uint32](len(t.scopes))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	id := ScopeID(value)
	t.scopes = append(t.scopes, Scope{
		Kind:   kind,
		Parent: parent,
		Name:   name,
	})
	if parent.IsValid() {
		if p := t.Scope(parent); p != nil {
			p.Children = append(p.Children, id)
		}
	}
	return id
}

// Scope returns the scope pointer or nil if the ID is invalid.
func (t *Table) Scope(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// NewSymbol allocates a symbol and registers it with its owning scope.
func (t *Table) NewSymbol(sym Symbol) SymbolID {
	value, err := safecast.Conv[uint32](len(t.symbols))
	if err != nil {
		panic(fmt.Errorf("symbol arena overflow: %w", err))
	}
	id := SymbolID(value)
	t.symbols = append(t.symbols, sym)
	if owner := t.Scope(sym.Scope); owner != nil {
		owner.Symbols = append(owner.Symbols, id)
	}
	return id
}

// Symbol returns the symbol pointer or nil if the ID is invalid.
func (t *Table) Symbol(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(t.symbols) {
		return nil
	}
	return &t.symbols[id]
}

// Name returns the symbol's name, or "" for invalid IDs.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbol(id)
	if sym == nil {
		return ""
	}
	name, _ := t.Strings.Lookup(sym.Name)
	return name
}

// Ultimate resolves a chain of use/host associations to the original
// declaration.
func (t *Table) Ultimate(id SymbolID) SymbolID {
	for {
		sym := t.Symbol(id)
		if sym == nil || !sym.Alias.IsValid() || sym.Alias == id {
			return id
		}
		id = sym.Alias
	}
}

// IsAncestor reports whether owner is a proper ancestor of from
// (the global scope included). The walk ascends parent links from the
// checking scope until it reaches the root.
func (t *Table) IsAncestor(owner, from ScopeID) bool {
	s := from
	for {
		cur := t.Scope(s)
		if cur == nil || cur.IsGlobal() {
			return false
		}
		s = cur.Parent
		if s == owner {
			return true
		}
	}
}

// IsSaved reports whether the object persists for the whole execution:
// either declared SAVE or owned by a module or the global scope.
func (t *Table) IsSaved(id SymbolID) bool {
	sym := t.Symbol(id)
	if sym == nil {
		return false
	}
	if sym.Attrs.Has(AttrSave) {
		return true
	}
	if owner := t.Scope(sym.Scope); owner != nil {
		return owner.Kind == ScopeModule || owner.Kind == ScopeGlobal
	}
	return false
}
