package symbols

import (
	"testing"

	"ferrite/internal/source"
)

func TestNewTableHasGlobalScope(t *testing.T) {
	tbl := NewTable()
	g := tbl.Scope(tbl.Global())
	if g == nil || !g.IsGlobal() {
		t.Fatalf("global scope = %+v", g)
	}
	if tbl.Scope(NoScopeID) != nil {
		t.Fatal("invalid scope ID must resolve to nil")
	}
}

func TestScopeParentLinks(t *testing.T) {
	tbl := NewTable()
	mod := tbl.NewScope(ScopeModule, tbl.Global(), tbl.Strings.Intern("m"))
	proc := tbl.NewScope(ScopeProcedure, mod, tbl.Strings.Intern("p"))

	if tbl.Scope(proc).Parent != mod {
		t.Fatal("procedure parent should be the module")
	}
	children := tbl.Scope(mod).Children
	if len(children) != 1 || children[0] != proc {
		t.Fatalf("module children = %v", children)
	}
}

func TestSymbolRegistration(t *testing.T) {
	tbl := NewTable()
	mod := tbl.NewScope(ScopeModule, tbl.Global(), tbl.Strings.Intern("m"))
	id := tbl.NewSymbol(Symbol{
		Name:  tbl.Strings.Intern("x"),
		Kind:  SymbolObject,
		Scope: mod,
	})
	if tbl.Name(id) != "x" {
		t.Fatalf("Name = %q", tbl.Name(id))
	}
	owned := tbl.Scope(mod).Symbols
	if len(owned) != 1 || owned[0] != id {
		t.Fatalf("scope symbols = %v", owned)
	}
	if tbl.Symbol(NoSymbolID) != nil {
		t.Fatal("invalid symbol ID must resolve to nil")
	}
}

func TestUltimateFollowsAliasChain(t *testing.T) {
	tbl := NewTable()
	mod := tbl.NewScope(ScopeModule, tbl.Global(), tbl.Strings.Intern("m"))
	proc := tbl.NewScope(ScopeProcedure, mod, tbl.Strings.Intern("p"))

	orig := tbl.NewSymbol(Symbol{Name: tbl.Strings.Intern("orig"), Kind: SymbolObject, Scope: mod})
	used := tbl.NewSymbol(Symbol{Name: tbl.Strings.Intern("used"), Kind: SymbolObject, Scope: proc, Assoc: AssocUse, Alias: orig})
	hosted := tbl.NewSymbol(Symbol{Name: tbl.Strings.Intern("hosted"), Kind: SymbolObject, Scope: proc, Assoc: AssocHost, Alias: used})

	if got := tbl.Ultimate(hosted); got != orig {
		t.Fatalf("Ultimate(hosted) = %v, want %v", got, orig)
	}
	if got := tbl.Ultimate(orig); got != orig {
		t.Fatalf("Ultimate(orig) = %v, want itself", got)
	}
	if got := tbl.Ultimate(NoSymbolID); got != NoSymbolID {
		t.Fatalf("Ultimate(invalid) = %v", got)
	}
}

func TestUltimateSelfAliasTerminates(t *testing.T) {
	tbl := NewTable()
	id := tbl.NewSymbol(Symbol{Name: tbl.Strings.Intern("x"), Kind: SymbolObject, Scope: tbl.Global()})
	tbl.Symbol(id).Alias = id
	if got := tbl.Ultimate(id); got != id {
		t.Fatalf("Ultimate(self-alias) = %v", got)
	}
}

func TestIsAncestor(t *testing.T) {
	tbl := NewTable()
	mod := tbl.NewScope(ScopeModule, tbl.Global(), tbl.Strings.Intern("m"))
	proc := tbl.NewScope(ScopeProcedure, mod, tbl.Strings.Intern("p"))
	block := tbl.NewScope(ScopeBlock, proc, source.NoStringID)
	sibling := tbl.NewScope(ScopeProcedure, mod, tbl.Strings.Intern("q"))

	cases := []struct {
		name        string
		owner, from ScopeID
		want        bool
	}{
		{"parent", proc, block, true},
		{"grandparent", mod, block, true},
		{"global", tbl.Global(), proc, true},
		{"self", proc, proc, false},
		{"child", block, proc, false},
		{"sibling", sibling, proc, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tbl.IsAncestor(tc.owner, tc.from); got != tc.want {
				t.Fatalf("IsAncestor(%v, %v) = %v, want %v", tc.owner, tc.from, got, tc.want)
			}
		})
	}
}

func TestIsSaved(t *testing.T) {
	tbl := NewTable()
	mod := tbl.NewScope(ScopeModule, tbl.Global(), tbl.Strings.Intern("m"))
	proc := tbl.NewScope(ScopeProcedure, mod, tbl.Strings.Intern("p"))

	cases := []struct {
		name string
		sym  Symbol
		want bool
	}{
		{"module variable", Symbol{Scope: mod}, true},
		{"global variable", Symbol{Scope: tbl.Global()}, true},
		{"local variable", Symbol{Scope: proc}, false},
		{"saved local", Symbol{Scope: proc, Attrs: AttrSave}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.sym.Name = tbl.Strings.Intern(tc.name)
			tc.sym.Kind = SymbolObject
			id := tbl.NewSymbol(tc.sym)
			if got := tbl.IsSaved(id); got != tc.want {
				t.Fatalf("IsSaved = %v, want %v", got, tc.want)
			}
		})
	}
	if tbl.IsSaved(NoSymbolID) {
		t.Fatal("invalid symbol cannot be saved")
	}
}

func TestAttrStrings(t *testing.T) {
	a := AttrTarget | AttrSave
	got := a.Strings()
	if len(got) != 2 || got[0] != "target" || got[1] != "save" {
		t.Fatalf("Strings = %v", got)
	}
	if Attr(0).Strings() != nil {
		t.Fatal("zero attr should have no labels")
	}
}
