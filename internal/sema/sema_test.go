package sema

import (
	"testing"

	"ferrite/internal/diag"
	"ferrite/internal/expr"
	"ferrite/internal/intrinsics"
	"ferrite/internal/source"
	"ferrite/internal/symbols"
)

// fixture wires an expression arena, a symbol table with a
// global > module > procedure scope chain, and an intrinsic table.
type fixture struct {
	t      *testing.T
	es     *expr.Exprs
	syms   *symbols.Table
	cx     *Context
	table  *intrinsics.Table
	module symbols.ScopeID
	proc   symbols.ScopeID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	syms := symbols.NewTable()
	es := expr.NewExprs()
	f := &fixture{
		t:     t,
		es:    es,
		syms:  syms,
		cx:    NewContext(es, syms),
		table: intrinsics.NewTable(),
	}
	f.module = syms.NewScope(symbols.ScopeModule, syms.Global(), syms.Strings.Intern("m"))
	f.proc = syms.NewScope(symbols.ScopeProcedure, f.module, syms.Strings.Intern("p"))
	return f
}

// symbol declares sym under the given name and scope, defaulting the
// kind to SymbolObject.
func (f *fixture) symbol(name string, scope symbols.ScopeID, sym symbols.Symbol) symbols.SymbolID {
	f.t.Helper()
	sym.Name = f.syms.Strings.Intern(name)
	sym.Scope = scope
	if sym.Kind == symbols.SymbolInvalid {
		sym.Kind = symbols.SymbolObject
	}
	return f.syms.NewSymbol(sym)
}

func (f *fixture) namedConst(name string, scope symbols.ScopeID) symbols.SymbolID {
	f.t.Helper()
	return f.symbol(name, scope, symbols.Symbol{Attrs: symbols.AttrParameter})
}

// ref builds a symbol reference inheriting the symbol's rank and corank.
func (f *fixture) ref(id symbols.SymbolID) expr.ExprID {
	f.t.Helper()
	sym := f.syms.Symbol(id)
	if sym == nil {
		f.t.Fatalf("ref of invalid symbol %v", id)
	}
	return f.es.SymbolRef(id, sym.Rank, sym.Corank, source.Span{})
}

func (f *fixture) intrinsicCall(name string, rank uint8, args ...expr.ExprID) expr.ExprID {
	f.t.Helper()
	return f.es.Call(symbols.NoSymbolID, f.syms.Strings.Intern(name), args, rank, source.Span{})
}

func (f *fixture) bareColon() expr.ExprID {
	f.t.Helper()
	return f.es.Triplet(expr.NoExprID, expr.NoExprID, expr.NoExprID, source.Span{})
}

func collectCodes(bag *diag.Bag) []diag.Code {
	items := bag.Items()
	codes := make([]diag.Code, 0, len(items))
	for _, it := range items {
		codes = append(codes, it.Code)
	}
	return codes
}

func expectCodes(t *testing.T, bag *diag.Bag, want ...diag.Code) {
	t.Helper()
	got := collectCodes(bag)
	if len(got) != len(want) {
		t.Fatalf("diagnostics = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("diagnostics = %v, want %v", got, want)
		}
	}
}
