package intrinsics

import (
	"testing"

	"ferrite/internal/expr"
	"ferrite/internal/source"
	"ferrite/internal/symbols"
)

func TestLookup(t *testing.T) {
	tbl := NewTable()
	cases := []struct {
		name  string
		class Class
	}{
		{"kind", ClassInquiry},
		{"present", ClassInquiry},
		{"abs", ClassElemental},
		{"matmul", ClassTransformational},
	}
	for _, tc := range cases {
		spec, ok := tbl.Lookup(tc.name)
		if !ok || spec.Class != tc.class {
			t.Fatalf("Lookup(%q) = %+v, %v", tc.name, spec, ok)
		}
	}
	if _, ok := tbl.Lookup("frobnicate"); ok {
		t.Fatal("unknown name must miss")
	}
}

func TestCharacterizeResult(t *testing.T) {
	tbl := NewTable()
	syms := symbols.NewTable()
	es := expr.NewExprs()

	fn := syms.NewSymbol(symbols.Symbol{
		Name:   syms.Strings.Intern("f"),
		Kind:   symbols.SymbolProcedure,
		Scope:  syms.Global(),
		Result: &symbols.ProcResult{Pointer: true, Contiguous: true},
	})
	call := es.Get(es.Call(fn, source.NoStringID, nil, 0, source.Span{}))
	res, ok := CharacterizeResult(call, syms, tbl)
	if !ok || !res.Pointer || !res.Contiguous {
		t.Fatalf("user result = %+v, %v", res, ok)
	}

	// Intrinsic results never carry pointerness.
	icall := es.Get(es.Call(symbols.NoSymbolID, syms.Strings.Intern("size"), nil, 0, source.Span{}))
	res, ok = CharacterizeResult(icall, syms, tbl)
	if !ok || res.Pointer {
		t.Fatalf("intrinsic result = %+v, %v", res, ok)
	}

	// A call with neither symbol nor known intrinsic is uncharacterizable.
	unknown := es.Get(es.Call(symbols.NoSymbolID, syms.Strings.Intern("mystery"), nil, 0, source.Span{}))
	if _, ok := CharacterizeResult(unknown, syms, tbl); ok {
		t.Fatal("unknown procedure must not characterize")
	}
}
