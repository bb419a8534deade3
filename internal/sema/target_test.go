package sema

import (
	"strings"
	"testing"

	"ferrite/internal/diag"
	"ferrite/internal/expr"
	"ferrite/internal/source"
	"ferrite/internal/symbols"
)

func checkTarget(f *fixture, id expr.ExprID) (bool, *diag.Bag) {
	f.t.Helper()
	bag := diag.NewBag(8)
	ok := IsInitialDataTarget(f.cx, id, diag.BagReporter{Bag: bag})
	return ok, bag
}

func TestTargetNullPointer(t *testing.T) {
	f := newFixture(t)
	ok, bag := checkTarget(f, f.es.Null(source.Span{}))
	if !ok {
		t.Fatalf("NULL() must be a legal initial data target")
	}
	expectCodes(t, bag)
}

func TestTargetSymbolDiagnostics(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name string
		sym  symbols.Symbol
		want []diag.Code
	}{
		{"saved target", symbols.Symbol{Attrs: symbols.AttrTarget | symbols.AttrSave}, nil},
		{"missing save", symbols.Symbol{Attrs: symbols.AttrTarget}, []diag.Code{diag.SemaTargetNotSaved}},
		{"missing target", symbols.Symbol{Attrs: symbols.AttrSave}, []diag.Code{diag.SemaTargetNotTarget}},
		{"allocatable", symbols.Symbol{Attrs: symbols.AttrAllocatable | symbols.AttrTarget | symbols.AttrSave},
			[]diag.Code{diag.SemaTargetAllocatable}},
		{"coarray", symbols.Symbol{Corank: 1, Attrs: symbols.AttrTarget | symbols.AttrSave},
			[]diag.Code{diag.SemaTargetCoarray}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sym := f.symbol(tc.name, f.proc, tc.sym)
			ok, bag := checkTarget(f, f.ref(sym))
			// The structural verdict stays true even when attribute
			// violations were reported.
			if !ok {
				t.Fatalf("symbol reference verdict = false, want true")
			}
			expectCodes(t, bag, tc.want...)
		})
	}
}

func TestTargetModuleVariableImplicitlySaved(t *testing.T) {
	f := newFixture(t)
	sym := f.symbol("g", f.module, symbols.Symbol{Attrs: symbols.AttrTarget})
	ok, bag := checkTarget(f, f.ref(sym))
	if !ok {
		t.Fatalf("module variable verdict = false, want true")
	}
	expectCodes(t, bag)
}

func TestTargetDiagnosesUltimateSymbol(t *testing.T) {
	f := newFixture(t)
	orig := f.symbol("orig", f.module, symbols.Symbol{Attrs: symbols.AttrAllocatable | symbols.AttrTarget | symbols.AttrSave})
	alias := f.symbol("renamed", f.proc, symbols.Symbol{
		Assoc: symbols.AssocUse,
		Alias: orig,
		Attrs: symbols.AttrTarget | symbols.AttrSave,
	})
	ok, bag := checkTarget(f, f.ref(alias))
	if !ok {
		t.Fatalf("use-associated reference verdict = false, want true")
	}
	expectCodes(t, bag, diag.SemaTargetAllocatable)
	if msg := bag.Items()[0].Message; !strings.Contains(msg, "'orig'") {
		t.Fatalf("diagnostic should cite the ultimate symbol, got %q", msg)
	}
}

func TestTargetRejectsComputedValues(t *testing.T) {
	f := newFixture(t)
	sym := f.symbol("x", f.proc, symbols.Symbol{Attrs: symbols.AttrTarget | symbols.AttrSave})
	five := f.es.IntConst(5, source.Span{})
	cases := []struct {
		name string
		id   expr.ExprID
	}{
		{"typed constant", five},
		{"boz literal", f.es.BOZ(source.Span{})},
		{"static data object", f.es.StaticObject(source.Span{})},
		{"operation", f.es.Binary(expr.OpAdd, expr.CatInteger, f.ref(sym), five, source.Span{})},
		{"relational", f.es.Relational(expr.OpEq, f.ref(sym), five, source.Span{})},
		{"function call", f.intrinsicCall("kind", 0, five)},
		{"array constructor", f.es.ArrayCtor(expr.CatInteger, []expr.ExprID{five}, source.Span{})},
		{"structure constructor", f.es.StructCtor([]expr.ExprID{five}, source.Span{})},
		{"descriptor inquiry", f.es.DescriptorInquiry(f.ref(sym), expr.InquirySize, source.Span{})},
		{"parenthesized constant", f.es.Parens(five, source.Span{})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, _ := checkTarget(f, tc.id)
			if ok {
				t.Fatalf("computed value accepted as initial data target")
			}
		})
	}
}

func TestTargetArrayRefSubscripts(t *testing.T) {
	f := newFixture(t)
	arr := f.symbol("a", f.module, symbols.Symbol{Rank: 1, Attrs: symbols.AttrTarget | symbols.AttrSave})
	c := f.namedConst("c", f.module)
	v := f.symbol("v", f.proc, symbols.Symbol{})

	one := f.es.IntConst(1, source.Span{})
	ten := f.es.IntConst(10, source.Span{})
	cases := []struct {
		name string
		subs []expr.ExprID
		want bool
	}{
		{"constant subscript", []expr.ExprID{one}, true},
		{"named-constant subscript", []expr.ExprID{f.ref(c)}, true},
		{"variable subscript", []expr.ExprID{f.ref(v)}, false},
		{"constant triplet", []expr.ExprID{f.es.Triplet(one, ten, expr.NoExprID, source.Span{})}, true},
		{"bare triplet", []expr.ExprID{f.bareColon()}, true},
		{"variable triplet bound", []expr.ExprID{f.es.Triplet(f.ref(v), ten, expr.NoExprID, source.Span{})}, false},
		{"variable stride", []expr.ExprID{f.es.Triplet(one, ten, f.ref(v), source.Span{})}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			aref := f.es.ArrayRef(f.ref(arr), tc.subs, source.Span{})
			ok, _ := checkTarget(f, aref)
			if ok != tc.want {
				t.Fatalf("IsInitialDataTarget = %v, want %v", ok, tc.want)
			}
		})
	}
}

func TestTargetSubstring(t *testing.T) {
	f := newFixture(t)
	str := f.symbol("s", f.module, symbols.Symbol{Attrs: symbols.AttrTarget | symbols.AttrSave})
	v := f.symbol("v", f.proc, symbols.Symbol{})

	one := f.es.IntConst(1, source.Span{})
	three := f.es.IntConst(3, source.Span{})
	ok, bag := checkTarget(f, f.es.Substring(f.ref(str), one, three, source.Span{}))
	if !ok {
		t.Fatalf("substring with constant bounds rejected")
	}
	expectCodes(t, bag)

	ok, _ = checkTarget(f, f.es.Substring(f.ref(str), f.ref(v), three, source.Span{}))
	if ok {
		t.Fatalf("substring with variable bound accepted")
	}
}

func TestTargetParenthesesPassThrough(t *testing.T) {
	f := newFixture(t)
	sym := f.symbol("x", f.proc, symbols.Symbol{Attrs: symbols.AttrTarget})
	ok, bag := checkTarget(f, f.es.Parens(f.ref(sym), source.Span{}))
	if !ok {
		t.Fatalf("parenthesized designator verdict = false, want true")
	}
	// Diagnostics from the wrapped reference still flow.
	expectCodes(t, bag, diag.SemaTargetNotSaved)
}
