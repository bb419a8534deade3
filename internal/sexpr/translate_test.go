package sexpr

import (
	"testing"

	"ferrite/internal/diag"
	"ferrite/internal/source"
)

func runScript(t *testing.T, text string) *diag.Bag {
	t.Helper()
	fset := source.NewFileSet()
	file := fset.Get(fset.AddVirtual("test.fx", []byte(text)))
	bag := diag.NewBag(16)
	Run(file, diag.BagReporter{Bag: bag})
	return bag
}

func expectCodes(t *testing.T, bag *diag.Bag, want ...diag.Code) {
	t.Helper()
	items := bag.Items()
	if len(items) != len(want) {
		t.Fatalf("diagnostics = %v, want codes %v", items, want)
	}
	for i, d := range items {
		if d.Code != want[i] {
			t.Fatalf("diagnostics = %v, want codes %v", items, want)
		}
	}
}

func TestScriptConstantChecks(t *testing.T) {
	cases := []struct {
		name   string
		script string
		codes  []diag.Code
	}{
		{
			"folded integer division",
			"(check constant (div (int 5) (int 2)))",
			nil,
		},
		{
			"zero divisor",
			"(check constant (div (int 5) (int 0)))",
			[]diag.Code{diag.SemaCheckFailed},
		},
		{
			"named constant",
			"(object c (attrs parameter))\n(check constant c)",
			nil,
		},
		{
			"plain variable",
			"(object v)\n(check constant v)",
			[]diag.Code{diag.SemaCheckFailed},
		},
		{
			"kind inquiry",
			"(object v)\n(check constant (intrinsic kind v))",
			nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectCodes(t, runScript(t, tc.script), tc.codes...)
		})
	}
}

func TestScriptTargetChecks(t *testing.T) {
	bag := runScript(t, `
(scope m module)
(object good (scope m) (attrs target))
(check target good)
`)
	expectCodes(t, bag)

	bag = runScript(t, `
(object a (attrs allocatable target))
(check target a)
`)
	expectCodes(t, bag, diag.SemaTargetAllocatable)

	bag = runScript(t, `
(scope p procedure)
(object local (scope p) (attrs target))
(check target local)
`)
	expectCodes(t, bag, diag.SemaTargetNotSaved)
}

func TestScriptSpecChecks(t *testing.T) {
	bag := runScript(t, `
(scope p procedure)
(object d (scope p) (assoc dummy) (attrs optional))
(check spec d (in p))
`)
	expectCodes(t, bag, diag.SemaSpecExprInvalid)

	bag = runScript(t, `
(scope m module)
(scope p procedure (parent m))
(object n (scope m))
(check spec (intrinsic size n) (in p))
`)
	expectCodes(t, bag)
}

func TestScriptContiguousChecks(t *testing.T) {
	bag := runScript(t, `
(object a (rank 3) (shape explicit))
(check contiguous (aref a : : (int 1)))
`)
	expectCodes(t, bag)

	bag = runScript(t, `
(object a (rank 3) (shape explicit))
(check contiguous (aref a (int 1) : :))
`)
	expectCodes(t, bag, diag.SemaCheckFailed)

	bag = runScript(t, `
(object a (rank 2) (shape explicit))
(check contiguous (aref a (: 2 5) :))
`)
	expectCodes(t, bag, diag.SemaCheckFailed)
}

func TestScriptTranslationErrors(t *testing.T) {
	cases := []struct {
		name   string
		script string
		code   diag.Code
	}{
		{"unknown form", "(frob x)", diag.ScriptUnknownForm},
		{"unknown name", "(check constant nope)", diag.ScriptUnknownName},
		{"duplicate object", "(object x)\n(object x)", diag.ScriptDuplicateName},
		{"duplicate scope", "(scope s module)\n(scope s module)", diag.ScriptDuplicateName},
		{"bad attribute", "(object x (attrs shiny))", diag.ScriptBadAttribute},
		{"bad rank literal", "(object x (rank lots))", diag.ScriptBadLiteral},
		{"bad arity", "(check constant)", diag.ScriptBadArity},
		{"unknown intrinsic", "(check constant (intrinsic frobnicate))", diag.ScriptUnknownName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectCodes(t, runScript(t, tc.script), tc.code)
		})
	}
}

func TestScriptErrorRecovery(t *testing.T) {
	// The broken directive is skipped; the rest of the script still runs.
	bag := runScript(t, `
(check constant nope)
(object c (attrs parameter))
(check constant c)
`)
	expectCodes(t, bag, diag.ScriptUnknownName)
}

func TestScriptProcedureForms(t *testing.T) {
	bag := runScript(t, `
(scope m module)
(procedure f (scope m) (pure) (result pointer contiguous))
(check contiguous (call f))
`)
	expectCodes(t, bag)

	bag = runScript(t, `
(scope m module)
(scope p procedure (parent m))
(procedure nasty (scope m))
(check spec (call nasty) (in p))
`)
	expectCodes(t, bag, diag.SemaSpecExprInvalid)
}
