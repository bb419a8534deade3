package intrinsics

import (
	"ferrite/internal/expr"
	"ferrite/internal/symbols"
)

// CharacterizeResult determines, when possible, the result
// characteristics of the procedure referenced by a call. For a call
// through a user symbol the declared result characteristics are used;
// intrinsic results are never data pointers. ok is false when nothing
// can be determined.
func CharacterizeResult(call *expr.Expr, syms *symbols.Table, t *Table) (symbols.ProcResult, bool) {
	if call == nil {
		return symbols.ProcResult{}, false
	}
	if call.Sym.IsValid() {
		sym := syms.Symbol(syms.Ultimate(call.Sym))
		if sym == nil || sym.Result == nil {
			return symbols.ProcResult{}, false
		}
		return *sym.Result, true
	}
	if call.Intrinsic.IsValid() {
		name, _ := syms.Strings.Lookup(call.Intrinsic)
		if _, ok := t.Lookup(name); ok {
			return symbols.ProcResult{}, true
		}
	}
	return symbols.ProcResult{}, false
}
