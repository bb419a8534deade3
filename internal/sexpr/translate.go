package sexpr

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"ferrite/internal/diag"
	"ferrite/internal/expr"
	"ferrite/internal/intrinsics"
	"ferrite/internal/sema"
	"ferrite/internal/source"
	"ferrite/internal/symbols"
)

// Run parses a check script and executes every directive in it, feeding
// all diagnostics (syntax, translation and semantic) to r. Translation
// errors never abort the run: the offending form is skipped and the
// rest of the script still executes.
func Run(file *source.File, r diag.Reporter) {
	forms, _ := Parse(file, r)
	t := newTranslator(r)
	for _, form := range forms {
		t.form(form)
	}
}

type translator struct {
	reporter diag.Reporter
	syms     *symbols.Table
	es       *expr.Exprs
	intr     *intrinsics.Table
	cx       *sema.Context

	scopes map[string]symbols.ScopeID
	names  map[string]symbols.SymbolID
}

func newTranslator(r diag.Reporter) *translator {
	syms := symbols.NewTable()
	es := expr.NewExprs()
	return &translator{
		reporter: r,
		syms:     syms,
		es:       es,
		intr:     intrinsics.NewTable(),
		cx:       sema.NewContext(es, syms),
		scopes:   make(map[string]symbols.ScopeID),
		names:    make(map[string]symbols.SymbolID),
	}
}

func (t *translator) form(form SExp) {
	list, ok := form.(*List)
	if !ok {
		t.report(diag.ScriptUnknownForm, form.Span(), "expected a list form, found %q", form.String())
		return
	}
	switch list.Head() {
	case "scope":
		t.scopeForm(list)
	case "object":
		t.objectForm(list)
	case "procedure":
		t.procedureForm(list)
	case "check":
		t.checkForm(list)
	default:
		t.report(diag.ScriptUnknownForm, list.Span(), "unknown form %q", list.Head())
	}
}

// (scope <name> module|procedure|block (parent <name>)?)
func (t *translator) scopeForm(list *List) {
	if list.Len() < 3 {
		t.report(diag.ScriptBadArity, list.Span(), "scope needs a name and a kind")
		return
	}
	name, ok := t.atom(list.Elements[1])
	if !ok {
		return
	}
	if _, dup := t.scopes[name]; dup {
		t.report(diag.ScriptDuplicateName, list.Elements[1].Span(), "scope %q declared twice", name)
		return
	}
	kindName, ok := t.atom(list.Elements[2])
	if !ok {
		return
	}
	var kind symbols.ScopeKind
	switch kindName {
	case "module":
		kind = symbols.ScopeModule
	case "procedure":
		kind = symbols.ScopeProcedure
	case "block":
		kind = symbols.ScopeBlock
	default:
		t.report(diag.ScriptBadAttribute, list.Elements[2].Span(), "unknown scope kind %q", kindName)
		return
	}
	parent := t.syms.Global()
	for _, clause := range list.Elements[3:] {
		cl, ok := clause.(*List)
		if !ok || cl.Head() != "parent" || cl.Len() != 2 {
			t.report(diag.ScriptUnknownForm, clause.Span(), "expected (parent <scope>)")
			continue
		}
		parent = t.scopeRef(cl.Elements[1])
	}
	t.scopes[name] = t.syms.NewScope(kind, parent, t.syms.Strings.Intern(name))
}

// (object <name> (scope s)? (attrs ...)? (rank N)? (corank N)?
//
//	(shape ...)? (assoc ...)? (alias <name>)?)
func (t *translator) objectForm(list *List) {
	if list.Len() < 2 {
		t.report(diag.ScriptBadArity, list.Span(), "object needs a name")
		return
	}
	name, ok := t.atom(list.Elements[1])
	if !ok {
		return
	}
	if _, dup := t.names[name]; dup {
		t.report(diag.ScriptDuplicateName, list.Elements[1].Span(), "name %q declared twice", name)
		return
	}
	sym := symbols.Symbol{
		Name:  t.syms.Strings.Intern(name),
		Kind:  symbols.SymbolObject,
		Scope: t.syms.Global(),
		Span:  list.Span(),
	}
	for _, clause := range list.Elements[2:] {
		cl, ok := clause.(*List)
		if !ok {
			t.report(diag.ScriptUnknownForm, clause.Span(), "expected a clause list")
			continue
		}
		switch cl.Head() {
		case "scope":
			if cl.Len() == 2 {
				sym.Scope = t.scopeRef(cl.Elements[1])
			}
		case "attrs":
			for _, a := range cl.Elements[1:] {
				sym.Attrs |= t.attr(a)
			}
		case "rank":
			sym.Rank = t.smallInt(cl)
		case "corank":
			sym.Corank = t.smallInt(cl)
		case "shape":
			sym.Shape = t.shape(cl)
		case "assoc":
			sym.Assoc = t.assoc(cl)
		case "alias":
			if cl.Len() == 2 {
				sym.Alias = t.symbolRef(cl.Elements[1])
			}
		default:
			t.report(diag.ScriptUnknownForm, cl.Span(), "unknown object clause %q", cl.Head())
		}
	}
	t.names[name] = t.syms.NewSymbol(sym)
}

// (procedure <name> (scope s)? (pure)? (dummy)? (result pointer proc-pointer contiguous)?)
func (t *translator) procedureForm(list *List) {
	if list.Len() < 2 {
		t.report(diag.ScriptBadArity, list.Span(), "procedure needs a name")
		return
	}
	name, ok := t.atom(list.Elements[1])
	if !ok {
		return
	}
	if _, dup := t.names[name]; dup {
		t.report(diag.ScriptDuplicateName, list.Elements[1].Span(), "name %q declared twice", name)
		return
	}
	sym := symbols.Symbol{
		Name:  t.syms.Strings.Intern(name),
		Kind:  symbols.SymbolProcedure,
		Scope: t.syms.Global(),
		Span:  list.Span(),
	}
	for _, clause := range list.Elements[2:] {
		cl, ok := clause.(*List)
		if !ok {
			t.report(diag.ScriptUnknownForm, clause.Span(), "expected a clause list")
			continue
		}
		switch cl.Head() {
		case "scope":
			if cl.Len() == 2 {
				sym.Scope = t.scopeRef(cl.Elements[1])
			}
		case "pure":
			sym.Attrs |= symbols.AttrPure
		case "dummy":
			sym.Assoc = symbols.AssocDummy
		case "result":
			res := &symbols.ProcResult{}
			for _, a := range cl.Elements[1:] {
				switch v, _ := t.atom(a); v {
				case "pointer":
					res.Pointer = true
				case "proc-pointer":
					res.ProcPointer = true
				case "contiguous":
					res.Contiguous = true
				default:
					t.report(diag.ScriptBadAttribute, a.Span(), "unknown result attribute %q", v)
				}
			}
			sym.Result = res
		default:
			t.report(diag.ScriptUnknownForm, cl.Span(), "unknown procedure clause %q", cl.Head())
		}
	}
	t.names[name] = t.syms.NewSymbol(sym)
}

// (check constant|target|spec|contiguous <expr> (in <scope>)?)
func (t *translator) checkForm(list *List) {
	if list.Len() < 3 {
		t.report(diag.ScriptBadArity, list.Span(), "check needs a predicate and an expression")
		return
	}
	pred, ok := t.atom(list.Elements[1])
	if !ok {
		return
	}
	id := t.expr(list.Elements[2])
	if !id.IsValid() {
		return
	}
	scope := t.syms.Global()
	for _, clause := range list.Elements[3:] {
		cl, ok := clause.(*List)
		if !ok || cl.Head() != "in" || cl.Len() != 2 {
			t.report(diag.ScriptUnknownForm, clause.Span(), "expected (in <scope>)")
			continue
		}
		scope = t.scopeRef(cl.Elements[1])
	}
	sp := list.Elements[2].Span()
	switch pred {
	case "constant":
		if !sema.IsConstantExpr(t.cx, id) {
			t.verdict(sp, "not a constant expression")
		}
	case "target":
		sema.IsInitialDataTarget(t.cx, id, t.reporter)
	case "spec":
		sema.CheckSpecificationExpr(t.cx, id, scope, t.reporter)
	case "contiguous":
		if !sema.IsSimplyContiguous(t.cx, id, t.intr) {
			t.verdict(sp, "not simply contiguous")
		}
	default:
		t.report(diag.ScriptUnknownForm, list.Elements[1].Span(), "unknown check predicate %q", pred)
	}
}

func (t *translator) verdict(sp source.Span, msg string) {
	diag.ReportInfo(t.reporter, diag.SemaCheckFailed, sp, msg).Emit()
}

// expr translates one expression form into the arena. Errors are
// reported and NoExprID returned; callers skip the enclosing directive.
func (t *translator) expr(form SExp) expr.ExprID {
	sp := form.Span()
	if sym, ok := form.(*Symbol); ok {
		return t.exprAtom(sym)
	}
	list := form.(*List)
	head := list.Head()
	args := list.Elements[1:]
	switch head {
	case "ref":
		if len(args) != 1 {
			return t.arity(list, "(ref <name>)")
		}
		if sym, ok := args[0].(*Symbol); ok {
			return t.exprAtom(sym)
		}
		return t.arity(list, "(ref <name>)")
	case "int":
		if len(args) != 1 {
			return t.arity(list, "(int <value>)")
		}
		return t.intLiteral(args[0])
	case "real":
		return t.es.Const(expr.CatReal, 0, sp)
	case "logical":
		return t.es.Const(expr.CatLogical, 0, sp)
	case "char":
		return t.es.Const(expr.CatCharacter, 0, sp)
	case "null":
		return t.es.Null(sp)
	case "boz":
		return t.es.BOZ(sp)
	case "static":
		return t.es.StaticObject(sp)
	case "add", "sub", "mul", "div", "pow", "concat", "and", "or":
		return t.binary(list, head)
	case "neg", "not":
		return t.unary(list, head)
	case "paren":
		if len(args) != 1 {
			return t.arity(list, "(paren <expr>)")
		}
		return t.es.Parens(t.expr(args[0]), sp)
	case "eq", "ne", "lt", "le", "gt", "ge":
		return t.relational(list, head)
	case "call":
		return t.call(list)
	case "intrinsic":
		return t.intrinsicCall(list)
	case "procref":
		return t.procRef(list)
	case "aref":
		return t.arrayRef(list)
	case "coref":
		return t.coarrayRef(list)
	case "comp":
		return t.component(list)
	case "substr":
		return t.substring(list)
	case "complexpart":
		if len(args) != 1 {
			return t.arity(list, "(complexpart <base>)")
		}
		return t.es.ComplexPart(t.expr(args[0]), sp)
	case "arrayctor":
		return t.es.ArrayCtor(expr.CatInteger, t.exprList(args), sp)
	case "structctor":
		return t.es.StructCtor(t.exprList(args), sp)
	case "kindparam":
		return t.es.TypeParamInquiry(t.optBase(args), expr.ParamKind, sp)
	case "lenparam":
		return t.es.TypeParamInquiry(t.optBase(args), expr.ParamLen, sp)
	case "descriptor":
		return t.descriptorInquiry(list)
	case ":":
		return t.triplet(list)
	default:
		t.report(diag.ScriptUnknownForm, sp, "unknown expression form %q", head)
		return expr.NoExprID
	}
}

func (t *translator) exprAtom(sym *Symbol) expr.ExprID {
	switch {
	case sym.Value == ":":
		return t.es.Triplet(expr.NoExprID, expr.NoExprID, expr.NoExprID, sym.Span())
	case looksNumeric(sym.Value):
		return t.intLiteral(sym)
	}
	id := t.symbolRef(sym)
	if !id.IsValid() {
		return expr.NoExprID
	}
	decl := t.syms.Symbol(id)
	return t.es.SymbolRef(id, decl.Rank, decl.Corank, sym.Span())
}

func (t *translator) intLiteral(form SExp) expr.ExprID {
	text, ok := t.atom(form)
	if !ok {
		return expr.NoExprID
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		t.report(diag.ScriptBadLiteral, form.Span(), "bad integer literal %q", text)
		return expr.NoExprID
	}
	return t.es.IntConst(value, form.Span())
}

func (t *translator) binary(list *List, head string) expr.ExprID {
	if list.Len() != 3 {
		return t.arity(list, "(%s <left> <right>)", head)
	}
	left := t.expr(list.Elements[1])
	right := t.expr(list.Elements[2])
	if !left.IsValid() || !right.IsValid() {
		return expr.NoExprID
	}
	var op expr.OpKind
	switch head {
	case "add":
		op = expr.OpAdd
	case "sub":
		op = expr.OpSubtract
	case "mul":
		op = expr.OpMultiply
	case "div":
		op = expr.OpDivide
	case "pow":
		op = expr.OpPower
	case "concat":
		op = expr.OpConcat
	case "and":
		op = expr.OpAnd
	case "or":
		op = expr.OpOr
	}
	return t.es.Binary(op, t.es.Get(left).Cat, left, right, list.Span())
}

func (t *translator) unary(list *List, head string) expr.ExprID {
	if list.Len() != 2 {
		return t.arity(list, "(%s <expr>)", head)
	}
	x := t.expr(list.Elements[1])
	if !x.IsValid() {
		return expr.NoExprID
	}
	op := expr.OpNegate
	if head == "not" {
		op = expr.OpNot
	}
	return t.es.Unary(op, t.es.Get(x).Cat, x, list.Span())
}

func (t *translator) relational(list *List, head string) expr.ExprID {
	if list.Len() != 3 {
		return t.arity(list, "(%s <left> <right>)", head)
	}
	ops := map[string]expr.OpKind{
		"eq": expr.OpEq, "ne": expr.OpNe,
		"lt": expr.OpLt, "le": expr.OpLe,
		"gt": expr.OpGt, "ge": expr.OpGe,
	}
	left := t.expr(list.Elements[1])
	right := t.expr(list.Elements[2])
	if !left.IsValid() || !right.IsValid() {
		return expr.NoExprID
	}
	return t.es.Relational(ops[head], left, right, list.Span())
}

func (t *translator) call(list *List) expr.ExprID {
	if list.Len() < 2 {
		return t.arity(list, "(call <procedure> <arg>...)")
	}
	sym := t.symbolRef(list.Elements[1])
	if !sym.IsValid() {
		return expr.NoExprID
	}
	return t.es.Call(sym, source.NoStringID, t.exprList(list.Elements[2:]), 0, list.Span())
}

func (t *translator) intrinsicCall(list *List) expr.ExprID {
	if list.Len() < 2 {
		return t.arity(list, "(intrinsic <name> <arg>...)")
	}
	name, ok := t.atom(list.Elements[1])
	if !ok {
		return expr.NoExprID
	}
	if _, known := t.intr.Lookup(name); !known {
		t.report(diag.ScriptUnknownName, list.Elements[1].Span(), "unknown intrinsic %q", name)
		return expr.NoExprID
	}
	intern := t.syms.Strings.Intern(name)
	return t.es.Call(symbols.NoSymbolID, intern, t.exprList(list.Elements[2:]), 0, list.Span())
}

func (t *translator) procRef(list *List) expr.ExprID {
	if list.Len() != 2 {
		return t.arity(list, "(procref <name>)")
	}
	name, ok := t.atom(list.Elements[1])
	if !ok {
		return expr.NoExprID
	}
	if sym, declared := t.names[name]; declared {
		return t.es.ProcRef(sym, source.NoStringID, list.Span())
	}
	if _, known := t.intr.Lookup(name); known {
		return t.es.ProcRef(symbols.NoSymbolID, t.syms.Strings.Intern(name), list.Span())
	}
	t.report(diag.ScriptUnknownName, list.Elements[1].Span(), "undeclared name %q", name)
	return expr.NoExprID
}

func (t *translator) arrayRef(list *List) expr.ExprID {
	if list.Len() < 3 {
		return t.arity(list, "(aref <base> <subscript>...)")
	}
	base := t.expr(list.Elements[1])
	subs := t.exprList(list.Elements[2:])
	if !base.IsValid() {
		return expr.NoExprID
	}
	return t.es.ArrayRef(base, subs, list.Span())
}

// (coref <base> (subs <s>...) (cosubs <c>...))
func (t *translator) coarrayRef(list *List) expr.ExprID {
	if list.Len() != 4 {
		return t.arity(list, "(coref <base> (subs ...) (cosubs ...))")
	}
	base := t.expr(list.Elements[1])
	subs, ok1 := t.clauseExprs(list.Elements[2], "subs")
	cosubs, ok2 := t.clauseExprs(list.Elements[3], "cosubs")
	if !base.IsValid() || !ok1 || !ok2 {
		return expr.NoExprID
	}
	return t.es.CoarrayRef(base, subs, cosubs, list.Span())
}

func (t *translator) component(list *List) expr.ExprID {
	if list.Len() != 3 {
		return t.arity(list, "(comp <base> <component>)")
	}
	base := t.expr(list.Elements[1])
	comp := t.symbolRef(list.Elements[2])
	if !base.IsValid() || !comp.IsValid() {
		return expr.NoExprID
	}
	// An access is array-valued through whichever part carries the rank.
	rank := t.es.Get(base).Rank
	if rank == 0 {
		rank = t.syms.Symbol(comp).Rank
	}
	return t.es.Component(base, comp, rank, list.Span())
}

func (t *translator) substring(list *List) expr.ExprID {
	if list.Len() != 4 {
		return t.arity(list, "(substr <base> <lower> <upper>)")
	}
	base := t.expr(list.Elements[1])
	lower := t.optExpr(list.Elements[2])
	upper := t.optExpr(list.Elements[3])
	if !base.IsValid() {
		return expr.NoExprID
	}
	return t.es.Substring(base, lower, upper, list.Span())
}

func (t *translator) descriptorInquiry(list *List) expr.ExprID {
	if list.Len() != 3 {
		return t.arity(list, "(descriptor <base> <field>)")
	}
	base := t.expr(list.Elements[1])
	name, ok := t.atom(list.Elements[2])
	if !base.IsValid() || !ok {
		return expr.NoExprID
	}
	var field expr.InquiryField
	switch name {
	case "size":
		field = expr.InquirySize
	case "lbound":
		field = expr.InquiryLowerBound
	case "ubound":
		field = expr.InquiryUpperBound
	case "extent":
		field = expr.InquiryExtent
	case "len":
		field = expr.InquiryLen
	default:
		t.report(diag.ScriptBadAttribute, list.Elements[2].Span(), "unknown descriptor field %q", name)
		return expr.NoExprID
	}
	return t.es.DescriptorInquiry(base, field, list.Span())
}

// (: l u s?) with `_` for an absent bound or stride.
func (t *translator) triplet(list *List) expr.ExprID {
	if list.Len() < 3 || list.Len() > 4 {
		return t.arity(list, "(: <lower> <upper> <stride>?)")
	}
	lower := t.optExpr(list.Elements[1])
	upper := t.optExpr(list.Elements[2])
	stride := expr.NoExprID
	if list.Len() == 4 {
		stride = t.optExpr(list.Elements[3])
	}
	return t.es.Triplet(lower, upper, stride, list.Span())
}

// optExpr treats the `_` placeholder as an absent operand.
func (t *translator) optExpr(form SExp) expr.ExprID {
	if sym, ok := form.(*Symbol); ok && sym.Value == "_" {
		return expr.NoExprID
	}
	return t.expr(form)
}

func (t *translator) optBase(args []SExp) expr.ExprID {
	if len(args) == 0 {
		return expr.NoExprID
	}
	return t.expr(args[0])
}

func (t *translator) exprList(forms []SExp) []expr.ExprID {
	out := make([]expr.ExprID, 0, len(forms))
	for _, f := range forms {
		if id := t.expr(f); id.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

func (t *translator) clauseExprs(form SExp, head string) ([]expr.ExprID, bool) {
	cl, ok := form.(*List)
	if !ok || cl.Head() != head {
		t.report(diag.ScriptUnknownForm, form.Span(), "expected (%s ...)", head)
		return nil, false
	}
	return t.exprList(cl.Elements[1:]), true
}

func (t *translator) scopeRef(form SExp) symbols.ScopeID {
	name, ok := t.atom(form)
	if !ok {
		return t.syms.Global()
	}
	if name == "global" {
		return t.syms.Global()
	}
	if id, declared := t.scopes[name]; declared {
		return id
	}
	t.report(diag.ScriptUnknownName, form.Span(), "undeclared scope %q", name)
	return t.syms.Global()
}

func (t *translator) symbolRef(form SExp) symbols.SymbolID {
	name, ok := t.atom(form)
	if !ok {
		return symbols.NoSymbolID
	}
	if id, declared := t.names[name]; declared {
		return id
	}
	t.report(diag.ScriptUnknownName, form.Span(), "undeclared name %q", name)
	return symbols.NoSymbolID
}

func (t *translator) attr(form SExp) symbols.Attr {
	name, ok := t.atom(form)
	if !ok {
		return 0
	}
	attrs := map[string]symbols.Attr{
		"pointer":     symbols.AttrPointer,
		"target":      symbols.AttrTarget,
		"allocatable": symbols.AttrAllocatable,
		"contiguous":  symbols.AttrContiguous,
		"optional":    symbols.AttrOptional,
		"intent-out":  symbols.AttrIntentOut,
		"save":        symbols.AttrSave,
		"parameter":   symbols.AttrParameter,
		"pure":        symbols.AttrPure,
		"implied-do":  symbols.AttrImpliedDo,
	}
	a, known := attrs[name]
	if !known {
		t.report(diag.ScriptBadAttribute, form.Span(), "unknown attribute %q", name)
	}
	return a
}

func (t *translator) shape(cl *List) symbols.Shape {
	if cl.Len() != 2 {
		t.report(diag.ScriptBadArity, cl.Span(), "shape needs one value")
		return symbols.ShapeExplicit
	}
	name, _ := t.atom(cl.Elements[1])
	switch name {
	case "explicit":
		return symbols.ShapeExplicit
	case "deferred":
		return symbols.ShapeDeferred
	case "assumed-shape":
		return symbols.ShapeAssumedShape
	case "assumed-rank":
		return symbols.ShapeAssumedRank
	}
	t.report(diag.ScriptBadAttribute, cl.Elements[1].Span(), "unknown shape %q", name)
	return symbols.ShapeExplicit
}

func (t *translator) assoc(cl *List) symbols.Assoc {
	if cl.Len() != 2 {
		t.report(diag.ScriptBadArity, cl.Span(), "assoc needs one value")
		return symbols.AssocLocal
	}
	name, _ := t.atom(cl.Elements[1])
	switch name {
	case "local":
		return symbols.AssocLocal
	case "dummy":
		return symbols.AssocDummy
	case "use":
		return symbols.AssocUse
	case "host":
		return symbols.AssocHost
	case "common":
		return symbols.AssocCommon
	}
	t.report(diag.ScriptBadAttribute, cl.Elements[1].Span(), "unknown association %q", name)
	return symbols.AssocLocal
}

func (t *translator) smallInt(cl *List) uint8 {
	if cl.Len() != 2 {
		t.report(diag.ScriptBadArity, cl.Span(), "%s needs one value", cl.Head())
		return 0
	}
	text, ok := t.atom(cl.Elements[1])
	if !ok {
		return 0
	}
	parsed, err := strconv.ParseUint(text, 10, 8)
	if err != nil {
		t.report(diag.ScriptBadLiteral, cl.Elements[1].Span(), "bad rank value %q", text)
		return 0
	}
	value, err := safecast.Conv[uint8](parsed)
	if err != nil {
		t.report(diag.ScriptBadLiteral, cl.Elements[1].Span(), "rank value %q out of range", text)
		return 0
	}
	return value
}

func (t *translator) atom(form SExp) (string, bool) {
	sym, ok := form.(*Symbol)
	if !ok {
		t.report(diag.ScriptUnexpectedToken, form.Span(), "expected an atom, found %q", form.String())
		return "", false
	}
	return sym.Value, true
}

func (t *translator) arity(list *List, format string, args ...any) expr.ExprID {
	t.report(diag.ScriptBadArity, list.Span(), "expected "+format, args...)
	return expr.NoExprID
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		return len(s) > 1 && s[1] >= '0' && s[1] <= '9'
	}
	return s[0] >= '0' && s[0] <= '9'
}

func (t *translator) report(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportError(t.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}
