package parser

import (
	"testing"

	"enderpy/typechecker-go/pkg/ast"
)

func TestParseSimpleAssignment(t *testing.T) {
	mod := parseClean(t, "x = 1\n")
	assign := singleStatement[*ast.Assign](t, mod)
	checkSpan(t, "assign", assign, 0, 5)
	if len(assign.Targets) != 1 || nameOf(t, assign.Targets[0]) != "x" {
		t.Fatalf("unexpected targets %#v", assign.Targets)
	}
	checkSpan(t, "target", assign.Targets[0], 0, 1)
	assertExprEqual(t, ast.Int("1"), assign.Value)
	checkSpan(t, "value", assign.Value, 4, 5)
	checkSpan(t, "module", mod, 0, 6)
}

func TestParseAssignmentForms(t *testing.T) {
	mod := parseClean(t, "a = b = c = 1\nx: int = 3\ny: str\na, *b = items\nn += 2\n")
	if len(mod.Body) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(mod.Body))
	}

	chained, ok := mod.Body[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected Assign, got %T", mod.Body[0])
	}
	if len(chained.Targets) != 3 {
		t.Fatalf("expected chained assignment to flatten into 3 targets, got %d", len(chained.Targets))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := nameOf(t, chained.Targets[i]); got != want {
			t.Fatalf("target %d: got %s, want %s", i, got, want)
		}
	}

	ann, ok := mod.Body[1].(*ast.AnnAssign)
	if !ok {
		t.Fatalf("expected AnnAssign, got %T", mod.Body[1])
	}
	if !ann.Simple || nameOf(t, ann.Annotation) != "int" {
		t.Fatalf("unexpected annotated assignment %#v", ann)
	}
	assertExprEqual(t, ast.Int("3"), ann.Value)

	decl, ok := mod.Body[2].(*ast.AnnAssign)
	if !ok || decl.Value != nil {
		t.Fatalf("expected value-less AnnAssign, got %#v", mod.Body[2])
	}

	destructure := mod.Body[3].(*ast.Assign)
	assertExprEqual(t, ast.Tup(ast.ID("a"), ast.Star(ast.ID("b"))), destructure.Targets[0])

	aug, ok := mod.Body[4].(*ast.AugAssign)
	if !ok || aug.Op != ast.AugAdd || nameOf(t, aug.Target) != "n" {
		t.Fatalf("unexpected augmented assignment %#v", mod.Body[4])
	}
}

func TestParseImports(t *testing.T) {
	mod := parseClean(t, "import os.path as p, sys\nfrom ..pkg.mod import a as b, c\nfrom . import *\nfrom __future__ import annotations\n")
	if len(mod.Body) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(mod.Body))
	}

	imp := mod.Body[0].(*ast.Import)
	if len(imp.Names) != 2 {
		t.Fatalf("expected 2 aliases, got %d", len(imp.Names))
	}
	if imp.Names[0].Name != "os.path" || imp.Names[0].AsName != "p" {
		t.Fatalf("unexpected alias %#v", imp.Names[0])
	}
	if imp.Names[1].Name != "sys" || imp.Names[1].BoundName() != "sys" {
		t.Fatalf("unexpected alias %#v", imp.Names[1])
	}

	rel := mod.Body[1].(*ast.ImportFrom)
	if rel.Module != "pkg.mod" || rel.Level != 2 {
		t.Fatalf("unexpected relative import %q level %d", rel.Module, rel.Level)
	}
	if len(rel.Names) != 2 || rel.Names[0].BoundName() != "b" || rel.Names[1].Name != "c" {
		t.Fatalf("unexpected names %#v", rel.Names)
	}

	star := mod.Body[2].(*ast.ImportFrom)
	if star.Module != "" || star.Level != 1 || len(star.Names) != 1 || star.Names[0].Name != "*" {
		t.Fatalf("unexpected wildcard import %#v", star)
	}

	future := mod.Body[3].(*ast.ImportFrom)
	if future.Module != "__future__" || len(future.Names) != 1 || future.Names[0].Name != "annotations" {
		t.Fatalf("unexpected future import %#v", future)
	}
}

func TestParseFunctionSignature(t *testing.T) {
	mod := parseClean(t, "def f(a, /, b=1, *args, c, d=2, **kw) -> int:\n    return a\n")
	def := singleStatement[*ast.FunctionDef](t, mod)
	if def.Name != "f" || def.IsAsync {
		t.Fatalf("unexpected def %s async=%v", def.Name, def.IsAsync)
	}
	args := def.Args
	if len(args.PosOnlyArgs) != 1 || args.PosOnlyArgs[0].Arg != "a" {
		t.Fatalf("unexpected positional-only %#v", args.PosOnlyArgs)
	}
	if len(args.Args) != 1 || args.Args[0].Arg != "b" || len(args.Defaults) != 1 {
		t.Fatalf("unexpected args %#v defaults %#v", args.Args, args.Defaults)
	}
	if args.Vararg == nil || args.Vararg.Arg != "args" {
		t.Fatalf("unexpected vararg %#v", args.Vararg)
	}
	if len(args.KwOnlyArgs) != 2 || args.KwOnlyArgs[0].Arg != "c" || args.KwOnlyArgs[1].Arg != "d" {
		t.Fatalf("unexpected keyword-only %#v", args.KwOnlyArgs)
	}
	if args.KwDefaults[0] != nil {
		t.Fatalf("expected no default for c, got %#v", args.KwDefaults[0])
	}
	assertExprEqual(t, ast.Int("2"), args.KwDefaults[1])
	if args.Kwarg == nil || args.Kwarg.Arg != "kw" {
		t.Fatalf("unexpected kwarg %#v", args.Kwarg)
	}
	if err := args.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if nameOf(t, def.Returns) != "int" {
		t.Fatalf("unexpected return annotation")
	}
	if len(def.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(def.Body))
	}
	if _, ok := def.Body[0].(*ast.Return); !ok {
		t.Fatalf("expected Return, got %T", def.Body[0])
	}
}

func TestParseAsyncFunctionAndYield(t *testing.T) {
	mod := parseClean(t, "async def g(x: int = 0):\n    await h()\n    yield 1\n    yield from xs\n")
	def := singleStatement[*ast.FunctionDef](t, mod)
	if !def.IsAsync {
		t.Fatalf("expected async def")
	}
	if len(def.Args.Args) != 1 || nameOf(t, def.Args.Args[0].Annotation) != "int" {
		t.Fatalf("unexpected typed default parameter %#v", def.Args.Args)
	}
	if len(def.Body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(def.Body))
	}
	await := def.Body[0].(*ast.ExpressionStatement).Expr.(*ast.Await)
	if _, ok := await.Value.(*ast.Call); !ok {
		t.Fatalf("expected awaited call, got %T", await.Value)
	}
	if _, ok := def.Body[1].(*ast.ExpressionStatement).Expr.(*ast.Yield); !ok {
		t.Fatalf("expected Yield")
	}
	if _, ok := def.Body[2].(*ast.ExpressionStatement).Expr.(*ast.YieldFrom); !ok {
		t.Fatalf("expected YieldFrom")
	}
}

func TestParseDecoratedClass(t *testing.T) {
	mod := parseClean(t, "@dec\nclass C(Base, metaclass=M):\n    x = 1\n")
	class := singleStatement[*ast.ClassDef](t, mod)
	if class.Name != "C" {
		t.Fatalf("unexpected class name %s", class.Name)
	}
	if class.Span().Start != 0 {
		t.Fatalf("class span should cover its decorator, starts at %d", class.Span().Start)
	}
	if len(class.DecoratorList) != 1 || nameOf(t, class.DecoratorList[0]) != "dec" {
		t.Fatalf("unexpected decorators %#v", class.DecoratorList)
	}
	if len(class.Bases) != 1 || nameOf(t, class.Bases[0]) != "Base" {
		t.Fatalf("unexpected bases %#v", class.Bases)
	}
	if len(class.Keywords) != 1 || class.Keywords[0].Arg != "metaclass" {
		t.Fatalf("unexpected keywords %#v", class.Keywords)
	}
	if len(class.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(class.Body))
	}
}

func TestParseIfElifChain(t *testing.T) {
	mod := parseClean(t, "if a:\n    pass\nelif b:\n    pass\nelse:\n    x = 1\n")
	stmt := singleStatement[*ast.If](t, mod)
	if nameOf(t, stmt.Test) != "a" || len(stmt.OrElse) != 1 {
		t.Fatalf("unexpected if %#v", stmt)
	}
	elif, ok := stmt.OrElse[0].(*ast.If)
	if !ok {
		t.Fatalf("expected nested If for elif, got %T", stmt.OrElse[0])
	}
	if nameOf(t, elif.Test) != "b" || elif.Span().Start != 15 {
		t.Fatalf("unexpected elif %#v", elif)
	}
	if len(elif.OrElse) != 1 {
		t.Fatalf("expected else body on innermost branch")
	}
	if _, ok := elif.OrElse[0].(*ast.Assign); !ok {
		t.Fatalf("expected Assign in else, got %T", elif.OrElse[0])
	}
}

func TestParseLoops(t *testing.T) {
	mod := parseClean(t, "for i, j in pairs:\n    continue\nelse:\n    pass\nwhile x:\n    break\n")
	loop := mod.Body[0].(*ast.For)
	assertExprEqual(t, ast.Tup(ast.ID("i"), ast.ID("j")), loop.Target)
	if nameOf(t, loop.Iter) != "pairs" || len(loop.OrElse) != 1 {
		t.Fatalf("unexpected for %#v", loop)
	}
	while := mod.Body[1].(*ast.While)
	if _, ok := while.Body[0].(*ast.Break); !ok {
		t.Fatalf("expected Break, got %T", while.Body[0])
	}
}

func TestParseParenthesizedTargets(t *testing.T) {
	mod := parseClean(t, "(a) = 1\nfor (i) in y:\n    pass\nwith a as (b):\n    pass\n(c,) = z\n((d)), e = 1, 2\n")

	assign := mod.Body[0].(*ast.Assign)
	if len(assign.Targets) != 1 || nameOf(t, assign.Targets[0]) != "a" {
		t.Fatalf("unexpected targets %#v", assign.Targets)
	}
	loop := mod.Body[1].(*ast.For)
	if nameOf(t, loop.Target) != "i" {
		t.Fatalf("unexpected for target %#v", loop.Target)
	}
	with := mod.Body[2].(*ast.With)
	if len(with.Items) != 1 || nameOf(t, with.Items[0].OptionalVars) != "b" {
		t.Fatalf("unexpected with items %#v", with.Items)
	}
	single := mod.Body[3].(*ast.Assign)
	assertExprEqual(t, ast.Tup(ast.ID("c")), single.Targets[0])
	pair := mod.Body[4].(*ast.Assign)
	assertExprEqual(t, ast.Tup(ast.ID("d"), ast.ID("e")), pair.Targets[0])
}

func TestParseTryAndWith(t *testing.T) {
	source := "try:\n    pass\nexcept ValueError as e:\n    pass\nexcept:\n    pass\nelse:\n    pass\nfinally:\n    pass\n" +
		"with open(p) as f, lock:\n    pass\n"
	mod := parseClean(t, source)
	try := mod.Body[0].(*ast.Try)
	if len(try.Handlers) != 2 {
		t.Fatalf("expected 2 handlers, got %d", len(try.Handlers))
	}
	if nameOf(t, try.Handlers[0].Typ) != "ValueError" || try.Handlers[0].Name != "e" {
		t.Fatalf("unexpected handler %#v", try.Handlers[0])
	}
	if try.Handlers[1].Typ != nil || try.Handlers[1].Name != "" {
		t.Fatalf("expected bare except, got %#v", try.Handlers[1])
	}
	if len(try.OrElse) != 1 || len(try.FinalBody) != 1 {
		t.Fatalf("unexpected else/finally bodies")
	}

	with := mod.Body[1].(*ast.With)
	if len(with.Items) != 2 {
		t.Fatalf("expected 2 with items, got %d", len(with.Items))
	}
	if _, ok := with.Items[0].ContextExpr.(*ast.Call); !ok {
		t.Fatalf("expected call context, got %T", with.Items[0].ContextExpr)
	}
	if nameOf(t, with.Items[0].OptionalVars) != "f" || with.Items[1].OptionalVars != nil {
		t.Fatalf("unexpected with targets")
	}
}

func TestParseTryStar(t *testing.T) {
	mod := parseClean(t, "try:\n    pass\nexcept* OSError:\n    pass\n")
	stmt := singleStatement[*ast.TryStar](t, mod)
	if len(stmt.Handlers) != 1 || nameOf(t, stmt.Handlers[0].Typ) != "OSError" {
		t.Fatalf("unexpected handlers %#v", stmt.Handlers)
	}
}

func TestParseScopeStatements(t *testing.T) {
	mod := parseClean(t, "def f():\n    global a, b\n    nonlocal c\n    del a, b[0]\n    raise E from cause\n    assert x, 'msg'\n")
	def := singleStatement[*ast.FunctionDef](t, mod)
	if len(def.Body) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(def.Body))
	}
	global := def.Body[0].(*ast.Global)
	if len(global.Names) != 2 || global.Names[0] != "a" || global.Names[1] != "b" {
		t.Fatalf("unexpected global names %v", global.Names)
	}
	nonlocal := def.Body[1].(*ast.Nonlocal)
	if len(nonlocal.Names) != 1 || nonlocal.Names[0] != "c" {
		t.Fatalf("unexpected nonlocal names %v", nonlocal.Names)
	}
	del := def.Body[2].(*ast.Delete)
	if len(del.Targets) != 2 {
		t.Fatalf("expected 2 delete targets, got %d", len(del.Targets))
	}
	raise := def.Body[3].(*ast.Raise)
	if nameOf(t, raise.Exc) != "E" || nameOf(t, raise.Cause) != "cause" {
		t.Fatalf("unexpected raise %#v", raise)
	}
	assert := def.Body[4].(*ast.Assert)
	assertExprEqual(t, ast.Str("msg"), assert.Msg)
}

func TestParseMatchPatterns(t *testing.T) {
	source := "match cmd:\n" +
		"    case [x, *rest]:\n        pass\n" +
		"    case {\"k\": v, **others}:\n        pass\n" +
		"    case Point(x=0) | None:\n        pass\n" +
		"    case str() as s if s:\n        pass\n" +
		"    case _:\n        pass\n"
	mod := parseClean(t, source)
	match := singleStatement[*ast.Match](t, mod)
	if nameOf(t, match.Subject) != "cmd" || len(match.Cases) != 5 {
		t.Fatalf("unexpected match %#v", match)
	}

	seq, ok := match.Cases[0].Pattern.(*ast.MatchSequence)
	if !ok || len(seq.Patterns) != 2 {
		t.Fatalf("expected sequence pattern, got %#v", match.Cases[0].Pattern)
	}
	if capture, ok := seq.Patterns[0].(*ast.MatchAs); !ok || capture.Name != "x" {
		t.Fatalf("expected capture x, got %#v", seq.Patterns[0])
	}
	if star, ok := seq.Patterns[1].(*ast.MatchStar); !ok || star.CaptureName() != "rest" {
		t.Fatalf("expected star capture, got %#v", seq.Patterns[1])
	}

	mapping, ok := match.Cases[1].Pattern.(*ast.MatchMapping)
	if !ok || len(mapping.Keys) != 1 || mapping.Rest != "others" {
		t.Fatalf("unexpected mapping pattern %#v", match.Cases[1].Pattern)
	}
	assertExprEqual(t, ast.Str("k"), mapping.Keys[0])

	or, ok := match.Cases[2].Pattern.(*ast.MatchOr)
	if !ok || len(or.Patterns) != 2 {
		t.Fatalf("unexpected or-pattern %#v", match.Cases[2].Pattern)
	}
	class, ok := or.Patterns[0].(*ast.MatchClass)
	if !ok || nameOf(t, class.Cls) != "Point" || len(class.KwdAttrs) != 1 || class.KwdAttrs[0] != "x" {
		t.Fatalf("unexpected class pattern %#v", or.Patterns[0])
	}
	if _, ok := or.Patterns[1].(*ast.MatchSingleton); !ok {
		t.Fatalf("expected None singleton, got %T", or.Patterns[1])
	}

	as, ok := match.Cases[3].Pattern.(*ast.MatchAs)
	if !ok || as.Name != "s" {
		t.Fatalf("unexpected as-pattern %#v", match.Cases[3].Pattern)
	}
	if _, ok := as.Pattern.(*ast.MatchClass); !ok {
		t.Fatalf("expected class pattern under as, got %T", as.Pattern)
	}
	if nameOf(t, match.Cases[3].Guard) != "s" {
		t.Fatalf("expected guard")
	}

	wildcard, ok := match.Cases[4].Pattern.(*ast.MatchAs)
	if !ok || wildcard.Name != "" || wildcard.Pattern != nil {
		t.Fatalf("expected wildcard, got %#v", match.Cases[4].Pattern)
	}
}
