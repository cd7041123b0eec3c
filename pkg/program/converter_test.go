package program

import (
	"reflect"
	"testing"

	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/diagnostics"
)

func TestConvertCollectsTopLevelImport(t *testing.T) {
	imp := ast.ImportNames("os")
	file := Convert(ast.Mod(imp))

	if len(file.Imports) != 1 || len(file.Defs) != 0 {
		t.Fatalf("expected one import and no defs, got %d/%d", len(file.Imports), len(file.Defs))
	}
	got, ok := file.Imports[0].(ImportKindImport)
	if !ok || got.Node != imp {
		t.Fatalf("expected the import statement, got %#v", file.Imports[0])
	}
	alias := got.Node.Names[0]
	if alias.Name != "os" || alias.AsName != "" {
		t.Fatalf("unexpected alias %#v", alias)
	}
	if file.Names.Len(file.Names.Module()) != 0 {
		t.Fatalf("expected an empty symbol table")
	}
}

func TestConvertCollectsFunctionDefinition(t *testing.T) {
	def := ast.Def("f", nil, ast.NewPass())
	file := Convert(ast.Mod(def))

	if len(file.Defs) != 1 || file.Defs[0] != def {
		t.Fatalf("expected def f, got %#v", file.Defs)
	}
	fn := file.Defs[0].(*ast.FunctionDef)
	if fn.Name != "f" || len(fn.Body) != 1 || fn.Body[0].NodeType() != ast.NodePass {
		t.Fatalf("unexpected def %#v", fn)
	}
}

func TestConvertPartitionsInSourceOrder(t *testing.T) {
	body := []ast.Statement{
		ast.FromImport("typing", "List"),
		ast.AssignTo("x", ast.Int("1")),
		ast.Def("a", nil, ast.NewPass()),
		ast.IfStmt(ast.Bool(true), ast.Block(ast.ImportNames("sys"), ast.Def("hidden", nil, ast.NewPass()))),
		ast.Class("C", nil, ast.Def("method", nil, ast.NewPass())),
		ast.ImportNames("os", "re"),
		ast.Def("b", nil, ast.NewPass()),
	}
	module := ast.Mod(body...)
	file := Convert(module)

	if len(file.Imports)+len(file.Defs) > len(module.Body) {
		t.Fatalf("collected more entries than statements")
	}
	if len(file.Imports) != 2 || len(file.Defs) != 2 {
		t.Fatalf("expected 2 imports and 2 defs, got %d/%d", len(file.Imports), len(file.Defs))
	}
	if file.Imports[0].Statement() != body[0] || file.Imports[1].Statement() != body[5] {
		t.Fatalf("imports out of order")
	}
	if file.Defs[0] != body[2] || file.Defs[1] != body[6] {
		t.Fatalf("defs out of order")
	}
	seen := map[ast.Statement]bool{}
	for _, imp := range file.Imports {
		seen[imp.Statement()] = true
	}
	for _, def := range file.Defs {
		if seen[def] {
			t.Fatalf("statement collected twice")
		}
		seen[def] = true
	}
}

func TestConvertIsIdempotent(t *testing.T) {
	module := ast.Mod(
		ast.ImportNames("os"),
		ast.Def("f", nil, ast.NewPass()),
		ast.FromImport("a.b", "c"),
	)
	first := Convert(module)
	second := Convert(module)
	if !reflect.DeepEqual(first.Imports, second.Imports) || !reflect.DeepEqual(first.Defs, second.Defs) {
		t.Fatalf("expected identical results across runs")
	}
	if first.Names == second.Names {
		t.Fatalf("each conversion must own its symbol table")
	}
}

func TestConvertFileKeepsParseDiagnostics(t *testing.T) {
	parseDiags := diagnostics.List{diagnostics.UnexpectedToken(1, ")", ast.NewSpan(4, 5))}
	file := ConvertFile("pkg/mod.pyi", []byte("x = )"), nil, parseDiags)

	if file.AST == nil || len(file.AST.Body) != 0 {
		t.Fatalf("expected an empty module for a nil tree")
	}
	if len(file.Diagnostics) != 1 || file.Diagnostics[0].Kind != diagnostics.KindUnexpectedToken {
		t.Fatalf("unexpected diagnostics %#v", file.Diagnostics)
	}
	parseDiags[0].Message = "changed"
	if file.Diagnostics[0].Message == "changed" {
		t.Fatalf("diagnostics must be copied")
	}
	if !file.IsStub() || file.Names.Path != "pkg/mod.pyi" {
		t.Fatalf("unexpected file metadata")
	}
}

func TestImportModules(t *testing.T) {
	rel := ast.NewImportFrom("pkg", []*ast.Alias{ast.NewAlias("x", "")}, 2)
	if got := (ImportKindImportFrom{Node: rel}).Modules(); got[0] != "..pkg" {
		t.Fatalf("expected ..pkg, got %v", got)
	}
	if got := (ImportKindImport{Node: ast.ImportNames("os.path")}).Modules(); got[0] != "os.path" {
		t.Fatalf("expected os.path, got %v", got)
	}
}

func TestModuleName(t *testing.T) {
	cases := map[string]string{
		"/src/pkg/mod.py":      "pkg.mod",
		"/src/pkg/__init__.py": "pkg",
		"/src/top.pyi":         "top",
	}
	for path, want := range cases {
		if got := ModuleName("/src", path); got != want {
			t.Fatalf("%s: expected %s, got %s", path, want, got)
		}
	}
}
