package checker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"enderpy/typechecker-go/pkg/diagnostics"
	"enderpy/typechecker-go/pkg/driver"
	"enderpy/typechecker-go/pkg/semanal"
	"enderpy/typechecker-go/pkg/symbols"
)

func loadProgram(t *testing.T, files map[string]string) *driver.Program {
	t.Helper()
	root := t.TempDir()
	loader, err := driver.NewLoader(driver.DefaultConfig(root), nil)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	defer loader.Close()

	raw := make([]driver.RawFile, 0, len(files))
	for rel, src := range files {
		raw = append(raw, driver.RawFile{Path: filepath.Join(root, filepath.FromSlash(rel)), Source: []byte(src)})
	}
	prog, err := loader.LoadSources(raw)
	if err != nil {
		t.Fatalf("LoadSources error: %v", err)
	}
	return prog
}

func TestCheckBindsEveryFile(t *testing.T) {
	prog := loadProgram(t, map[string]string{
		"pkg/__init__.py": "import os\nfrom .mod import value\n",
		"pkg/mod.py":      "value = 1\n\ndef helper(a):\n    return a\n",
		"main.py":         "class App:\n    name = 'x'\n",
	})

	result, err := NewProgramChecker(semanal.Options{}, 2).Check(context.Background(), prog)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if len(result.Files) != 3 {
		t.Fatalf("expected 3 results, got %d", len(result.Files))
	}
	wantModules := []string{"main", "pkg", "pkg.mod"}
	for i, want := range wantModules {
		if got := result.Files[i].Module; got != want {
			t.Fatalf("result %d module = %q, want %q", i, got, want)
		}
	}
	if result.HasErrors() || len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %+v", result.Diagnostics)
	}

	mod := result.Files[2].File
	table := mod.Names
	if sym := table.LookupLocal(table.Module(), "value"); sym == nil || sym.Type != symbols.TagInt {
		t.Fatalf("value not bound as int: %#v", sym)
	}
	if sym := table.LookupLocal(table.Module(), "helper"); sym == nil || sym.Type != symbols.TagFunction {
		t.Fatalf("helper not bound as function: %#v", sym)
	}
	if len(mod.Defs) != 1 {
		t.Fatalf("expected one collected def, got %d", len(mod.Defs))
	}

	pkg := result.Files[1].File
	if len(pkg.Imports) != 2 {
		t.Fatalf("expected 2 imports in pkg, got %d", len(pkg.Imports))
	}
	if result.Files[1].Stats.Bindings != 2 {
		t.Fatalf("expected 2 bindings in pkg, got %d", result.Files[1].Stats.Bindings)
	}
}

func TestCheckCarriesParseAndSemanticDiagnostics(t *testing.T) {
	prog := loadProgram(t, map[string]string{
		"a.py": "print 'x'\n",
		"b.py": "x, y = 1, 2\n",
	})

	result, err := NewProgramChecker(semanal.Options{SingleTargetOnly: true}, 1).Check(context.Background(), prog)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if !result.HasErrors() {
		t.Fatalf("expected errors")
	}
	byModule := make(map[string][]diagnostics.Kind)
	for _, diag := range result.Diagnostics {
		byModule[diag.Module] = append(byModule[diag.Module], diag.Diagnostic.Kind)
	}
	if kinds := byModule["a"]; len(kinds) == 0 || kinds[0] != diagnostics.KindUnknownStatement {
		t.Fatalf("unexpected diagnostics for a.py: %v", kinds)
	}
	if kinds := byModule["b"]; len(kinds) != 1 || kinds[0] != diagnostics.KindUnsupported {
		t.Fatalf("unexpected diagnostics for b.py: %v", kinds)
	}
	if last := result.Diagnostics[len(result.Diagnostics)-1]; last.Module != "b" {
		t.Fatalf("diagnostics should follow file order, last is %q", last.Module)
	}
}

func TestCheckKeepsOrderAcrossWorkers(t *testing.T) {
	files := make(map[string]string)
	for i := 0; i < 40; i++ {
		files[fmt.Sprintf("m%02d.py", i)] = fmt.Sprintf("v%d = %d\n", i, i)
	}
	prog := loadProgram(t, files)

	result, err := NewProgramChecker(semanal.Options{}, 8).Check(context.Background(), prog)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	for i, res := range result.Files {
		if want := fmt.Sprintf("m%02d", i); res.Module != want {
			t.Fatalf("result %d module = %q, want %q", i, res.Module, want)
		}
		if res.File.Names.LookupLocal(res.File.Names.Module(), fmt.Sprintf("v%d", i)) == nil {
			t.Fatalf("result %d missing its binding", i)
		}
	}
}

func TestCheckCancelled(t *testing.T) {
	prog := loadProgram(t, map[string]string{"a.py": "a = 1\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProgramChecker(semanal.Options{}, 1).Check(ctx, prog)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCheckNilProgram(t *testing.T) {
	if _, err := NewProgramChecker(semanal.Options{}, 0).Check(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil program")
	}
}

func TestCheckFileNil(t *testing.T) {
	if _, err := NewProgramChecker(semanal.Options{}, 1).CheckFile(nil); err == nil {
		t.Fatalf("expected error for nil file")
	}
}
