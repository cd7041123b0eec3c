package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/diagnostics"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func newTestLoader(t *testing.T, cfg *Config) *Loader {
	t.Helper()
	loader, err := NewLoader(cfg, nil)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	t.Cleanup(loader.Close)
	return loader
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			t.Fatalf("rel %s: %v", path, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestLoaderDiscoverHonorsExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/__init__.py":          "",
		"pkg/mod.py":               "x = 1\n",
		"pkg/stub.pyi":             "def f() -> int: ...\n",
		"pkg/__pycache__/mod.py":   "",
		".venv/lib/site.py":        "",
		"build/generated.py":       "",
		"notes.txt":                "not python",
		"scripts/tool.PY":          "",
		"scripts/data/config.json": "{}",
	})

	loader := newTestLoader(t, DefaultConfig(root))
	files, err := loader.Discover()
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	got := strings.Join(relPaths(t, root, files), ",")
	want := "pkg/__init__.py,pkg/mod.py,pkg/stub.pyi,scripts/tool.PY"
	if got != want {
		t.Fatalf("Discover = %s, want %s", got, want)
	}
}

func TestLoaderDiscoverIncludeRoots(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/app.py":   "",
		"other/lib.py": "",
		"single.py":    "",
	})
	cfg := DefaultConfig(root)
	cfg.Include = []string{"src", "single.py", "src"}

	files, err := newTestLoader(t, cfg).Discover()
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if got := strings.Join(relPaths(t, root, files), ","); got != "single.py,src/app.py" {
		t.Fatalf("Discover = %s", got)
	}
}

func TestLoaderDiscoverMissingInclude(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	cfg.Include = []string{"missing"}
	if _, err := newTestLoader(t, cfg).Discover(); err == nil {
		t.Fatalf("expected error for a missing include root")
	}
}

func TestLoaderLoadParsesFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/__init__.py": "from .mod import x\n",
		"pkg/mod.py":      "x = 1\nprint 'x'\n",
	})

	prog, err := newTestLoader(t, DefaultConfig(root)).Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(prog.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(prog.Files))
	}
	initFile, mod := prog.Files[0], prog.Files[1]
	if initFile.Module != "pkg" || mod.Module != "pkg.mod" {
		t.Fatalf("unexpected module names %q, %q", initFile.Module, mod.Module)
	}
	if len(initFile.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics in __init__: %+v", initFile.Diagnostics)
	}
	if !mod.Diagnostics.HasErrors() || prog.ParseErrors() == 0 {
		t.Fatalf("expected syntax errors for pkg/mod.py")
	}
	if len(mod.AST.Body) == 0 {
		t.Fatalf("expected the assignment to survive the syntax error")
	}
	if _, ok := mod.AST.Body[0].(*ast.Assign); !ok {
		t.Fatalf("expected first statement to be an assignment, got %T", mod.AST.Body[0])
	}
}

func TestLoaderLoadExplicitPaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": "a = 1\n", "b.py": "b = 2\n"})
	loader := newTestLoader(t, DefaultConfig(root))

	prog, err := loader.Load(filepath.Join(root, "b.py"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(prog.Files) != 1 || prog.Files[0].Module != "b" {
		t.Fatalf("unexpected files %+v", prog.Files)
	}

	if _, err := loader.Load(filepath.Join(root, "c.py")); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing-file error, got %v", err)
	}
}

func TestLoaderLoadSourcesSortsByPath(t *testing.T) {
	root := t.TempDir()
	loader := newTestLoader(t, DefaultConfig(root))
	prog, err := loader.LoadSources([]RawFile{
		{Path: filepath.Join(root, "z.py"), Source: []byte("print 'x'\n")},
		{Path: filepath.Join(root, "a.py"), Source: []byte("a = 1\n")},
	})
	if err != nil {
		t.Fatalf("LoadSources error: %v", err)
	}
	if prog.Files[0].Module != "a" || prog.Files[1].Module != "z" {
		t.Fatalf("files not sorted: %s, %s", prog.Files[0].Module, prog.Files[1].Module)
	}
	if prog.Files[1].Diagnostics.Count(diagnostics.KindUnknownStatement) != 1 {
		t.Fatalf("expected unknown statement diagnostic, got %+v", prog.Files[1].Diagnostics)
	}
}

func TestLoaderClosed(t *testing.T) {
	loader, err := NewLoader(DefaultConfig(t.TempDir()), nil)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	loader.Close()
	if _, err := loader.LoadSources(nil); err == nil {
		t.Fatalf("expected error from a closed loader")
	}
}
