// Package program turns a parsed module into the per-file unit the semantic
// passes work on.
package program

import (
	"path/filepath"
	"strings"

	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/diagnostics"
	"enderpy/typechecker-go/pkg/symbols"
)

// ImportKind is a top-level import statement in one of its two forms.
type ImportKind interface {
	Statement() ast.Statement
	// Modules lists the module paths the import names, relative dots included.
	Modules() []string
	isImportKind()
}

type ImportKindImport struct {
	Node *ast.Import
}

type ImportKindImportFrom struct {
	Node *ast.ImportFrom
}

func (i ImportKindImport) Statement() ast.Statement     { return i.Node }
func (i ImportKindImportFrom) Statement() ast.Statement { return i.Node }
func (ImportKindImport) isImportKind()                  {}
func (ImportKindImportFrom) isImportKind()              {}

func (i ImportKindImport) Modules() []string {
	out := make([]string, 0, len(i.Node.Names))
	for _, alias := range i.Node.Names {
		out = append(out, alias.Name)
	}
	return out
}

func (i ImportKindImportFrom) Modules() []string {
	return []string{strings.Repeat(".", int(i.Node.Level)) + i.Node.Module}
}

// EnderpyFile is the checked unit for one source file. The tree is not
// modified after conversion; Names is filled in by semantic analysis.
type EnderpyFile struct {
	Path        string
	Source      []byte
	AST         *ast.Module
	Names       *symbols.SymbolTable
	Imports     []ImportKind
	Defs        []ast.Statement
	Diagnostics diagnostics.List
}

// IsStub reports whether the file is a `.pyi` type stub.
func (f *EnderpyFile) IsStub() bool {
	return strings.EqualFold(filepath.Ext(f.Path), ".pyi")
}

// ModuleName derives a dotted module name from the file path relative to root.
// A package's `__init__` file names the package itself.
func ModuleName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) > 1 && parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}
