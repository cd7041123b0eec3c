package program

import (
	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/diagnostics"
	"enderpy/typechecker-go/pkg/symbols"
	"enderpy/typechecker-go/pkg/traverse"
)

// converter collects top-level imports and function definitions. It looks
// at each statement of the module body once and does not descend into
// compound statements or definition bodies.
type converter struct {
	traverse.Noop

	imports []ImportKind
	defs    []ast.Statement
}

func (c *converter) VisitImport(node *ast.Import) {
	c.imports = append(c.imports, ImportKindImport{Node: node})
}

func (c *converter) VisitImportFrom(node *ast.ImportFrom) {
	c.imports = append(c.imports, ImportKindImportFrom{Node: node})
}

func (c *converter) VisitFunctionDef(node *ast.FunctionDef) {
	c.defs = append(c.defs, node)
}

// Convert builds the checked unit for module with an empty symbol table.
func Convert(module *ast.Module) *EnderpyFile {
	return ConvertFile("", nil, module, nil)
}

// ConvertFile is Convert for a file read from disk, keeping its path, source
// and parser diagnostics. It never fails: statements it does not collect
// stay reachable through AST.
func ConvertFile(path string, source []byte, module *ast.Module, parseDiags diagnostics.List) *EnderpyFile {
	if module == nil {
		module = ast.NewModule(nil)
	}
	c := &converter{
		imports: make([]ImportKind, 0),
		defs:    make([]ast.Statement, 0),
	}
	traverse.VisitModule(c, module)

	diags := make(diagnostics.List, 0, len(parseDiags))
	diags = append(diags, parseDiags...)
	return &EnderpyFile{
		Path:        path,
		Source:      source,
		AST:         module,
		Names:       symbols.New(path),
		Imports:     c.imports,
		Defs:        c.defs,
		Diagnostics: diags,
	}
}
