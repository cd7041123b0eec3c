package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/diagnostics"
)

// ModuleParser wraps a tree-sitter parser configured for Python modules.
// A ModuleParser is not safe for concurrent use; create one per goroutine.
type ModuleParser struct {
	parser *sitter.Parser
}

// NewModuleParser constructs a parser with the Python language loaded.
func NewModuleParser() (*ModuleParser, error) {
	lang := sitter.NewLanguage(tree_sitter_python.Language())
	if lang == nil {
		return nil, fmt.Errorf("parser: python language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		p.Close()
		return nil, fmt.Errorf("parser: %w", err)
	}

	return &ModuleParser{parser: p}, nil
}

// Close releases parser resources.
func (p *ModuleParser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
	p.parser = nil
}

// ParseModule parses Python source into an AST module. Syntax errors do not
// abort the parse: they are returned as diagnostics next to a best-effort tree.
// The error result is reserved for failures of the parser itself.
func (p *ModuleParser) ParseModule(source []byte) (*ast.Module, diagnostics.List, error) {
	if p == nil || p.parser == nil {
		return nil, nil, fmt.Errorf("parser: nil parser")
	}

	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, nil, fmt.Errorf("parser: parse aborted")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.Kind() != "module" {
		return nil, nil, fmt.Errorf("parser: unexpected root node %q", root.Kind())
	}

	ctx := newParseContext(source)
	if root.HasError() {
		ctx.collectSyntaxErrors(root)
	}

	module := ast.NewModule(ctx.parseStatements(root))
	ast.SetSpan(module, ast.NewSpan(0, uint(len(source))))

	ctx.diags.Sort()
	return module, ctx.diags, nil
}

// ParseSource is a convenience wrapper that creates a throwaway parser.
func ParseSource(source []byte) (*ast.Module, diagnostics.List, error) {
	p, err := NewModuleParser()
	if err != nil {
		return nil, nil, err
	}
	defer p.Close()
	return p.ParseModule(source)
}
