package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	"golang.org/x/text/unicode/norm"

	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/diagnostics"
)

// parseContext carries the module source and the diagnostics collected while
// lowering, so helpers share the same view of the file.
type parseContext struct {
	source []byte
	diags  diagnostics.List
}

func newParseContext(source []byte) *parseContext {
	return &parseContext{source: source}
}

func (ctx *parseContext) text(node *sitter.Node) string {
	return sliceContent(node, ctx.source)
}

func sliceContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := int(node.StartByte())
	end := int(node.EndByte())
	if start < 0 || end < start || end > len(source) {
		return ""
	}
	return string(source[start:end])
}

func spanOf(node *sitter.Node) ast.Span {
	if node == nil {
		return ast.Span{}
	}
	return ast.NewSpan(node.StartByte(), node.EndByte())
}

// annotate stamps the node's byte range onto target and returns target.
func annotate[T ast.Node](target T, node *sitter.Node) T {
	if node != nil {
		ast.SetSpan(target, spanOf(node))
	}
	return target
}

func annotateRange[T ast.Node](target T, first, last *sitter.Node) T {
	if first != nil && last != nil {
		ast.SetSpan(target, ast.NewSpan(first.StartByte(), last.EndByte()))
	}
	return target
}

func isIgnorableNode(node *sitter.Node) bool {
	if node == nil {
		return true
	}
	switch node.Kind() {
	case "comment", "line_continuation":
		return true
	default:
		return false
	}
}

// namedChildren returns the named children of node, minus comments.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	children := namedChildren(node)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// childrenByField collects every child carrying the given field name. Fields
// such as `alternative` or `name` repeat on some nodes.
func childrenByField(node *sitter.Node, field string) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0)
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.FieldNameForChild(uint32(i)) != field {
			continue
		}
		if child := node.Child(i); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// hasToken reports whether node has a direct anonymous child spelled token.
func hasToken(node *sitter.Node, token string) bool {
	if node == nil {
		return false
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && child.Kind() == token {
			return true
		}
	}
	return false
}

// identifierName returns the NFKC-normalized spelling of an identifier, which
// is how Python compares names.
func (ctx *parseContext) identifierName(node *sitter.Node) string {
	raw := ctx.text(node)
	if raw == "" {
		return ""
	}
	return norm.NFKC.String(raw)
}

func (ctx *parseContext) dottedName(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	if node.Kind() != "dotted_name" {
		return ctx.identifierName(node)
	}
	name := ""
	for _, part := range namedChildren(node) {
		if name != "" {
			name += "."
		}
		name += ctx.identifierName(part)
	}
	return name
}

func (ctx *parseContext) invalid(node *sitter.Node, message string) {
	ctx.diags.Add(diagnostics.InvalidSyntax(message, spanOf(node)))
}

func (ctx *parseContext) unknownStatement(node *sitter.Node) {
	ctx.diags.Add(diagnostics.UnknownStatement(node.Kind(), spanOf(node)))
}
