package parser

import (
	"fmt"
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/diagnostics"
)

// SourceLocation is a 1-based line/column range for a parser node.
type SourceLocation struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

func locationForNode(node *sitter.Node) SourceLocation {
	if node == nil {
		return SourceLocation{}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return SourceLocation{
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
	}
}

// collectSyntaxErrors reports every MISSING node as ExpectToken and every
// ERROR node as UnexpectedToken. Children of an ERROR node are not reported
// again.
func (ctx *parseContext) collectSyntaxErrors(root *sitter.Node) {
	walkNodes(root, func(node *sitter.Node) bool {
		switch {
		case node.IsMissing():
			expected := formatExpectedKind(node.Kind())
			found := ctx.tokenAfter(node.EndByte())
			ctx.diags.Add(diagnostics.ExpectToken(expected, found, ast.NewSpan(node.StartByte(), node.EndByte())))
			return false
		case node.IsError():
			loc := locationForNode(node)
			ctx.diags.Add(diagnostics.UnexpectedToken(loc.Line, ctx.errorToken(node), spanOf(node)))
			return false
		default:
			return node.HasError()
		}
	})
}

// walkNodes visits root and its descendants depth-first. Returning false from
// visit skips the node's children.
func walkNodes(root *sitter.Node, visit func(node *sitter.Node) bool) {
	if root == nil {
		return
	}
	if !visit(root) {
		return
	}
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		walkNodes(child, visit)
	}
}

// errorToken returns the first source token covered by an ERROR node.
func (ctx *parseContext) errorToken(node *sitter.Node) string {
	text := strings.TrimSpace(ctx.text(node))
	if text == "" {
		return "EOF"
	}
	if idx := strings.IndexAny(text, " \t\r\n"); idx > 0 {
		text = text[:idx]
	}
	return text
}

// tokenAfter describes what the source holds at offset, for "but found" messages.
func (ctx *parseContext) tokenAfter(offset uint) string {
	rest := ctx.source
	if int(offset) < len(rest) {
		rest = rest[offset:]
	} else {
		return "EOF"
	}
	for i, b := range rest {
		switch b {
		case ' ', '\t', '\\':
			continue
		case '\n', '\r':
			return "newline"
		}
		rest = rest[i:]
		end := 1
		for end < len(rest) && !isTokenBoundary(rest[end]) {
			end++
		}
		return string(rest[:end])
	}
	return "EOF"
}

func isTokenBoundary(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || strings.IndexByte("()[]{}:,;.=", b) >= 0
}

func formatExpectedKind(kind string) string {
	trimmed := strings.TrimSpace(kind)
	if trimmed == "" {
		return "token"
	}
	isSymbol := true
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			isSymbol = false
			break
		}
	}
	if len(trimmed) == 1 || isSymbol {
		return trimmed
	}
	if trimmed == "_newline" || trimmed == "newline" {
		return "newline"
	}
	return strings.ReplaceAll(strings.TrimPrefix(trimmed, "_"), "_", " ")
}

func describeNode(node *sitter.Node) string {
	if node == nil {
		return "<nil>"
	}
	loc := locationForNode(node)
	return fmt.Sprintf("%s at %d:%d", node.Kind(), loc.Line, loc.Column)
}
