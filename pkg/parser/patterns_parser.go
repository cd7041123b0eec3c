package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"enderpy/typechecker-go/pkg/ast"
)

// parseCasePattern lowers a `case_pattern` wrapper. An empty wrapper is the
// wildcard `_`; a leading `-` belongs to a negative numeric literal.
func (ctx *parseContext) parseCasePattern(node *sitter.Node) ast.MatchPattern {
	if node == nil {
		return nil
	}
	if node.Kind() != "case_pattern" {
		return ctx.parsePattern(node, node)
	}
	inner := firstNamedChild(node)
	if inner == nil {
		return annotate(ast.NewMatchAs(nil, ""), node)
	}
	if hasToken(node, "-") && (inner.Kind() == "integer" || inner.Kind() == "float") {
		value := annotate(ast.NewUnaryOperation(ast.UnaryUSub, ctx.parseNumber(inner)), node)
		return annotate(ast.NewMatchValue(value), node)
	}
	return ctx.parsePattern(inner, node)
}

// parsePattern lowers one simple or compound pattern. spanNode is the node
// whose range the resulting pattern takes.
func (ctx *parseContext) parsePattern(node, spanNode *sitter.Node) ast.MatchPattern {
	switch node.Kind() {
	case "case_pattern":
		return ctx.parseCasePattern(node)
	case "as_pattern":
		children := namedChildren(node)
		if len(children) < 2 {
			ctx.invalid(node, "malformed as-pattern")
			return nil
		}
		name := ctx.identifierName(children[len(children)-1])
		return annotate(ast.NewMatchAs(ctx.parseCasePattern(children[0]), name), spanNode)
	case "union_pattern":
		alternatives := make([]ast.MatchPattern, 0)
		for _, child := range namedChildren(node) {
			if p := ctx.parsePattern(child, child); p != nil {
				alternatives = append(alternatives, p)
			}
		}
		return annotate(ast.NewMatchOr(alternatives), spanNode)
	case "list_pattern":
		return annotate(ast.NewMatchSequence(ctx.parseSubPatterns(node)), spanNode)
	case "tuple_pattern":
		elements := ctx.parseSubPatterns(node)
		// `(p)` groups a single pattern; `(p,)` is a one-element sequence.
		if len(elements) == 1 && !hasToken(node, ",") {
			return elements[0]
		}
		return annotate(ast.NewMatchSequence(elements), spanNode)
	case "dict_pattern":
		return ctx.parseMappingPattern(node, spanNode)
	case "class_pattern":
		return ctx.parseClassPattern(node, spanNode)
	case "splat_pattern":
		var value ast.Expression
		if id := firstNamedChild(node); id != nil && ctx.identifierName(id) != "_" {
			value = annotate(ast.NewName(ctx.identifierName(id)), id)
		}
		return annotate(ast.NewMatchStar(value), spanNode)
	case "dotted_name":
		parts := namedChildren(node)
		if len(parts) == 1 {
			name := ctx.identifierName(parts[0])
			if name == "_" {
				return annotate(ast.NewMatchAs(nil, ""), spanNode)
			}
			return annotate(ast.NewMatchAs(nil, name), spanNode)
		}
		return annotate(ast.NewMatchValue(ctx.dottedExpression(node)), spanNode)
	case "true":
		return annotate(ast.NewMatchSingleton(annotate(ast.NewConstant(ast.BoolValue(true)), node)), spanNode)
	case "false":
		return annotate(ast.NewMatchSingleton(annotate(ast.NewConstant(ast.BoolValue(false)), node)), spanNode)
	case "none":
		return annotate(ast.NewMatchSingleton(annotate(ast.NewConstant(ast.NoneValue{}), node)), spanNode)
	case "complex_pattern":
		return annotate(ast.NewMatchValue(ctx.parseComplexPattern(node)), spanNode)
	case "string", "concatenated_string", "integer", "float":
		return annotate(ast.NewMatchValue(ctx.parseExpression(node)), spanNode)
	default:
		ctx.invalid(node, "unexpected pattern "+node.Kind())
		return nil
	}
}

func (ctx *parseContext) parseSubPatterns(node *sitter.Node) []ast.MatchPattern {
	out := make([]ast.MatchPattern, 0)
	for _, child := range namedChildren(node) {
		if p := ctx.parseCasePattern(child); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (ctx *parseContext) parseMappingPattern(node, spanNode *sitter.Node) ast.MatchPattern {
	keys := make([]ast.Expression, 0)
	patterns := make([]ast.MatchPattern, 0)
	rest := ""
	var pendingKey ast.Expression
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || !child.IsNamed() || isIgnorableNode(child) {
			continue
		}
		switch node.FieldNameForChild(uint32(i)) {
		case "key":
			pendingKey = ctx.patternKey(child)
			continue
		case "value":
			keys = append(keys, pendingKey)
			patterns = append(patterns, ctx.parseCasePattern(child))
			pendingKey = nil
			continue
		}
		if child.Kind() == "splat_pattern" {
			if id := firstNamedChild(child); id != nil {
				rest = ctx.identifierName(id)
			}
		}
	}
	return annotate(ast.NewMatchMapping(keys, patterns, rest), spanNode)
}

// patternKey lowers a mapping key, which must be a literal or a dotted value.
func (ctx *parseContext) patternKey(node *sitter.Node) ast.Expression {
	switch node.Kind() {
	case "dotted_name":
		return ctx.dottedExpression(node)
	case "complex_pattern":
		return ctx.parseComplexPattern(node)
	case "case_pattern":
		if p, ok := ctx.parseCasePattern(node).(*ast.MatchValue); ok {
			return p.Value
		}
		ctx.invalid(node, "mapping pattern keys must be literals or dotted names")
		return nil
	default:
		return ctx.parseExpression(node)
	}
}

func (ctx *parseContext) parseClassPattern(node, spanNode *sitter.Node) ast.MatchPattern {
	var cls ast.Expression
	patterns := make([]ast.MatchPattern, 0)
	kwdAttrs := make([]string, 0)
	kwdPatterns := make([]ast.MatchPattern, 0)
	for _, child := range namedChildren(node) {
		if child.Kind() == "dotted_name" && cls == nil {
			cls = ctx.dottedExpression(child)
			continue
		}
		target := child
		if child.Kind() == "case_pattern" {
			if inner := firstNamedChild(child); inner != nil && inner.Kind() == "keyword_pattern" {
				target = inner
			}
		}
		if target.Kind() == "keyword_pattern" {
			parts := namedChildren(target)
			if len(parts) == 0 {
				ctx.invalid(target, "malformed keyword pattern")
				continue
			}
			kwdAttrs = append(kwdAttrs, ctx.identifierName(parts[0]))
			var value ast.MatchPattern
			if len(parts) > 1 {
				value = ctx.parsePattern(parts[1], parts[1])
			} else {
				value = annotate(ast.NewMatchAs(nil, ""), target)
			}
			kwdPatterns = append(kwdPatterns, value)
			continue
		}
		if len(kwdAttrs) > 0 {
			ctx.invalid(child, "positional patterns follow keyword patterns")
		}
		if p := ctx.parseCasePattern(child); p != nil {
			patterns = append(patterns, p)
		}
	}
	return annotate(ast.NewMatchClass(cls, patterns, kwdAttrs, kwdPatterns), spanNode)
}

// dottedExpression turns `a.b.c` into nested Attribute nodes.
func (ctx *parseContext) dottedExpression(node *sitter.Node) ast.Expression {
	parts := namedChildren(node)
	if len(parts) == 0 {
		return annotate(ast.NewName(ctx.identifierName(node)), node)
	}
	var expr ast.Expression = annotate(ast.NewName(ctx.identifierName(parts[0])), parts[0])
	for _, part := range parts[1:] {
		expr = annotateRange(ast.NewAttribute(expr, ctx.identifierName(part)), parts[0], part)
	}
	return expr
}

// parseComplexPattern lowers `[-]real (+|-) imag` literals into a BinOp.
func (ctx *parseContext) parseComplexPattern(node *sitter.Node) ast.Expression {
	numbers := namedChildren(node)
	if len(numbers) != 2 {
		ctx.invalid(node, "malformed complex literal pattern")
		return nil
	}
	var realPart ast.Expression = ctx.parseNumber(numbers[0])
	op := ast.BinAdd
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.IsNamed() {
			continue
		}
		if child.StartByte() < numbers[0].StartByte() && child.Kind() == "-" {
			realPart = annotateRange(ast.NewUnaryOperation(ast.UnaryUSub, realPart), child, numbers[0])
		}
		if child.StartByte() >= numbers[0].EndByte() && child.Kind() == "-" {
			op = ast.BinSub
		}
	}
	return annotate(ast.NewBinOp(op, realPart, ctx.parseNumber(numbers[1])), node)
}
