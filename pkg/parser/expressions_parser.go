package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"enderpy/typechecker-go/pkg/ast"
)

func (ctx *parseContext) parseExpressions(nodes []*sitter.Node) []ast.Expression {
	out := make([]ast.Expression, 0, len(nodes))
	for _, node := range nodes {
		if expr := ctx.parseExpression(node); expr != nil {
			out = append(out, expr)
		}
	}
	return out
}

// parseExpression lowers an expression node. It returns nil for absent or
// erroneous input; ERROR subtrees were reported before lowering started.
func (ctx *parseContext) parseExpression(node *sitter.Node) ast.Expression {
	if node == nil || node.IsError() {
		return nil
	}
	if node.IsMissing() {
		return annotate(ast.NewName(""), node)
	}
	switch node.Kind() {
	case "identifier", "keyword_identifier":
		return annotate(ast.NewName(ctx.identifierName(node)), node)
	case "true":
		return annotate(ast.NewConstant(ast.BoolValue(true)), node)
	case "false":
		return annotate(ast.NewConstant(ast.BoolValue(false)), node)
	case "none":
		return annotate(ast.NewConstant(ast.NoneValue{}), node)
	case "ellipsis":
		return annotate(ast.NewName("Ellipsis"), node)
	case "integer", "float":
		return ctx.parseNumber(node)
	case "string":
		return ctx.parseString(node)
	case "concatenated_string":
		return ctx.parseConcatenatedString(node)
	case "list", "list_pattern":
		return annotate(ast.NewList(ctx.parseExpressions(namedChildren(node))), node)
	case "tuple_pattern":
		children := namedChildren(node)
		// `(a) = 1` parenthesizes a single target; `(a,) = 1` unpacks.
		if len(children) == 1 && !hasToken(node, ",") {
			return ctx.parseExpression(children[0])
		}
		return annotate(ast.NewTuple(ctx.parseExpressions(children)), node)
	case "tuple", "expression_list", "pattern_list":
		return annotate(ast.NewTuple(ctx.parseExpressions(namedChildren(node))), node)
	case "set":
		return annotate(ast.NewSet(ctx.parseExpressions(namedChildren(node))), node)
	case "dictionary":
		return ctx.parseDictionary(node)
	case "parenthesized_expression":
		inner := firstNamedChild(node)
		if inner == nil {
			ctx.invalid(node, "empty parentheses")
			return nil
		}
		return ctx.parseExpression(inner)
	case "list_comprehension", "set_comprehension", "generator_expression", "dictionary_comprehension":
		return ctx.parseComprehension(node)
	case "attribute":
		value := ctx.parseExpression(node.ChildByFieldName("object"))
		attr := ctx.identifierName(node.ChildByFieldName("attribute"))
		return annotate(ast.NewAttribute(value, attr), node)
	case "subscript":
		return ctx.parseSubscript(node)
	case "slice":
		return ctx.parseSlice(node)
	case "call":
		return ctx.parseCall(node)
	case "await":
		return annotate(ast.NewAwait(ctx.parseExpression(firstNamedChild(node))), node)
	case "lambda":
		args := ctx.parseParameters(node.ChildByFieldName("parameters"))
		return annotate(ast.NewLambda(args, ctx.parseExpression(node.ChildByFieldName("body"))), node)
	case "conditional_expression":
		children := namedChildren(node)
		if len(children) != 3 {
			ctx.invalid(node, "malformed conditional expression")
			return nil
		}
		body := ctx.parseExpression(children[0])
		test := ctx.parseExpression(children[1])
		orElse := ctx.parseExpression(children[2])
		return annotate(ast.NewIfExp(test, body, orElse), node)
	case "named_expression":
		target := ctx.parseExpression(node.ChildByFieldName("name"))
		return annotate(ast.NewNamedExpression(target, ctx.parseExpression(node.ChildByFieldName("value"))), node)
	case "not_operator":
		return annotate(ast.NewUnaryOperation(ast.UnaryNot, ctx.parseExpression(node.ChildByFieldName("argument"))), node)
	case "unary_operator":
		return ctx.parseUnary(node)
	case "boolean_operator":
		return ctx.parseBoolean(node)
	case "binary_operator":
		return ctx.parseBinary(node)
	case "comparison_operator":
		return ctx.parseComparison(node)
	case "yield":
		value := ctx.parseExpression(firstNamedChild(node))
		if hasToken(node, "from") {
			return annotate(ast.NewYieldFrom(value), node)
		}
		return annotate(ast.NewYield(value), node)
	case "list_splat", "list_splat_pattern":
		return annotate(ast.NewStarred(ctx.parseExpression(firstNamedChild(node))), node)
	case "type":
		return ctx.parseType(node)
	case "as_pattern":
		ctx.invalid(node, "`as` is not valid in this position")
		expr, _ := ctx.splitAsPattern(node)
		return expr
	default:
		ctx.invalid(node, "unexpected "+describeNode(node))
		return nil
	}
}

// parseTarget lowers the left-hand side of a binding statement.
func (ctx *parseContext) parseTarget(node *sitter.Node) ast.Expression {
	if node == nil {
		return nil
	}
	target := ctx.parseExpression(node)
	switch target.(type) {
	case nil, *ast.Name, *ast.Tuple, *ast.List, *ast.Starred, *ast.Attribute, *ast.Subscript:
	default:
		ctx.invalid(node, "cannot assign to "+string(target.NodeType()))
	}
	return target
}

// parseTargetList lowers `del a, b` style lists into their elements.
func (ctx *parseContext) parseTargetList(node *sitter.Node) []ast.Expression {
	if node == nil {
		return make([]ast.Expression, 0)
	}
	if node.Kind() == "expression_list" {
		return ctx.parseExpressions(namedChildren(node))
	}
	if expr := ctx.parseTarget(node); expr != nil {
		return []ast.Expression{expr}
	}
	return make([]ast.Expression, 0)
}

// parseType lowers an annotation; the `type` wrapper holds one expression.
func (ctx *parseContext) parseType(node *sitter.Node) ast.Expression {
	if node == nil {
		return nil
	}
	if node.Kind() != "type" {
		return ctx.parseExpression(node)
	}
	children := namedChildren(node)
	if len(children) == 1 {
		return ctx.parseExpression(children[0])
	}
	// Forms such as `*Ts` or generic `list[int]` spellings that the
	// grammar wraps without an inner expression.
	return annotate(ast.NewName(ctx.text(node)), node)
}

func (ctx *parseContext) parseDictionary(node *sitter.Node) ast.Expression {
	keys := make([]ast.Expression, 0)
	values := make([]ast.Expression, 0)
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "pair":
			keys = append(keys, ctx.parseExpression(child.ChildByFieldName("key")))
			values = append(values, ctx.parseExpression(child.ChildByFieldName("value")))
		case "dictionary_splat":
			keys = append(keys, nil)
			values = append(values, ctx.parseExpression(firstNamedChild(child)))
		default:
			ctx.invalid(child, "unexpected dictionary entry")
		}
	}
	return annotate(ast.NewDict(keys, values), node)
}

func (ctx *parseContext) parseComprehension(node *sitter.Node) ast.Expression {
	generators := make([]*ast.Comprehension, 0)
	var current *ast.Comprehension
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "for_in_clause":
			rights := childrenByField(child, "right")
			var iter ast.Expression
			if len(rights) == 1 {
				iter = ctx.parseExpression(rights[0])
			} else if len(rights) > 1 {
				iter = annotateRange(ast.NewTuple(ctx.parseExpressions(rights)), rights[0], rights[len(rights)-1])
			}
			current = ast.NewComprehension(ctx.parseTarget(child.ChildByFieldName("left")), iter, make([]ast.Expression, 0), hasToken(child, "async"))
			annotate(current, child)
			generators = append(generators, current)
		case "if_clause":
			if current == nil {
				ctx.invalid(child, "condition before comprehension clause")
				continue
			}
			current.Ifs = append(current.Ifs, ctx.parseExpression(firstNamedChild(child)))
			ast.SetSpan(current, current.Span().Cover(spanOf(child)))
		}
	}

	body := node.ChildByFieldName("body")
	switch node.Kind() {
	case "dictionary_comprehension":
		if body == nil || body.Kind() != "pair" {
			ctx.invalid(node, "dictionary comprehension without key/value")
			return nil
		}
		key := ctx.parseExpression(body.ChildByFieldName("key"))
		value := ctx.parseExpression(body.ChildByFieldName("value"))
		return annotate(ast.NewDictComp(key, value, generators), node)
	case "list_comprehension":
		return annotate(ast.NewListComp(ctx.parseExpression(body), generators), node)
	case "set_comprehension":
		return annotate(ast.NewSetComp(ctx.parseExpression(body), generators), node)
	default:
		return annotate(ast.NewGenerator(ctx.parseExpression(body), generators), node)
	}
}

func (ctx *parseContext) parseSubscript(node *sitter.Node) ast.Expression {
	value := ctx.parseExpression(node.ChildByFieldName("value"))
	indexes := childrenByField(node, "subscript")
	var slice ast.Expression
	switch len(indexes) {
	case 0:
		ctx.invalid(node, "empty subscript")
	case 1:
		slice = ctx.parseExpression(indexes[0])
	default:
		slice = annotateRange(ast.NewTuple(ctx.parseExpressions(indexes)), indexes[0], indexes[len(indexes)-1])
	}
	return annotate(ast.NewSubscript(value, slice), node)
}

// parseSlice assigns each operand to lower, upper or step by counting the
// colons that precede it.
func (ctx *parseContext) parseSlice(node *sitter.Node) ast.Expression {
	var parts [3]ast.Expression
	position := 0
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		if !child.IsNamed() {
			if child.Kind() == ":" {
				position++
			}
			continue
		}
		if position < len(parts) {
			parts[position] = ctx.parseExpression(child)
		}
	}
	return annotate(ast.NewSlice(parts[0], parts[1], parts[2]), node)
}

type callArguments struct {
	args     []ast.Expression
	keywords []*ast.Keyword
}

func (ctx *parseContext) parseCall(node *sitter.Node) ast.Expression {
	fn := ctx.parseExpression(node.ChildByFieldName("function"))
	argsNode := node.ChildByFieldName("arguments")
	if argsNode != nil && argsNode.Kind() == "generator_expression" {
		// f(x for x in y) passes a single generator argument.
		return annotate(ast.NewCall(fn, []ast.Expression{ctx.parseComprehension(argsNode)}, make([]*ast.Keyword, 0)), node)
	}
	call := ctx.parseArgumentList(argsNode)
	return annotate(ast.NewCall(fn, call.args, call.keywords), node)
}

// parseArgumentList splits call arguments into positionals (including
// `*iterable` as Starred) and keywords (including `**mapping` with an empty name).
func (ctx *parseContext) parseArgumentList(node *sitter.Node) callArguments {
	out := callArguments{args: make([]ast.Expression, 0), keywords: make([]*ast.Keyword, 0)}
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "keyword_argument":
			name := ctx.identifierName(child.ChildByFieldName("name"))
			value := ctx.parseExpression(child.ChildByFieldName("value"))
			out.keywords = append(out.keywords, annotate(ast.NewKeyword(name, value), child))
		case "dictionary_splat":
			value := ctx.parseExpression(firstNamedChild(child))
			out.keywords = append(out.keywords, annotate(ast.NewKeyword("", value), child))
		default:
			if expr := ctx.parseExpression(child); expr != nil {
				out.args = append(out.args, expr)
			}
		}
	}
	return out
}

func (ctx *parseContext) parseUnary(node *sitter.Node) ast.Expression {
	operand := ctx.parseExpression(node.ChildByFieldName("argument"))
	var op ast.UnaryOperator
	switch ctx.text(node.ChildByFieldName("operator")) {
	case "-":
		op = ast.UnaryUSub
	case "+":
		op = ast.UnaryUAdd
	case "~":
		op = ast.UnaryInvert
	default:
		ctx.invalid(node, "unknown unary operator")
		return operand
	}
	return annotate(ast.NewUnaryOperation(op, operand), node)
}

// parseBoolean flattens `a and b and c` into one BoolOperation.
func (ctx *parseContext) parseBoolean(node *sitter.Node) ast.Expression {
	op := ast.BooleanOperator(ctx.text(node.ChildByFieldName("operator")))
	if op != ast.BoolAnd && op != ast.BoolOr {
		ctx.invalid(node, "unknown boolean operator")
		return nil
	}
	left := ctx.parseExpression(node.ChildByFieldName("left"))
	right := ctx.parseExpression(node.ChildByFieldName("right"))
	values := make([]ast.Expression, 0, 2)
	if inner, ok := left.(*ast.BoolOperation); ok && inner.Op == op && node.ChildByFieldName("left").Kind() == "boolean_operator" {
		values = append(values, inner.Values...)
	} else {
		values = append(values, left)
	}
	values = append(values, right)
	return annotate(ast.NewBoolOperation(op, values), node)
}

var binaryOps = map[string]ast.BinaryOperator{
	"+":  ast.BinAdd,
	"-":  ast.BinSub,
	"*":  ast.BinMult,
	"@":  ast.BinMatMult,
	"/":  ast.BinDiv,
	"%":  ast.BinMod,
	"**": ast.BinPow,
	"<<": ast.BinLShift,
	">>": ast.BinRShift,
	"|":  ast.BinBitOr,
	"^":  ast.BinBitXor,
	"&":  ast.BinBitAnd,
	"//": ast.BinFloorDiv,
}

func (ctx *parseContext) parseBinary(node *sitter.Node) ast.Expression {
	opText := ctx.text(node.ChildByFieldName("operator"))
	op, ok := binaryOps[opText]
	if !ok {
		ctx.invalid(node, "unknown binary operator "+opText)
		return nil
	}
	left := ctx.parseExpression(node.ChildByFieldName("left"))
	right := ctx.parseExpression(node.ChildByFieldName("right"))
	return annotate(ast.NewBinOp(op, left, right), node)
}

var comparisonOps = map[string]ast.ComparisonOperator{
	"==":     ast.CmpEq,
	"!=":     ast.CmpNotEq,
	"<>":     ast.CmpNotEq,
	"<":      ast.CmpLt,
	"<=":     ast.CmpLtE,
	">":      ast.CmpGt,
	">=":     ast.CmpGtE,
	"is":     ast.CmpIs,
	"is not": ast.CmpIsNot,
	"in":     ast.CmpIn,
	"not in": ast.CmpNotIn,
}

func (ctx *parseContext) parseComparison(node *sitter.Node) ast.Expression {
	var (
		left        ast.Expression
		ops         = make([]ast.ComparisonOperator, 0)
		comparators = make([]ast.Expression, 0)
	)
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		if node.FieldNameForChild(uint32(i)) == "operators" || !child.IsNamed() {
			op, ok := comparisonOps[normalizeSpaces(ctx.text(child))]
			if !ok {
				ctx.invalid(child, "unknown comparison operator")
				continue
			}
			ops = append(ops, op)
			continue
		}
		if left == nil {
			left = ctx.parseExpression(child)
			continue
		}
		comparators = append(comparators, ctx.parseExpression(child))
	}
	if len(ops) != len(comparators) {
		ctx.invalid(node, "malformed comparison")
	}
	return annotate(ast.NewCompare(left, ops, comparators), node)
}

// normalizeSpaces collapses the whitespace inside `not   in` style operators.
func normalizeSpaces(text string) string {
	out := make([]byte, 0, len(text))
	space := false
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\n', '\r', '\\':
			space = true
		default:
			if space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = false
			out = append(out, text[i])
		}
	}
	return string(out)
}
