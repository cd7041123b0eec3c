package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"enderpy/typechecker-go/pkg/ast"
)

// parseStatements lowers the statements of a module or block node. ERROR
// children were already reported by collectSyntaxErrors and are skipped.
func (ctx *parseContext) parseStatements(node *sitter.Node) []ast.Statement {
	statements := make([]ast.Statement, 0)
	for _, child := range namedChildren(node) {
		if child.IsError() || child.IsMissing() {
			continue
		}
		if stmt := ctx.parseStatement(child); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func (ctx *parseContext) parseStatement(node *sitter.Node) ast.Statement {
	switch node.Kind() {
	case "expression_statement":
		return ctx.parseExpressionStatement(node)
	case "import_statement":
		return ctx.parseImport(node)
	case "import_from_statement", "future_import_statement":
		return ctx.parseImportFrom(node)
	case "pass_statement":
		return annotate(ast.NewPass(), node)
	case "break_statement":
		return annotate(ast.NewBreak(), node)
	case "continue_statement":
		return annotate(ast.NewContinue(), node)
	case "return_statement":
		var value ast.Expression
		if child := firstNamedChild(node); child != nil {
			value = ctx.parseExpression(child)
		}
		return annotate(ast.NewReturn(value), node)
	case "delete_statement":
		return annotate(ast.NewDelete(ctx.parseTargetList(firstNamedChild(node))), node)
	case "raise_statement":
		return ctx.parseRaise(node)
	case "assert_statement":
		children := namedChildren(node)
		if len(children) == 0 {
			ctx.invalid(node, "assert without test")
			return nil
		}
		var msg ast.Expression
		if len(children) > 1 {
			msg = ctx.parseExpression(children[1])
		}
		return annotate(ast.NewAssert(ctx.parseExpression(children[0]), msg), node)
	case "global_statement":
		return annotate(ast.NewGlobal(ctx.identifierList(node)), node)
	case "nonlocal_statement":
		return annotate(ast.NewNonlocal(ctx.identifierList(node)), node)
	case "if_statement":
		return ctx.parseIf(node)
	case "while_statement":
		return ctx.parseWhile(node)
	case "for_statement":
		return ctx.parseFor(node)
	case "with_statement":
		return ctx.parseWith(node)
	case "try_statement":
		return ctx.parseTry(node)
	case "function_definition":
		return ctx.parseFunctionDef(node, nil, node)
	case "class_definition":
		return ctx.parseClassDef(node, nil, node)
	case "decorated_definition":
		return ctx.parseDecorated(node)
	case "match_statement":
		return ctx.parseMatch(node)
	default:
		// print/exec (Python 2) and `type X = ...` have no AST form here.
		ctx.unknownStatement(node)
		return nil
	}
}

func (ctx *parseContext) parseBlock(node *sitter.Node) []ast.Statement {
	if node == nil {
		return make([]ast.Statement, 0)
	}
	return ctx.parseStatements(node)
}

func (ctx *parseContext) parseExpressionStatement(node *sitter.Node) ast.Statement {
	children := namedChildren(node)
	if len(children) == 0 {
		ctx.invalid(node, "empty expression statement")
		return nil
	}
	if len(children) == 1 {
		child := children[0]
		switch child.Kind() {
		case "assignment":
			return ctx.parseAssignment(child, node)
		case "augmented_assignment":
			return ctx.parseAugmentedAssignment(child, node)
		}
		return annotate(ast.NewExpressionStatement(ctx.parseExpression(child)), node)
	}
	// `a, b` as a statement is an implicit tuple.
	tuple := annotateRange(ast.NewTuple(ctx.parseExpressions(children)), children[0], children[len(children)-1])
	return annotate(ast.NewExpressionStatement(tuple), node)
}

// parseAssignment flattens `a = b = value` chains into one Assign with
// several targets and lowers `x: T [= v]` into AnnAssign.
func (ctx *parseContext) parseAssignment(node, stmtNode *sitter.Node) ast.Statement {
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if typ := node.ChildByFieldName("type"); typ != nil {
		var value ast.Expression
		if right != nil {
			value = ctx.parseRightHandSide(right)
		}
		simple := left != nil && left.Kind() == "identifier"
		return annotate(ast.NewAnnAssign(ctx.parseTarget(left), ctx.parseType(typ), value, simple), stmtNode)
	}

	targets := []ast.Expression{ctx.parseTarget(left)}
	for right != nil && right.Kind() == "assignment" {
		if right.ChildByFieldName("type") != nil {
			ctx.invalid(right, "annotation inside chained assignment")
			break
		}
		targets = append(targets, ctx.parseTarget(right.ChildByFieldName("left")))
		right = right.ChildByFieldName("right")
	}
	if right == nil {
		ctx.invalid(node, "assignment without value")
		return nil
	}
	if right.Kind() == "augmented_assignment" {
		ctx.invalid(right, "augmented assignment inside assignment")
		return nil
	}
	return annotate(ast.NewAssign(targets, ctx.parseRightHandSide(right)), stmtNode)
}

func (ctx *parseContext) parseAugmentedAssignment(node, stmtNode *sitter.Node) ast.Statement {
	opNode := node.ChildByFieldName("operator")
	op, ok := augAssignOps[ctx.text(opNode)]
	if !ok {
		ctx.invalid(node, "unknown augmented operator "+ctx.text(opNode))
		return nil
	}
	target := ctx.parseTarget(node.ChildByFieldName("left"))
	value := ctx.parseRightHandSide(node.ChildByFieldName("right"))
	return annotate(ast.NewAugAssign(target, op, value), stmtNode)
}

var augAssignOps = map[string]ast.AugAssignOp{
	"+=":  ast.AugAdd,
	"-=":  ast.AugSub,
	"*=":  ast.AugMult,
	"@=":  ast.AugMatMult,
	"/=":  ast.AugDiv,
	"%=":  ast.AugMod,
	"**=": ast.AugPow,
	"<<=": ast.AugLShift,
	">>=": ast.AugRShift,
	"|=":  ast.AugBitOr,
	"^=":  ast.AugBitXor,
	"&=":  ast.AugBitAnd,
	"//=": ast.AugFloorDiv,
}

func (ctx *parseContext) parseRightHandSide(node *sitter.Node) ast.Expression {
	if node == nil {
		return nil
	}
	return ctx.parseExpression(node)
}

func (ctx *parseContext) parseRaise(node *sitter.Node) ast.Statement {
	var exc, cause ast.Expression
	causeNode := node.ChildByFieldName("cause")
	for _, child := range namedChildren(node) {
		if causeNode != nil && child.StartByte() == causeNode.StartByte() && child.EndByte() == causeNode.EndByte() {
			continue
		}
		if exc == nil {
			exc = ctx.parseExpression(child)
		}
	}
	if causeNode != nil {
		cause = ctx.parseExpression(causeNode)
	}
	return annotate(ast.NewRaise(exc, cause), node)
}

func (ctx *parseContext) identifierList(node *sitter.Node) []string {
	names := make([]string, 0)
	for _, child := range namedChildren(node) {
		names = append(names, ctx.identifierName(child))
	}
	return names
}

// Imports

func (ctx *parseContext) parseImport(node *sitter.Node) ast.Statement {
	return annotate(ast.NewImport(ctx.parseAliases(childrenByField(node, "name"))), node)
}

func (ctx *parseContext) parseImportFrom(node *sitter.Node) ast.Statement {
	module := "__future__"
	var level uint
	if moduleNode := node.ChildByFieldName("module_name"); moduleNode != nil {
		module, level = ctx.parseModuleName(moduleNode)
	}
	var names []*ast.Alias
	for _, child := range namedChildren(node) {
		if child.Kind() == "wildcard_import" {
			names = append(names, annotate(ast.NewAlias("*", ""), child))
		}
	}
	names = append(names, ctx.parseAliases(childrenByField(node, "name"))...)
	return annotate(ast.NewImportFrom(module, names, level), node)
}

func (ctx *parseContext) parseModuleName(node *sitter.Node) (string, uint) {
	if node.Kind() != "relative_import" {
		return ctx.dottedName(node), 0
	}
	var (
		module string
		level  uint
	)
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "import_prefix":
			level = uint(strings.Count(ctx.text(child), "."))
		case "dotted_name":
			module = ctx.dottedName(child)
		}
	}
	return module, level
}

func (ctx *parseContext) parseAliases(nodes []*sitter.Node) []*ast.Alias {
	aliases := make([]*ast.Alias, 0, len(nodes))
	for _, node := range nodes {
		if node.Kind() == "aliased_import" {
			name := ctx.dottedName(node.ChildByFieldName("name"))
			asName := ctx.identifierName(node.ChildByFieldName("alias"))
			aliases = append(aliases, annotate(ast.NewAlias(name, asName), node))
			continue
		}
		aliases = append(aliases, annotate(ast.NewAlias(ctx.dottedName(node), ""), node))
	}
	return aliases
}

// Compound statements

func (ctx *parseContext) parseIf(node *sitter.Node) ast.Statement {
	test := ctx.parseExpression(node.ChildByFieldName("condition"))
	body := ctx.parseBlock(node.ChildByFieldName("consequence"))

	alternatives := childrenByField(node, "alternative")
	orElse := make([]ast.Statement, 0)
	var chainEnd uint
	if len(alternatives) > 0 {
		chainEnd = alternatives[len(alternatives)-1].EndByte()
	}
	// Build the elif chain from the innermost branch outwards.
	for i := len(alternatives) - 1; i >= 0; i-- {
		alt := alternatives[i]
		switch alt.Kind() {
		case "else_clause":
			orElse = ctx.parseBlock(alt.ChildByFieldName("body"))
		case "elif_clause":
			elif := ast.NewIf(
				ctx.parseExpression(alt.ChildByFieldName("condition")),
				ctx.parseBlock(alt.ChildByFieldName("consequence")),
				orElse,
			)
			ast.SetSpan(elif, ast.NewSpan(alt.StartByte(), chainEnd))
			orElse = []ast.Statement{elif}
		}
	}
	return annotate(ast.NewIf(test, body, orElse), node)
}

func (ctx *parseContext) parseElseBlock(node *sitter.Node) []ast.Statement {
	alt := node.ChildByFieldName("alternative")
	if alt == nil {
		return make([]ast.Statement, 0)
	}
	return ctx.parseBlock(alt.ChildByFieldName("body"))
}

func (ctx *parseContext) parseWhile(node *sitter.Node) ast.Statement {
	test := ctx.parseExpression(node.ChildByFieldName("condition"))
	body := ctx.parseBlock(node.ChildByFieldName("body"))
	return annotate(ast.NewWhile(test, body, ctx.parseElseBlock(node)), node)
}

func (ctx *parseContext) parseFor(node *sitter.Node) ast.Statement {
	target := ctx.parseTarget(node.ChildByFieldName("left"))
	iter := ctx.parseExpression(node.ChildByFieldName("right"))
	body := ctx.parseBlock(node.ChildByFieldName("body"))
	return annotate(ast.NewFor(target, iter, body, ctx.parseElseBlock(node), hasToken(node, "async")), node)
}

func (ctx *parseContext) parseWith(node *sitter.Node) ast.Statement {
	items := make([]*ast.WithItem, 0)
	for _, child := range namedChildren(node) {
		if child.Kind() != "with_clause" {
			continue
		}
		for _, itemNode := range namedChildren(child) {
			if itemNode.Kind() != "with_item" {
				continue
			}
			items = append(items, ctx.parseWithItem(itemNode))
		}
	}
	body := ctx.parseBlock(node.ChildByFieldName("body"))
	return annotate(ast.NewWith(items, body, hasToken(node, "async")), node)
}

func (ctx *parseContext) parseWithItem(node *sitter.Node) *ast.WithItem {
	value := node.ChildByFieldName("value")
	if value == nil {
		value = firstNamedChild(node)
	}
	if value != nil && value.Kind() == "as_pattern" {
		expr, target := ctx.splitAsPattern(value)
		return annotate(ast.NewWithItem(expr, target), node)
	}
	return annotate(ast.NewWithItem(ctx.parseExpression(value), nil), node)
}

// splitAsPattern lowers `expr as target` into its two halves.
func (ctx *parseContext) splitAsPattern(node *sitter.Node) (ast.Expression, ast.Expression) {
	children := namedChildren(node)
	if len(children) == 0 {
		ctx.invalid(node, "empty as-pattern")
		return nil, nil
	}
	expr := ctx.parseExpression(children[0])
	aliasNode := node.ChildByFieldName("alias")
	if aliasNode == nil && len(children) > 1 {
		aliasNode = children[len(children)-1]
	}
	if aliasNode == nil {
		return expr, nil
	}
	if aliasNode.Kind() == "as_pattern_target" {
		if inner := firstNamedChild(aliasNode); inner != nil {
			return expr, ctx.parseTarget(inner)
		}
		return expr, annotate(ast.NewName(ctx.identifierName(aliasNode)), aliasNode)
	}
	return expr, ctx.parseTarget(aliasNode)
}

func (ctx *parseContext) parseTry(node *sitter.Node) ast.Statement {
	body := ctx.parseBlock(node.ChildByFieldName("body"))
	handlers := make([]*ast.ExceptHandler, 0)
	orElse := make([]ast.Statement, 0)
	finalBody := make([]ast.Statement, 0)
	star := false
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "except_clause":
			handlers = append(handlers, ctx.parseExceptHandler(child))
		case "except_group_clause":
			star = true
			handlers = append(handlers, ctx.parseExceptHandler(child))
		case "else_clause":
			orElse = ctx.parseBlock(child.ChildByFieldName("body"))
		case "finally_clause":
			finalBody = ctx.parseBlock(lastBlock(child))
		}
	}
	if star {
		return annotate(ast.NewTryStar(body, handlers, orElse, finalBody), node)
	}
	return annotate(ast.NewTry(body, handlers, orElse, finalBody), node)
}

func lastBlock(node *sitter.Node) *sitter.Node {
	children := namedChildren(node)
	for i := len(children) - 1; i >= 0; i-- {
		if children[i].Kind() == "block" {
			return children[i]
		}
	}
	return nil
}

func (ctx *parseContext) parseExceptHandler(node *sitter.Node) *ast.ExceptHandler {
	var (
		typ  ast.Expression
		name string
	)
	exprs := make([]*sitter.Node, 0, 2)
	for _, child := range namedChildren(node) {
		if child.Kind() != "block" {
			exprs = append(exprs, child)
		}
	}
	switch {
	case len(exprs) == 1 && exprs[0].Kind() == "as_pattern":
		var target ast.Expression
		typ, target = ctx.splitAsPattern(exprs[0])
		if n, ok := target.(*ast.Name); ok {
			name = n.ID
		} else if target != nil {
			ctx.invalid(exprs[0], "except target must be a name")
		}
	case len(exprs) >= 1:
		typ = ctx.parseExpression(exprs[0])
		if len(exprs) > 1 {
			name = ctx.identifierName(exprs[1])
		}
	}
	return annotate(ast.NewExceptHandler(typ, name, ctx.parseBlock(lastBlock(node))), node)
}

// Definitions

func (ctx *parseContext) parseDecorated(node *sitter.Node) ast.Statement {
	decorators := make([]ast.Expression, 0)
	for _, child := range namedChildren(node) {
		if child.Kind() == "decorator" {
			decorators = append(decorators, ctx.parseExpression(firstNamedChild(child)))
		}
	}
	def := node.ChildByFieldName("definition")
	if def == nil {
		ctx.invalid(node, "decorator without definition")
		return nil
	}
	switch def.Kind() {
	case "function_definition":
		return ctx.parseFunctionDef(def, decorators, node)
	case "class_definition":
		return ctx.parseClassDef(def, decorators, node)
	default:
		ctx.unknownStatement(def)
		return nil
	}
}

// parseFunctionDef lowers a def. spanNode is the decorated_definition when
// decorators are present, so the statement span covers them.
func (ctx *parseContext) parseFunctionDef(node *sitter.Node, decorators []ast.Expression, spanNode *sitter.Node) ast.Statement {
	if decorators == nil {
		decorators = make([]ast.Expression, 0)
	}
	name := ctx.identifierName(node.ChildByFieldName("name"))
	args := ctx.parseParameters(node.ChildByFieldName("parameters"))
	var returns ast.Expression
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		returns = ctx.parseType(ret)
	}
	body := ctx.parseBlock(node.ChildByFieldName("body"))
	def := ast.NewFunctionDef(name, args, body, decorators, returns, hasToken(node, "async"))
	def.TypeComment = ctx.typeComment(node)
	return annotate(def, spanNode)
}

// typeComment picks up a `# type: (...) -> ...` comment written right after
// the signature colon.
func (ctx *parseContext) typeComment(node *sitter.Node) string {
	body := node.ChildByFieldName("body")
	if body == nil {
		return ""
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "comment" {
			continue
		}
		text := strings.TrimSpace(strings.TrimPrefix(ctx.text(child), "#"))
		if strings.HasPrefix(text, "type:") {
			return strings.TrimSpace(strings.TrimPrefix(text, "type:"))
		}
	}
	if first := body.Child(0); first != nil && first.Kind() == "comment" {
		text := strings.TrimSpace(strings.TrimPrefix(ctx.text(first), "#"))
		if strings.HasPrefix(text, "type:") {
			return strings.TrimSpace(strings.TrimPrefix(text, "type:"))
		}
	}
	return ""
}

func (ctx *parseContext) parseClassDef(node *sitter.Node, decorators []ast.Expression, spanNode *sitter.Node) ast.Statement {
	if decorators == nil {
		decorators = make([]ast.Expression, 0)
	}
	name := ctx.identifierName(node.ChildByFieldName("name"))
	bases := make([]ast.Expression, 0)
	keywords := make([]*ast.Keyword, 0)
	if superclasses := node.ChildByFieldName("superclasses"); superclasses != nil {
		call := ctx.parseArgumentList(superclasses)
		bases = append(bases, call.args...)
		keywords = append(keywords, call.keywords...)
	}
	body := ctx.parseBlock(node.ChildByFieldName("body"))
	return annotate(ast.NewClassDef(name, bases, keywords, body, decorators), spanNode)
}

// Match

func (ctx *parseContext) parseMatch(node *sitter.Node) ast.Statement {
	subjects := childrenByField(node, "subject")
	var subject ast.Expression
	switch {
	case len(subjects) == 1:
		subject = ctx.parseExpression(subjects[0])
	case len(subjects) > 1:
		subject = annotateRange(ast.NewTuple(ctx.parseExpressions(subjects)), subjects[0], subjects[len(subjects)-1])
	default:
		ctx.invalid(node, "match without subject")
	}

	cases := make([]*ast.MatchCase, 0)
	bodyNode := node.ChildByFieldName("body")
	for _, child := range namedChildren(bodyNode) {
		if child.Kind() == "case_clause" {
			cases = append(cases, ctx.parseCaseClause(child))
		}
	}
	return annotate(ast.NewMatch(subject, cases), node)
}

func (ctx *parseContext) parseCaseClause(node *sitter.Node) *ast.MatchCase {
	patterns := make([]*sitter.Node, 0)
	for _, child := range namedChildren(node) {
		if child.Kind() == "case_pattern" {
			patterns = append(patterns, child)
		}
	}
	var pattern ast.MatchPattern
	switch {
	case len(patterns) == 1 && !trailingCommaAfter(node, patterns[0]):
		pattern = ctx.parseCasePattern(patterns[0])
	case len(patterns) > 0:
		elements := make([]ast.MatchPattern, 0, len(patterns))
		for _, p := range patterns {
			elements = append(elements, ctx.parseCasePattern(p))
		}
		pattern = annotateRange(ast.NewMatchSequence(elements), patterns[0], patterns[len(patterns)-1])
	default:
		ctx.invalid(node, "case without pattern")
	}

	var guard ast.Expression
	if guardNode := node.ChildByFieldName("guard"); guardNode != nil {
		guard = ctx.parseExpression(firstNamedChild(guardNode))
	}
	body := ctx.parseBlock(node.ChildByFieldName("consequence"))
	return annotate(ast.NewMatchCase(pattern, guard, body), node)
}

func trailingCommaAfter(parent, child *sitter.Node) bool {
	for i := uint(0); i < parent.ChildCount(); i++ {
		c := parent.Child(i)
		if c == nil || c.StartByte() < child.EndByte() {
			continue
		}
		return !c.IsNamed() && c.Kind() == ","
	}
	return false
}
