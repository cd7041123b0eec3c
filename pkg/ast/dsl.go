package ast

// Name and literal helpers.

func ID(name string) *Name {
	return NewName(name)
}

func Str(value string) *Constant {
	return NewConstant(StrValue(value))
}

func Bytes(value string) *Constant {
	return NewConstant(BytesValue(value))
}

func Int(text string) *Constant {
	return NewConstant(IntValue(text))
}

func Flt(text string) *Constant {
	return NewConstant(FloatValue(text))
}

func Bool(value bool) *Constant {
	return NewConstant(BoolValue(value))
}

func None() *Constant {
	return NewConstant(NoneValue{})
}

func Lst(elements ...Expression) *List {
	return NewList(elements)
}

func Tup(elements ...Expression) *Tuple {
	return NewTuple(elements)
}

func Star(value Expression) *Starred {
	return NewStarred(value)
}

func Attr(value Expression, attr string) *Attribute {
	return NewAttribute(value, attr)
}

func Sub(value, slice Expression) *Subscript {
	return NewSubscript(value, slice)
}

func CallExpr(fn Expression, args ...Expression) *Call {
	return NewCall(fn, args, nil)
}

func Bin(left Expression, op BinaryOperator, right Expression) *BinOp {
	return NewBinOp(op, left, right)
}

func Walrus(name string, value Expression) *NamedExpression {
	return NewNamedExpression(ID(name), value)
}

func Gen(element, target, iter Expression) *Generator {
	return NewGenerator(element, []*Comprehension{NewComprehension(target, iter, nil, false)})
}

func ListCompr(element, target, iter Expression) *ListComp {
	return NewListComp(element, []*Comprehension{NewComprehension(target, iter, nil, false)})
}

// Statement helpers.

func Mod(body ...Statement) *Module {
	return NewModule(body)
}

func Block(stmts ...Statement) []Statement {
	return stmts
}

func AssignTo(name string, value Expression) *Assign {
	return NewAssign([]Expression{ID(name)}, value)
}

func AssignTargets(value Expression, targets ...Expression) *Assign {
	return NewAssign(targets, value)
}

func Expr(value Expression) *ExpressionStatement {
	return NewExpressionStatement(value)
}

func Ret(value Expression) *Return {
	return NewReturn(value)
}

func Params(names ...string) *Arguments {
	args := make([]*Arg, 0, len(names))
	for _, name := range names {
		args = append(args, NewArg(name, nil))
	}
	return NewArguments(nil, args, nil, nil, nil, nil, nil)
}

func Def(name string, args *Arguments, body ...Statement) *FunctionDef {
	return NewFunctionDef(name, args, body, nil, nil, false)
}

func Class(name string, bases []Expression, body ...Statement) *ClassDef {
	return NewClassDef(name, bases, nil, body, nil)
}

func IfStmt(test Expression, body []Statement, orElse ...Statement) *If {
	return NewIf(test, body, orElse)
}

func WhileStmt(test Expression, body ...Statement) *While {
	return NewWhile(test, body, nil)
}

func ForStmt(target, iter Expression, body ...Statement) *For {
	return NewFor(target, iter, body, nil, false)
}

func WithStmt(ctx, vars Expression, body ...Statement) *With {
	return NewWith([]*WithItem{NewWithItem(ctx, vars)}, body, false)
}

func TryStmt(body []Statement, handlers []*ExceptHandler, orElse, finalBody []Statement) *Try {
	return NewTry(body, handlers, orElse, finalBody)
}

func Except(typ Expression, name string, body ...Statement) *ExceptHandler {
	return NewExceptHandler(typ, name, body)
}

func ImportNames(names ...string) *Import {
	aliases := make([]*Alias, 0, len(names))
	for _, name := range names {
		aliases = append(aliases, NewAlias(name, ""))
	}
	return NewImport(aliases)
}

func FromImport(module string, names ...string) *ImportFrom {
	aliases := make([]*Alias, 0, len(names))
	for _, name := range names {
		aliases = append(aliases, NewAlias(name, ""))
	}
	return NewImportFrom(module, aliases, 0)
}

func MatchStmt(subject Expression, cases ...*MatchCase) *Match {
	return NewMatch(subject, cases)
}

func Case(pattern MatchPattern, body ...Statement) *MatchCase {
	return NewMatchCase(pattern, nil, body)
}

func Capture(name string) *MatchAs {
	return NewMatchAs(nil, name)
}
