package ast

// Names and containers

type Name struct {
	nodeImpl
	expressionMarker

	ID string `json:"id"`
}

func NewName(id string) *Name {
	return &Name{nodeImpl: newNodeImpl(NodeName), ID: id}
}

type List struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewList(elements []Expression) *List {
	return &List{nodeImpl: newNodeImpl(NodeList), Elements: elements}
}

type Tuple struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewTuple(elements []Expression) *Tuple {
	return &Tuple{nodeImpl: newNodeImpl(NodeTuple), Elements: elements}
}

// Dict pairs Keys[i] with Values[i]. A nil key marks a `**mapping` unpacking entry.
type Dict struct {
	nodeImpl
	expressionMarker

	Keys   []Expression `json:"keys"`
	Values []Expression `json:"values"`
}

func NewDict(keys, values []Expression) *Dict {
	return &Dict{nodeImpl: newNodeImpl(NodeDict), Keys: keys, Values: values}
}

type Set struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewSet(elements []Expression) *Set {
	return &Set{nodeImpl: newNodeImpl(NodeSet), Elements: elements}
}

// Operators

type BooleanOperator string

const (
	BoolAnd BooleanOperator = "and"
	BoolOr  BooleanOperator = "or"
)

type BoolOperation struct {
	nodeImpl
	expressionMarker

	Op     BooleanOperator `json:"op"`
	Values []Expression    `json:"values"`
}

func NewBoolOperation(op BooleanOperator, values []Expression) *BoolOperation {
	return &BoolOperation{nodeImpl: newNodeImpl(NodeBoolOp), Op: op, Values: values}
}

type UnaryOperator string

const (
	UnaryNot    UnaryOperator = "not"
	UnaryInvert UnaryOperator = "~"
	UnaryUAdd   UnaryOperator = "+"
	UnaryUSub   UnaryOperator = "-"
)

type UnaryOperation struct {
	nodeImpl
	expressionMarker

	Op      UnaryOperator `json:"op"`
	Operand Expression    `json:"operand"`
}

func NewUnaryOperation(op UnaryOperator, operand Expression) *UnaryOperation {
	return &UnaryOperation{nodeImpl: newNodeImpl(NodeUnaryOp), Op: op, Operand: operand}
}

type BinaryOperator string

const (
	BinAdd      BinaryOperator = "+"
	BinSub      BinaryOperator = "-"
	BinMult     BinaryOperator = "*"
	BinMatMult  BinaryOperator = "@"
	BinDiv      BinaryOperator = "/"
	BinMod      BinaryOperator = "%"
	BinPow      BinaryOperator = "**"
	BinLShift   BinaryOperator = "<<"
	BinRShift   BinaryOperator = ">>"
	BinBitOr    BinaryOperator = "|"
	BinBitXor   BinaryOperator = "^"
	BinBitAnd   BinaryOperator = "&"
	BinFloorDiv BinaryOperator = "//"
)

type BinOp struct {
	nodeImpl
	expressionMarker

	Op    BinaryOperator `json:"op"`
	Left  Expression     `json:"left"`
	Right Expression     `json:"right"`
}

func NewBinOp(op BinaryOperator, left, right Expression) *BinOp {
	return &BinOp{nodeImpl: newNodeImpl(NodeBinOp), Op: op, Left: left, Right: right}
}

type ComparisonOperator string

const (
	CmpEq    ComparisonOperator = "=="
	CmpNotEq ComparisonOperator = "!="
	CmpLt    ComparisonOperator = "<"
	CmpLtE   ComparisonOperator = "<="
	CmpGt    ComparisonOperator = ">"
	CmpGtE   ComparisonOperator = ">="
	CmpIs    ComparisonOperator = "is"
	CmpIsNot ComparisonOperator = "is not"
	CmpIn    ComparisonOperator = "in"
	CmpNotIn ComparisonOperator = "not in"
)

// Compare is a chained comparison: Left Ops[0] Comparators[0] Ops[1] Comparators[1] ...
type Compare struct {
	nodeImpl
	expressionMarker

	Left        Expression           `json:"left"`
	Ops         []ComparisonOperator `json:"ops"`
	Comparators []Expression         `json:"comparators"`
}

func NewCompare(left Expression, ops []ComparisonOperator, comparators []Expression) *Compare {
	return &Compare{nodeImpl: newNodeImpl(NodeCompare), Left: left, Ops: ops, Comparators: comparators}
}

// NamedExpression is the walrus form `target := value`.
type NamedExpression struct {
	nodeImpl
	expressionMarker

	Target Expression `json:"target"`
	Value  Expression `json:"value"`
}

func NewNamedExpression(target, value Expression) *NamedExpression {
	return &NamedExpression{nodeImpl: newNodeImpl(NodeNamedExpr), Target: target, Value: value}
}

// Generators and comprehensions

type Yield struct {
	nodeImpl
	expressionMarker

	Value Expression `json:"value,omitempty"`
}

func NewYield(value Expression) *Yield {
	return &Yield{nodeImpl: newNodeImpl(NodeYield), Value: value}
}

type YieldFrom struct {
	nodeImpl
	expressionMarker

	Value Expression `json:"value"`
}

func NewYieldFrom(value Expression) *YieldFrom {
	return &YieldFrom{nodeImpl: newNodeImpl(NodeYieldFrom), Value: value}
}

type Starred struct {
	nodeImpl
	expressionMarker

	Value Expression `json:"value"`
}

func NewStarred(value Expression) *Starred {
	return &Starred{nodeImpl: newNodeImpl(NodeStarred), Value: value}
}

// Comprehension is one `[async] for target in iter [if cond]*` clause.
type Comprehension struct {
	nodeImpl

	Target  Expression   `json:"target"`
	Iter    Expression   `json:"iter"`
	Ifs     []Expression `json:"ifs"`
	IsAsync bool         `json:"isAsync"`
}

func NewComprehension(target, iter Expression, ifs []Expression, isAsync bool) *Comprehension {
	return &Comprehension{nodeImpl: newNodeImpl(NodeComprehension), Target: target, Iter: iter, Ifs: ifs, IsAsync: isAsync}
}

type Generator struct {
	nodeImpl
	expressionMarker

	Element    Expression       `json:"element"`
	Generators []*Comprehension `json:"generators"`
}

func NewGenerator(element Expression, generators []*Comprehension) *Generator {
	return &Generator{nodeImpl: newNodeImpl(NodeGenerator), Element: element, Generators: generators}
}

type ListComp struct {
	nodeImpl
	expressionMarker

	Element    Expression       `json:"element"`
	Generators []*Comprehension `json:"generators"`
}

func NewListComp(element Expression, generators []*Comprehension) *ListComp {
	return &ListComp{nodeImpl: newNodeImpl(NodeListComp), Element: element, Generators: generators}
}

type SetComp struct {
	nodeImpl
	expressionMarker

	Element    Expression       `json:"element"`
	Generators []*Comprehension `json:"generators"`
}

func NewSetComp(element Expression, generators []*Comprehension) *SetComp {
	return &SetComp{nodeImpl: newNodeImpl(NodeSetComp), Element: element, Generators: generators}
}

type DictComp struct {
	nodeImpl
	expressionMarker

	Key        Expression       `json:"key"`
	Value      Expression       `json:"value"`
	Generators []*Comprehension `json:"generators"`
}

func NewDictComp(key, value Expression, generators []*Comprehension) *DictComp {
	return &DictComp{nodeImpl: newNodeImpl(NodeDictComp), Key: key, Value: value, Generators: generators}
}

// Access and calls

type Attribute struct {
	nodeImpl
	expressionMarker

	Value Expression `json:"value"`
	Attr  string     `json:"attr"`
}

func NewAttribute(value Expression, attr string) *Attribute {
	return &Attribute{nodeImpl: newNodeImpl(NodeAttribute), Value: value, Attr: attr}
}

type Subscript struct {
	nodeImpl
	expressionMarker

	Value Expression `json:"value"`
	Slice Expression `json:"slice"`
}

func NewSubscript(value, slice Expression) *Subscript {
	return &Subscript{nodeImpl: newNodeImpl(NodeSubscript), Value: value, Slice: slice}
}

type Slice struct {
	nodeImpl
	expressionMarker

	Lower Expression `json:"lower,omitempty"`
	Upper Expression `json:"upper,omitempty"`
	Step  Expression `json:"step,omitempty"`
}

func NewSlice(lower, upper, step Expression) *Slice {
	return &Slice{nodeImpl: newNodeImpl(NodeSlice), Lower: lower, Upper: upper, Step: step}
}

// Keyword is a `name=value` call argument. Arg is empty for a `**mapping` argument.
type Keyword struct {
	nodeImpl

	Arg   string     `json:"arg,omitempty"`
	Value Expression `json:"value"`
}

func NewKeyword(arg string, value Expression) *Keyword {
	return &Keyword{nodeImpl: newNodeImpl(NodeKeyword), Arg: arg, Value: value}
}

type Call struct {
	nodeImpl
	expressionMarker

	Func     Expression   `json:"func"`
	Args     []Expression `json:"args"`
	Keywords []*Keyword   `json:"keywords"`
	StarArgs Expression   `json:"starargs,omitempty"`
	KwArgs   Expression   `json:"kwargs,omitempty"`
}

func NewCall(fn Expression, args []Expression, keywords []*Keyword) *Call {
	if args == nil {
		args = make([]Expression, 0)
	}
	return &Call{nodeImpl: newNodeImpl(NodeCall), Func: fn, Args: args, Keywords: keywords}
}

type Await struct {
	nodeImpl
	expressionMarker

	Value Expression `json:"value"`
}

func NewAwait(value Expression) *Await {
	return &Await{nodeImpl: newNodeImpl(NodeAwait), Value: value}
}

type Lambda struct {
	nodeImpl
	expressionMarker

	Args *Arguments `json:"args"`
	Body Expression `json:"body"`
}

func NewLambda(args *Arguments, body Expression) *Lambda {
	if args == nil {
		args = NewArguments(nil, nil, nil, nil, nil, nil, nil)
	}
	return &Lambda{nodeImpl: newNodeImpl(NodeLambda), Args: args, Body: body}
}

// IfExp is the conditional expression `Body if Test else OrElse`.
type IfExp struct {
	nodeImpl
	expressionMarker

	Test   Expression `json:"test"`
	Body   Expression `json:"body"`
	OrElse Expression `json:"orelse"`
}

func NewIfExp(test, body, orElse Expression) *IfExp {
	return &IfExp{nodeImpl: newNodeImpl(NodeIfExp), Test: test, Body: body, OrElse: orElse}
}

// Formatted strings

// FormattedValue is one `{value!conversion:format_spec}` field of an f-string.
// Conversion is -1 when absent, otherwise the code point of 's', 'r' or 'a'.
type FormattedValue struct {
	nodeImpl
	expressionMarker

	Value      Expression `json:"value"`
	Conversion int32      `json:"conversion"`
	FormatSpec Expression `json:"formatSpec,omitempty"`
}

func NewFormattedValue(value Expression, conversion int32, formatSpec Expression) *FormattedValue {
	return &FormattedValue{nodeImpl: newNodeImpl(NodeFormattedValue), Value: value, Conversion: conversion, FormatSpec: formatSpec}
}

type JoinedStr struct {
	nodeImpl
	expressionMarker

	Values []Expression `json:"values"`
}

func NewJoinedStr(values []Expression) *JoinedStr {
	return &JoinedStr{nodeImpl: newNodeImpl(NodeJoinedStr), Values: values}
}
