package semanal

import (
	"testing"

	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/symbols"
)

func TestClassifyExpression(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expression
		want symbols.TypeTag
	}{
		{"nil", nil, symbols.TagUnknown},
		{"int", ast.Int("0x10"), symbols.TagInt},
		{"float", ast.Flt("1.0"), symbols.TagFloat},
		{"complex", ast.NewConstant(ast.ComplexValue{Imaginary: "2j"}), symbols.TagComplex},
		{"str", ast.Str("a"), symbols.TagStr},
		{"bytes", ast.Bytes("a"), symbols.TagBytes},
		{"bool", ast.Bool(false), symbols.TagBool},
		{"none", ast.None(), symbols.TagNone},
		{"list", ast.Lst(), symbols.TagList},
		{"listcomp", ast.ListCompr(ast.ID("x"), ast.ID("x"), ast.ID("xs")), symbols.TagList},
		{"tuple", ast.Tup(), symbols.TagTuple},
		{"dict", ast.NewDict(nil, nil), symbols.TagDict},
		{"set", ast.NewSet(nil), symbols.TagSet},
		{"generator", ast.Gen(ast.ID("x"), ast.ID("x"), ast.ID("xs")), symbols.TagGenerator},
		{"name", ast.ID("y"), symbols.TagName},
		{"attribute", ast.Attr(ast.ID("os"), "sep"), symbols.TagAttribute},
		{"subscript", ast.Sub(ast.ID("xs"), ast.Int("0")), symbols.TagSubscript},
		{"call", ast.CallExpr(ast.ID("f")), symbols.TagCall},
		{"compare", ast.NewCompare(ast.ID("a"), []ast.ComparisonOperator{ast.CmpLt}, []ast.Expression{ast.ID("b")}), symbols.TagBool},
		{"not", ast.NewUnaryOperation(ast.UnaryNot, ast.ID("a")), symbols.TagBool},
		{"negate", ast.NewUnaryOperation(ast.UnaryUSub, ast.ID("a")), symbols.TagOperation},
		{"negative int", ast.NewUnaryOperation(ast.UnaryUSub, ast.Int("1")), symbols.TagInt},
		{"positive float", ast.NewUnaryOperation(ast.UnaryUAdd, ast.Flt("2.5")), symbols.TagFloat},
		{"negative complex", ast.NewUnaryOperation(ast.UnaryUSub, ast.NewConstant(ast.ComplexValue{Imaginary: "1j"})), symbols.TagComplex},
		{"inverted int", ast.NewUnaryOperation(ast.UnaryInvert, ast.Int("1")), symbols.TagOperation},
		{"negated bool", ast.NewUnaryOperation(ast.UnaryUSub, ast.Bool(true)), symbols.TagOperation},
		{"binop", ast.Bin(ast.Int("1"), ast.BinAdd, ast.Int("2")), symbols.TagOperation},
		{"walrus", ast.Walrus("n", ast.Str("s")), symbols.TagStr},
		{"await", ast.NewAwait(ast.ID("c")), symbols.TagAwait},
		{"yield", ast.NewYield(nil), symbols.TagYield},
		{"lambda", ast.NewLambda(nil, ast.None()), symbols.TagLambda},
		{"ifexp same", ast.NewIfExp(ast.ID("c"), ast.Int("1"), ast.Int("2")), symbols.TagInt},
		{"ifexp mixed", ast.NewIfExp(ast.ID("c"), ast.Int("1"), ast.Str("2")), symbols.TagConditional},
		{"fstring", ast.NewJoinedStr(nil), symbols.TagFString},
		{"starred", ast.Star(ast.ID("x")), symbols.TagUnknown},
	}
	for _, tc := range cases {
		if got := ClassifyExpression(tc.expr); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}
