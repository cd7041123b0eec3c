package semanal

import (
	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/symbols"
)

// Classifier maps a bound value to its coarse tag. A nil expression means
// the binding has no value to inspect.
type Classifier func(ast.Expression) symbols.TypeTag

// ClassifyExpression is the default Classifier. It looks only at the shape
// of expr; names are never resolved.
func ClassifyExpression(expr ast.Expression) symbols.TypeTag {
	switch e := expr.(type) {
	case nil:
		return symbols.TagUnknown
	case *ast.Constant:
		return classifyConstant(e.Value)
	case *ast.List, *ast.ListComp:
		return symbols.TagList
	case *ast.Tuple:
		return symbols.TagTuple
	case *ast.Dict, *ast.DictComp:
		return symbols.TagDict
	case *ast.Set, *ast.SetComp:
		return symbols.TagSet
	case *ast.Generator:
		return symbols.TagGenerator
	case *ast.Name:
		return symbols.TagName
	case *ast.Attribute:
		return symbols.TagAttribute
	case *ast.Subscript:
		return symbols.TagSubscript
	case *ast.Call:
		return symbols.TagCall
	case *ast.Compare:
		return symbols.TagBool
	case *ast.UnaryOperation:
		if e.Op == ast.UnaryNot {
			return symbols.TagBool
		}
		if tag, ok := signedNumber(e); ok {
			return tag
		}
		return symbols.TagOperation
	case *ast.BinOp, *ast.BoolOperation:
		return symbols.TagOperation
	case *ast.NamedExpression:
		return ClassifyExpression(e.Value)
	case *ast.Yield, *ast.YieldFrom:
		return symbols.TagYield
	case *ast.Await:
		return symbols.TagAwait
	case *ast.Lambda:
		return symbols.TagLambda
	case *ast.IfExp:
		body, orElse := ClassifyExpression(e.Body), ClassifyExpression(e.OrElse)
		if body == orElse {
			return body
		}
		return symbols.TagConditional
	case *ast.JoinedStr:
		return symbols.TagFString
	case *ast.FormattedValue:
		return symbols.TagStr
	default:
		// Starred and Slice never stand alone as a bound value.
		return symbols.TagUnknown
	}
}

// signedNumber tags `-1` and `+2.5` like the literal they sign.
func signedNumber(e *ast.UnaryOperation) (symbols.TypeTag, bool) {
	if e.Op != ast.UnaryUSub && e.Op != ast.UnaryUAdd {
		return symbols.TagUnknown, false
	}
	c, ok := e.Operand.(*ast.Constant)
	if !ok {
		return symbols.TagUnknown, false
	}
	switch c.Value.(type) {
	case ast.IntValue, ast.FloatValue, ast.ComplexValue:
		return classifyConstant(c.Value), true
	}
	return symbols.TagUnknown, false
}

func classifyConstant(value ast.ConstantValue) symbols.TypeTag {
	switch value.(type) {
	case nil, ast.NoneValue:
		return symbols.TagNone
	case ast.BoolValue:
		return symbols.TagBool
	case ast.StrValue:
		return symbols.TagStr
	case ast.BytesValue:
		return symbols.TagBytes
	case ast.TupleValue:
		return symbols.TagTuple
	case ast.IntValue:
		return symbols.TagInt
	case ast.FloatValue:
		return symbols.TagFloat
	case ast.ComplexValue:
		return symbols.TagComplex
	default:
		return symbols.TagUnknown
	}
}
