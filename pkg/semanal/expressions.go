package semanal

import (
	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/symbols"
)

// Expression hooks only bind through walrus targets, lambda parameters and
// comprehension targets. Everything else is walked for nested occurrences.

func (a *Analyzer) VisitConstant(*ast.Constant) {}

func (a *Analyzer) VisitName(*ast.Name) {}

func (a *Analyzer) VisitList(node *ast.List) {
	a.visitExprs(node.Elements)
}

func (a *Analyzer) VisitTuple(node *ast.Tuple) {
	a.visitExprs(node.Elements)
}

func (a *Analyzer) VisitDict(node *ast.Dict) {
	a.visitExprs(node.Keys)
	a.visitExprs(node.Values)
}

func (a *Analyzer) VisitSet(node *ast.Set) {
	a.visitExprs(node.Elements)
}

func (a *Analyzer) VisitBoolOperation(node *ast.BoolOperation) {
	a.visitExprs(node.Values)
}

func (a *Analyzer) VisitUnaryOperation(node *ast.UnaryOperation) {
	a.visitExpr(node.Operand)
}

func (a *Analyzer) VisitBinOp(node *ast.BinOp) {
	a.visitExpr(node.Left)
	a.visitExpr(node.Right)
}

// VisitNamedExpression binds the walrus target in the nearest scope that is
// not a comprehension.
func (a *Analyzer) VisitNamedExpression(node *ast.NamedExpression) {
	a.visitExpr(node.Value)
	name, ok := node.Target.(*ast.Name)
	if !ok {
		a.unsupported("assignment expression to "+string(node.Target.NodeType()), node)
		return
	}
	scope := a.current()
	for i := len(a.stack) - 1; i >= 0; i-- {
		if s := a.table.Scope(a.stack[i]); s != nil && s.Kind != symbols.ScopeComprehension {
			scope = s.ID
			break
		}
	}
	a.bindFrom(scope, name.ID, node, a.classify(node.Value), bindFlags{})
}

func (a *Analyzer) VisitYield(node *ast.Yield) {
	a.visitExpr(node.Value)
}

func (a *Analyzer) VisitYieldFrom(node *ast.YieldFrom) {
	a.visitExpr(node.Value)
}

func (a *Analyzer) VisitStarred(node *ast.Starred) {
	a.visitExpr(node.Value)
}

func (a *Analyzer) VisitGenerator(node *ast.Generator) {
	a.visitComprehension(node, "<genexpr>", node.Generators, node.Element)
}

func (a *Analyzer) VisitListComp(node *ast.ListComp) {
	a.visitComprehension(node, "<listcomp>", node.Generators, node.Element)
}

func (a *Analyzer) VisitSetComp(node *ast.SetComp) {
	a.visitComprehension(node, "<setcomp>", node.Generators, node.Element)
}

func (a *Analyzer) VisitDictComp(node *ast.DictComp) {
	a.visitComprehension(node, "<dictcomp>", node.Generators, node.Key, node.Value)
}

// visitComprehension evaluates the first iterable in the enclosing scope and
// everything else inside a fresh comprehension scope.
func (a *Analyzer) visitComprehension(node ast.Node, name string, generators []*ast.Comprehension, elements ...ast.Expression) {
	if len(generators) > 0 {
		a.visitExpr(generators[0].Iter)
	}
	a.push(symbols.ScopeComprehension, name, node)
	for i, gen := range generators {
		if i > 0 {
			a.visitExpr(gen.Iter)
		}
		a.bindTarget(gen.Target, nil, gen)
		a.visitExprs(gen.Ifs)
	}
	a.visitExprs(elements)
	a.pop()
}

func (a *Analyzer) VisitAttribute(node *ast.Attribute) {
	a.visitExpr(node.Value)
}

func (a *Analyzer) VisitSubscript(node *ast.Subscript) {
	a.visitExpr(node.Value)
	a.visitExpr(node.Slice)
}

func (a *Analyzer) VisitSlice(node *ast.Slice) {
	a.visitExpr(node.Lower)
	a.visitExpr(node.Upper)
	a.visitExpr(node.Step)
}

func (a *Analyzer) VisitCall(node *ast.Call) {
	a.visitExpr(node.Func)
	a.visitExprs(node.Args)
	for _, kw := range node.Keywords {
		a.visitExpr(kw.Value)
	}
	a.visitExpr(node.StarArgs)
	a.visitExpr(node.KwArgs)
}

func (a *Analyzer) VisitAwait(node *ast.Await) {
	a.visitExpr(node.Value)
}

func (a *Analyzer) VisitCompare(node *ast.Compare) {
	a.visitExpr(node.Left)
	a.visitExprs(node.Comparators)
}

func (a *Analyzer) VisitLambda(node *ast.Lambda) {
	a.visitSignature(node.Args)
	a.push(symbols.ScopeLambda, "<lambda>", node)
	a.bindParameters(node.Args)
	a.visitExpr(node.Body)
	a.pop()
}

func (a *Analyzer) VisitIfExp(node *ast.IfExp) {
	a.visitExpr(node.Test)
	a.visitExpr(node.Body)
	a.visitExpr(node.OrElse)
}

func (a *Analyzer) VisitJoinedStr(node *ast.JoinedStr) {
	a.visitExprs(node.Values)
}

func (a *Analyzer) VisitFormattedValue(node *ast.FormattedValue) {
	a.visitExpr(node.Value)
	a.visitExpr(node.FormatSpec)
}
