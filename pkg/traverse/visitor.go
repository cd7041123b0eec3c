// Package traverse defines the visitor surface every tree pass implements.
//
// VisitStmt and VisitExpr dispatch on the node's concrete type to one hook
// per variant. Passes embed Structural to inherit recursion through compound
// statements, and Noop when they must accept shapes they ignore.
package traverse

import "enderpy/typechecker-go/pkg/ast"

type StatementVisitor interface {
	VisitAssign(*ast.Assign)
	VisitAnnAssign(*ast.AnnAssign)
	VisitAugAssign(*ast.AugAssign)
	VisitExpressionStatement(*ast.ExpressionStatement)
	VisitAssert(*ast.Assert)
	VisitPass(*ast.Pass)
	VisitDelete(*ast.Delete)
	VisitReturn(*ast.Return)
	VisitRaise(*ast.Raise)
	VisitBreak(*ast.Break)
	VisitContinue(*ast.Continue)
	VisitImport(*ast.Import)
	VisitImportFrom(*ast.ImportFrom)
	VisitGlobal(*ast.Global)
	VisitNonlocal(*ast.Nonlocal)
	VisitIf(*ast.If)
	VisitWhile(*ast.While)
	VisitFor(*ast.For)
	VisitWith(*ast.With)
	VisitTry(*ast.Try)
	VisitTryStar(*ast.TryStar)
	VisitFunctionDef(*ast.FunctionDef)
	VisitClassDef(*ast.ClassDef)
	VisitMatch(*ast.Match)
}

type ExpressionVisitor interface {
	VisitConstant(*ast.Constant)
	VisitList(*ast.List)
	VisitTuple(*ast.Tuple)
	VisitDict(*ast.Dict)
	VisitSet(*ast.Set)
	VisitName(*ast.Name)
	VisitBoolOperation(*ast.BoolOperation)
	VisitUnaryOperation(*ast.UnaryOperation)
	VisitBinOp(*ast.BinOp)
	VisitNamedExpression(*ast.NamedExpression)
	VisitYield(*ast.Yield)
	VisitYieldFrom(*ast.YieldFrom)
	VisitStarred(*ast.Starred)
	VisitGenerator(*ast.Generator)
	VisitListComp(*ast.ListComp)
	VisitSetComp(*ast.SetComp)
	VisitDictComp(*ast.DictComp)
	VisitAttribute(*ast.Attribute)
	VisitSubscript(*ast.Subscript)
	VisitSlice(*ast.Slice)
	VisitCall(*ast.Call)
	VisitAwait(*ast.Await)
	VisitCompare(*ast.Compare)
	VisitLambda(*ast.Lambda)
	VisitIfExp(*ast.IfExp)
	VisitJoinedStr(*ast.JoinedStr)
	VisitFormattedValue(*ast.FormattedValue)
}

// Visitor has one hook per statement and expression variant.
type Visitor interface {
	StatementVisitor
	ExpressionVisitor
}

// VisitStmt dispatches stmt to the matching hook of v. Nil statements are ignored.
func VisitStmt(v Visitor, stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
	case *ast.Assign:
		v.VisitAssign(s)
	case *ast.AnnAssign:
		v.VisitAnnAssign(s)
	case *ast.AugAssign:
		v.VisitAugAssign(s)
	case *ast.ExpressionStatement:
		v.VisitExpressionStatement(s)
	case *ast.Assert:
		v.VisitAssert(s)
	case *ast.Pass:
		v.VisitPass(s)
	case *ast.Delete:
		v.VisitDelete(s)
	case *ast.Return:
		v.VisitReturn(s)
	case *ast.Raise:
		v.VisitRaise(s)
	case *ast.Break:
		v.VisitBreak(s)
	case *ast.Continue:
		v.VisitContinue(s)
	case *ast.Import:
		v.VisitImport(s)
	case *ast.ImportFrom:
		v.VisitImportFrom(s)
	case *ast.Global:
		v.VisitGlobal(s)
	case *ast.Nonlocal:
		v.VisitNonlocal(s)
	case *ast.If:
		v.VisitIf(s)
	case *ast.While:
		v.VisitWhile(s)
	case *ast.For:
		v.VisitFor(s)
	case *ast.With:
		v.VisitWith(s)
	case *ast.Try:
		v.VisitTry(s)
	case *ast.TryStar:
		v.VisitTryStar(s)
	case *ast.FunctionDef:
		v.VisitFunctionDef(s)
	case *ast.ClassDef:
		v.VisitClassDef(s)
	case *ast.Match:
		v.VisitMatch(s)
	}
}

// VisitExpr dispatches expr to the matching hook of v. Nil expressions are ignored.
func VisitExpr(v Visitor, expr ast.Expression) {
	switch e := expr.(type) {
	case nil:
	case *ast.Constant:
		v.VisitConstant(e)
	case *ast.List:
		v.VisitList(e)
	case *ast.Tuple:
		v.VisitTuple(e)
	case *ast.Dict:
		v.VisitDict(e)
	case *ast.Set:
		v.VisitSet(e)
	case *ast.Name:
		v.VisitName(e)
	case *ast.BoolOperation:
		v.VisitBoolOperation(e)
	case *ast.UnaryOperation:
		v.VisitUnaryOperation(e)
	case *ast.BinOp:
		v.VisitBinOp(e)
	case *ast.NamedExpression:
		v.VisitNamedExpression(e)
	case *ast.Yield:
		v.VisitYield(e)
	case *ast.YieldFrom:
		v.VisitYieldFrom(e)
	case *ast.Starred:
		v.VisitStarred(e)
	case *ast.Generator:
		v.VisitGenerator(e)
	case *ast.ListComp:
		v.VisitListComp(e)
	case *ast.SetComp:
		v.VisitSetComp(e)
	case *ast.DictComp:
		v.VisitDictComp(e)
	case *ast.Attribute:
		v.VisitAttribute(e)
	case *ast.Subscript:
		v.VisitSubscript(e)
	case *ast.Slice:
		v.VisitSlice(e)
	case *ast.Call:
		v.VisitCall(e)
	case *ast.Await:
		v.VisitAwait(e)
	case *ast.Compare:
		v.VisitCompare(e)
	case *ast.Lambda:
		v.VisitLambda(e)
	case *ast.IfExp:
		v.VisitIfExp(e)
	case *ast.JoinedStr:
		v.VisitJoinedStr(e)
	case *ast.FormattedValue:
		v.VisitFormattedValue(e)
	}
}

func VisitStmts(v Visitor, stmts []ast.Statement) {
	for _, stmt := range stmts {
		VisitStmt(v, stmt)
	}
}

func VisitExprs(v Visitor, exprs []ast.Expression) {
	for _, expr := range exprs {
		VisitExpr(v, expr)
	}
}

// VisitModule visits every top-level statement of module in source order.
func VisitModule(v Visitor, module *ast.Module) {
	if module == nil {
		return
	}
	VisitStmts(v, module.Body)
}
