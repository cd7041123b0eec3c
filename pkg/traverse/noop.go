package traverse

import "enderpy/typechecker-go/pkg/ast"

// Noop implements every hook as a no-op. Embedding it is an explicit
// statement that the pass ignores the shapes it does not override.
type Noop struct{}

var _ Visitor = Noop{}

func (Noop) VisitAssign(*ast.Assign)                           {}
func (Noop) VisitAnnAssign(*ast.AnnAssign)                     {}
func (Noop) VisitAugAssign(*ast.AugAssign)                     {}
func (Noop) VisitExpressionStatement(*ast.ExpressionStatement) {}
func (Noop) VisitAssert(*ast.Assert)                           {}
func (Noop) VisitPass(*ast.Pass)                               {}
func (Noop) VisitDelete(*ast.Delete)                           {}
func (Noop) VisitReturn(*ast.Return)                           {}
func (Noop) VisitRaise(*ast.Raise)                             {}
func (Noop) VisitBreak(*ast.Break)                             {}
func (Noop) VisitContinue(*ast.Continue)                       {}
func (Noop) VisitImport(*ast.Import)                           {}
func (Noop) VisitImportFrom(*ast.ImportFrom)                   {}
func (Noop) VisitGlobal(*ast.Global)                           {}
func (Noop) VisitNonlocal(*ast.Nonlocal)                       {}
func (Noop) VisitIf(*ast.If)                                   {}
func (Noop) VisitWhile(*ast.While)                             {}
func (Noop) VisitFor(*ast.For)                                 {}
func (Noop) VisitWith(*ast.With)                               {}
func (Noop) VisitTry(*ast.Try)                                 {}
func (Noop) VisitTryStar(*ast.TryStar)                         {}
func (Noop) VisitFunctionDef(*ast.FunctionDef)                 {}
func (Noop) VisitClassDef(*ast.ClassDef)                       {}
func (Noop) VisitMatch(*ast.Match)                             {}

func (Noop) VisitConstant(*ast.Constant)               {}
func (Noop) VisitList(*ast.List)                       {}
func (Noop) VisitTuple(*ast.Tuple)                     {}
func (Noop) VisitDict(*ast.Dict)                       {}
func (Noop) VisitSet(*ast.Set)                         {}
func (Noop) VisitName(*ast.Name)                       {}
func (Noop) VisitBoolOperation(*ast.BoolOperation)     {}
func (Noop) VisitUnaryOperation(*ast.UnaryOperation)   {}
func (Noop) VisitBinOp(*ast.BinOp)                     {}
func (Noop) VisitNamedExpression(*ast.NamedExpression) {}
func (Noop) VisitYield(*ast.Yield)                     {}
func (Noop) VisitYieldFrom(*ast.YieldFrom)             {}
func (Noop) VisitStarred(*ast.Starred)                 {}
func (Noop) VisitGenerator(*ast.Generator)             {}
func (Noop) VisitListComp(*ast.ListComp)               {}
func (Noop) VisitSetComp(*ast.SetComp)                 {}
func (Noop) VisitDictComp(*ast.DictComp)               {}
func (Noop) VisitAttribute(*ast.Attribute)             {}
func (Noop) VisitSubscript(*ast.Subscript)             {}
func (Noop) VisitSlice(*ast.Slice)                     {}
func (Noop) VisitCall(*ast.Call)                       {}
func (Noop) VisitAwait(*ast.Await)                     {}
func (Noop) VisitCompare(*ast.Compare)                 {}
func (Noop) VisitLambda(*ast.Lambda)                   {}
func (Noop) VisitIfExp(*ast.IfExp)                     {}
func (Noop) VisitJoinedStr(*ast.JoinedStr)             {}
func (Noop) VisitFormattedValue(*ast.FormattedValue)   {}
