package traverse

import "enderpy/typechecker-go/pkg/ast"

// Structural supplies the default hooks for compound statements. Each hook
// recurses into nested statement lists through Outer, so overrides on the
// embedding visitor are honoured at every depth.
type Structural struct {
	Outer Visitor
}

func NewStructural(outer Visitor) Structural {
	return Structural{Outer: outer}
}

func (s Structural) VisitIf(node *ast.If) {
	VisitStmts(s.Outer, node.Body)
	VisitStmts(s.Outer, node.OrElse)
}

func (s Structural) VisitWhile(node *ast.While) {
	VisitStmts(s.Outer, node.Body)
	VisitStmts(s.Outer, node.OrElse)
}

func (s Structural) VisitFor(node *ast.For) {
	VisitStmts(s.Outer, node.Body)
	VisitStmts(s.Outer, node.OrElse)
}

func (s Structural) VisitWith(node *ast.With) {
	for _, item := range node.Items {
		VisitExpr(s.Outer, item.ContextExpr)
		VisitExpr(s.Outer, item.OptionalVars)
	}
	VisitStmts(s.Outer, node.Body)
}

func (s Structural) VisitTry(node *ast.Try) {
	visitTryParts(s.Outer, node.Body, node.Handlers, node.OrElse, node.FinalBody)
}

func (s Structural) VisitTryStar(node *ast.TryStar) {
	visitTryParts(s.Outer, node.Body, node.Handlers, node.OrElse, node.FinalBody)
}

// visitTryParts walks the clauses in source order.
func visitTryParts(v Visitor, body []ast.Statement, handlers []*ast.ExceptHandler, orElse, finalBody []ast.Statement) {
	VisitStmts(v, body)
	for _, handler := range handlers {
		VisitExpr(v, handler.Typ)
		VisitStmts(v, handler.Body)
	}
	VisitStmts(v, orElse)
	VisitStmts(v, finalBody)
}

func (s Structural) VisitFunctionDef(node *ast.FunctionDef) {
	VisitStmts(s.Outer, node.Body)
}

func (s Structural) VisitClassDef(node *ast.ClassDef) {
	VisitStmts(s.Outer, node.Body)
}

func (s Structural) VisitMatch(node *ast.Match) {
	for _, c := range node.Cases {
		VisitStmts(s.Outer, c.Body)
	}
}
