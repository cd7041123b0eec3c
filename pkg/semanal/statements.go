package semanal

import (
	"fmt"

	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/diagnostics"
	"enderpy/typechecker-go/pkg/symbols"
)

func (a *Analyzer) VisitAssign(node *ast.Assign) {
	a.stats.Statements++
	if a.opts.SingleTargetOnly {
		a.assignSingle(node)
		return
	}
	a.visitExpr(node.Value)
	for _, target := range node.Targets {
		a.bindTarget(target, node.Value, node)
	}
}

// assignSingle accepts only `name = value`. Any other shape is reported
// before anything is bound so no partial record is left behind.
func (a *Analyzer) assignSingle(node *ast.Assign) {
	if len(node.Targets) != 1 {
		a.unsupported("multi-target assignment", node)
		return
	}
	name, ok := node.Targets[0].(*ast.Name)
	if !ok {
		a.unsupported(fmt.Sprintf("assignment to %s", node.Targets[0].NodeType()), node)
		return
	}
	a.visitExpr(node.Value)
	a.bind(name.ID, node, a.classify(node.Value), bindFlags{})
}

// bindTarget binds every name in an assignment target. value is the
// expression assigned to this target, nil when it is not known.
func (a *Analyzer) bindTarget(target, value ast.Expression, stmt ast.Node) {
	switch t := target.(type) {
	case *ast.Name:
		a.bind(t.ID, stmt, a.classify(value), bindFlags{})
	case *ast.Tuple:
		a.bindElements(t.Elements, value, stmt)
	case *ast.List:
		a.bindElements(t.Elements, value, stmt)
	case *ast.Starred:
		a.bindStarred(t, stmt)
	case *ast.Attribute:
		a.visitExpr(t.Value)
	case *ast.Subscript:
		a.visitExpr(t.Value)
		a.visitExpr(t.Slice)
	case nil:
	default:
		a.unsupported(fmt.Sprintf("assignment to %s", target.NodeType()), target)
	}
}

// bindElements destructures element-wise. Element values are only paired
// when the value is a display of the same length and no target is starred.
func (a *Analyzer) bindElements(targets []ast.Expression, value ast.Expression, stmt ast.Node) {
	values := displayElements(value)
	if len(values) != len(targets) || hasStarred(targets) || hasStarred(values) {
		values = nil
	}
	for i, target := range targets {
		var elem ast.Expression
		if values != nil {
			elem = values[i]
		}
		a.bindTarget(target, elem, stmt)
	}
}

func (a *Analyzer) bindStarred(star *ast.Starred, stmt ast.Node) {
	switch inner := star.Value.(type) {
	case *ast.Name:
		a.bind(inner.ID, stmt, symbols.TagList, bindFlags{})
	default:
		a.bindTarget(inner, nil, stmt)
	}
}

func displayElements(expr ast.Expression) []ast.Expression {
	switch e := expr.(type) {
	case *ast.Tuple:
		return e.Elements
	case *ast.List:
		return e.Elements
	default:
		return nil
	}
}

func hasStarred(exprs []ast.Expression) bool {
	for _, expr := range exprs {
		if _, ok := expr.(*ast.Starred); ok {
			return true
		}
	}
	return false
}

func (a *Analyzer) VisitAnnAssign(node *ast.AnnAssign) {
	a.stats.Statements++
	a.visitExpr(node.Annotation)
	a.visitExpr(node.Value)
	switch target := node.Target.(type) {
	case *ast.Name:
		tag := symbols.TagDeclared
		if node.Value != nil {
			tag = a.classify(node.Value)
		}
		a.bind(target.ID, node, tag, bindFlags{})
	case *ast.Attribute, *ast.Subscript:
		a.bindTarget(target, nil, node)
	default:
		a.unsupported(fmt.Sprintf("annotated assignment to %s", node.Target.NodeType()), node)
	}
}

func (a *Analyzer) VisitAugAssign(node *ast.AugAssign) {
	a.stats.Statements++
	a.visitExpr(node.Value)
	switch target := node.Target.(type) {
	case *ast.Name:
		scope, ok := a.resolveBindingScope(a.current(), target.ID)
		if ok && a.table.LookupLocal(scope, target.ID) == nil {
			a.bind(target.ID, node, symbols.TagOperation, bindFlags{})
		}
	case *ast.Attribute, *ast.Subscript:
		a.bindTarget(target, nil, node)
	default:
		a.unsupported(fmt.Sprintf("augmented assignment to %s", node.Target.NodeType()), node)
	}
}

func (a *Analyzer) VisitExpressionStatement(node *ast.ExpressionStatement) {
	a.stats.Statements++
	a.visitExpr(node.Expr)
}

func (a *Analyzer) VisitAssert(node *ast.Assert) {
	a.stats.Statements++
	a.visitExpr(node.Test)
	a.visitExpr(node.Msg)
}

func (a *Analyzer) VisitPass(*ast.Pass) {
	a.stats.Statements++
}

func (a *Analyzer) VisitDelete(node *ast.Delete) {
	a.stats.Statements++
	a.visitExprs(node.Targets)
}

func (a *Analyzer) VisitReturn(node *ast.Return) {
	a.stats.Statements++
	a.visitExpr(node.Value)
}

func (a *Analyzer) VisitRaise(node *ast.Raise) {
	a.stats.Statements++
	a.visitExpr(node.Exc)
	a.visitExpr(node.Cause)
}

func (a *Analyzer) VisitBreak(*ast.Break) {
	a.stats.Statements++
}

func (a *Analyzer) VisitContinue(*ast.Continue) {
	a.stats.Statements++
}

func (a *Analyzer) VisitImport(node *ast.Import) {
	a.stats.Statements++
	for _, alias := range node.Names {
		a.bind(alias.BoundName(), node, symbols.TagModule, a.importFlags(alias))
	}
}

func (a *Analyzer) VisitImportFrom(node *ast.ImportFrom) {
	a.stats.Statements++
	for _, alias := range node.Names {
		if alias.Name == "*" {
			// Star imports need the target module's exports; nothing to bind here.
			a.logger.Debug("semanal: skipping star import", "file", a.file.Path, "module", node.Module)
			continue
		}
		name := alias.AsName
		if name == "" {
			name = alias.Name
		}
		a.bind(name, node, symbols.TagUnknown, a.importFlags(alias))
	}
}

// importFlags applies the re-export convention: `import a as a` and
// `from m import a as a` are public, and in stub files every other import
// is hidden from importers.
func (a *Analyzer) importFlags(alias *ast.Alias) bindFlags {
	public := alias.AsName != "" && alias.AsName == alias.Name
	return bindFlags{
		public: public,
		hidden: a.file.IsStub() && !public,
	}
}

func (a *Analyzer) VisitGlobal(node *ast.Global) {
	a.stats.Statements++
	scope := a.current()
	for _, name := range node.Names {
		if scope != a.table.Module() && a.table.LookupLocal(scope, name) != nil {
			a.report(diagnostics.InvalidScope(fmt.Sprintf("name '%s' is assigned to before global declaration", name), node.Span()))
		}
		a.table.MarkGlobal(scope, name)
	}
}

func (a *Analyzer) VisitNonlocal(node *ast.Nonlocal) {
	a.stats.Statements++
	scope := a.current()
	if scope == a.table.Module() {
		a.report(diagnostics.InvalidScope("nonlocal declaration not allowed at module level", node.Span()))
		return
	}
	for _, name := range node.Names {
		if a.table.LookupLocal(scope, name) != nil {
			a.report(diagnostics.InvalidScope(fmt.Sprintf("name '%s' is assigned to before nonlocal declaration", name), node.Span()))
		}
		a.table.MarkNonlocal(scope, name)
		a.pending = append(a.pending, pendingNonlocal{scope: scope, name: name, span: node.Span()})
	}
}

func (a *Analyzer) VisitIf(node *ast.If) {
	a.stats.Statements++
	a.visitExpr(node.Test)
	a.Structural.VisitIf(node)
}

func (a *Analyzer) VisitWhile(node *ast.While) {
	a.stats.Statements++
	a.visitExpr(node.Test)
	a.Structural.VisitWhile(node)
}

func (a *Analyzer) VisitFor(node *ast.For) {
	a.stats.Statements++
	a.visitExpr(node.Iter)
	a.bindTarget(node.Target, nil, node)
	a.Structural.VisitFor(node)
}

func (a *Analyzer) VisitWith(node *ast.With) {
	a.stats.Statements++
	for _, item := range node.Items {
		a.visitExpr(item.ContextExpr)
		if item.OptionalVars != nil {
			a.bindTarget(item.OptionalVars, nil, item)
		}
	}
	a.visitStmts(node.Body)
}

func (a *Analyzer) VisitTry(node *ast.Try) {
	a.stats.Statements++
	a.visitTry(node.Body, node.Handlers, node.OrElse, node.FinalBody)
}

func (a *Analyzer) VisitTryStar(node *ast.TryStar) {
	a.stats.Statements++
	a.visitTry(node.Body, node.Handlers, node.OrElse, node.FinalBody)
}

func (a *Analyzer) visitTry(body []ast.Statement, handlers []*ast.ExceptHandler, orElse, finalBody []ast.Statement) {
	a.visitStmts(body)
	for _, handler := range handlers {
		a.visitExpr(handler.Typ)
		a.bind(handler.Name, handler, symbols.TagUnknown, bindFlags{})
		a.visitStmts(handler.Body)
	}
	a.visitStmts(orElse)
	a.visitStmts(finalBody)
}

func (a *Analyzer) VisitFunctionDef(node *ast.FunctionDef) {
	a.stats.Statements++
	a.visitExprs(node.DecoratorList)
	a.visitSignature(node.Args)
	a.visitExpr(node.Returns)
	a.bind(node.Name, node, symbols.TagFunction, bindFlags{})

	a.push(symbols.ScopeFunction, node.Name, node)
	a.bindParameters(node.Args)
	a.Structural.VisitFunctionDef(node)
	a.pop()
}

func (a *Analyzer) VisitClassDef(node *ast.ClassDef) {
	a.stats.Statements++
	a.visitExprs(node.DecoratorList)
	a.visitExprs(node.Bases)
	for _, kw := range node.Keywords {
		a.visitExpr(kw.Value)
	}
	a.bind(node.Name, node, symbols.TagClass, bindFlags{})

	a.push(symbols.ScopeClass, node.Name, node)
	a.bind("__module__", node, symbols.TagStr, bindFlags{implicit: true})
	a.bind("__qualname__", node, symbols.TagStr, bindFlags{implicit: true})
	a.Structural.VisitClassDef(node)
	a.pop()
}

// visitSignature walks the parts of a signature evaluated in the enclosing scope.
func (a *Analyzer) visitSignature(args *ast.Arguments) {
	if args == nil {
		return
	}
	a.visitExprs(args.Defaults)
	a.visitExprs(args.KwDefaults)
	for _, arg := range args.All() {
		a.visitExpr(arg.Annotation)
	}
}

func (a *Analyzer) bindParameters(args *ast.Arguments) {
	if args == nil {
		return
	}
	if err := args.Validate(); err != nil {
		a.report(diagnostics.InvalidSyntax(err.Error(), args.Span()))
	}
	for _, arg := range args.All() {
		a.bind(arg.Arg, arg, symbols.TagParameter, bindFlags{})
	}
}

func (a *Analyzer) VisitMatch(node *ast.Match) {
	a.stats.Statements++
	a.visitExpr(node.Subject)
	for _, c := range node.Cases {
		a.bindPattern(c.Pattern, true)
		a.visitExpr(c.Guard)
		a.visitStmts(c.Body)
	}
}
