// Package semanal binds names. It walks a converted file, pushes a scope for
// every function, class, lambda and comprehension body, and records each
// binding it finds in the file's symbol table with a coarse type tag.
package semanal

import (
	"fmt"
	"log/slog"

	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/diagnostics"
	"enderpy/typechecker-go/pkg/program"
	"enderpy/typechecker-go/pkg/symbols"
	"enderpy/typechecker-go/pkg/traverse"
)

type Options struct {
	// Classifier tags bound values. Nil selects ClassifyExpression.
	Classifier   Classifier
	Redefinition symbols.RedefinitionPolicy
	// SingleTargetOnly restricts assignments to one bare name target.
	// Other shapes are reported as unsupported and bind nothing.
	SingleTargetOnly bool
	Logger           *slog.Logger
}

// Stats summarizes one analysis run.
type Stats struct {
	Statements  int
	Bindings    int
	Scopes      int
	Diagnostics int
}

type Analyzer struct {
	traverse.Structural

	file     *program.EnderpyFile
	table    *symbols.SymbolTable
	opts     Options
	classify Classifier
	logger   *slog.Logger

	stack    []symbols.ScopeID
	pending  []pendingNonlocal
	deferred []deferredBinding
	stats    Stats
}

type pendingNonlocal struct {
	scope symbols.ScopeID
	name  string
	span  ast.Span
}

// deferredBinding is a write to a nonlocal name whose owning function had
// not bound it yet when the write was visited.
type deferredBinding struct {
	scope symbols.ScopeID
	sym   *symbols.SymbolTableNode
}

var _ traverse.Visitor = (*Analyzer)(nil)

func New(file *program.EnderpyFile, opts Options) *Analyzer {
	if file.Names == nil {
		file.Names = symbols.New(file.Path)
	}
	a := &Analyzer{
		file:     file,
		table:    file.Names,
		opts:     opts,
		classify: opts.Classifier,
		logger:   opts.Logger,
	}
	if a.classify == nil {
		a.classify = ClassifyExpression
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}
	a.Structural = traverse.NewStructural(a)
	a.stack = []symbols.ScopeID{a.table.Module()}
	return a
}

// Run analyzes file with opts and returns the run's stats.
func Run(file *program.EnderpyFile, opts Options) Stats {
	return New(file, opts).Analyze()
}

// Analyze walks the whole module body. Unsupported constructs are reported
// on the file's diagnostics and skipped; analysis always completes.
func (a *Analyzer) Analyze() Stats {
	before := len(a.file.Diagnostics)
	scopesBefore := len(a.table.Scopes())
	a.logger.Debug("semanal: analyze", "file", a.file.Path, "statements", len(a.file.AST.Body))

	traverse.VisitModule(a, a.file.AST)
	a.checkNonlocals()

	a.stats.Scopes = len(a.table.Scopes()) - scopesBefore
	a.stats.Diagnostics = len(a.file.Diagnostics) - before
	a.logger.Debug("semanal: done",
		"file", a.file.Path,
		"bindings", a.stats.Bindings,
		"scopes", a.stats.Scopes,
		"diagnostics", a.stats.Diagnostics,
	)
	return a.stats
}

func (a *Analyzer) current() symbols.ScopeID {
	return a.stack[len(a.stack)-1]
}

func (a *Analyzer) push(kind symbols.ScopeKind, name string, node ast.Node) symbols.ScopeID {
	id := a.table.PushScope(kind, name, a.current(), node)
	a.stack = append(a.stack, id)
	return id
}

func (a *Analyzer) pop() {
	if len(a.stack) > 1 {
		a.stack = a.stack[:len(a.stack)-1]
	}
}

func (a *Analyzer) report(diag diagnostics.Diagnostic) {
	a.file.Diagnostics.Add(diag)
}

func (a *Analyzer) unsupported(construct string, node ast.Node) {
	a.logger.Debug("semanal: unsupported", "file", a.file.Path, "construct", construct)
	a.report(diagnostics.Unsupported(construct, node.Span()))
}

type bindFlags struct {
	public   bool
	hidden   bool
	implicit bool
}

// bind records name in the current scope, honouring global and nonlocal
// declarations made there.
func (a *Analyzer) bind(name string, node ast.Node, tag symbols.TypeTag, flags bindFlags) {
	a.bindFrom(a.current(), name, node, tag, flags)
}

func (a *Analyzer) bindFrom(scope symbols.ScopeID, name string, node ast.Node, tag symbols.TypeTag, flags bindFlags) {
	if name == "" {
		return
	}
	sym := &symbols.SymbolTableNode{
		Name:         name,
		Node:         node,
		Type:         tag,
		ModulePublic: flags.public,
		ModuleHidden: flags.hidden,
		Implicit:     flags.implicit,
	}
	target, ok := a.resolveBindingScope(scope, name)
	if !ok {
		a.deferred = append(a.deferred, deferredBinding{scope: scope, sym: sym})
		return
	}
	a.record(target, sym)
}

func (a *Analyzer) record(target symbols.ScopeID, sym *symbols.SymbolTableNode) {
	if a.opts.Redefinition == symbols.KeepFirst {
		if existing := a.table.LookupLocal(target, sym.Name); existing != nil {
			var previous ast.Span
			if existing.Node != nil {
				previous = existing.Node.Span()
			}
			a.report(diagnostics.Redefinition(sym.Name, previous, sym.Node.Span()))
			return
		}
	}
	sym.Scope = target
	a.table.Add(sym)
	a.stats.Bindings++
}

// resolveBindingScope picks the scope a write to name in scope lands in. It
// reports false for a nonlocal name no enclosing function binds yet; only the
// owner's own statements may create that binding.
func (a *Analyzer) resolveBindingScope(scope symbols.ScopeID, name string) (symbols.ScopeID, bool) {
	switch {
	case a.table.IsGlobal(scope, name):
		return a.table.Module(), true
	case a.table.IsNonlocal(scope, name):
		return a.enclosingBinding(scope, name)
	}
	return scope, true
}

// enclosingFunction returns the nearest function-like ancestor of scope,
// skipping classes and stopping before the module.
func (a *Analyzer) enclosingFunction(scope symbols.ScopeID) (symbols.ScopeID, bool) {
	s := a.table.Scope(scope)
	if s == nil {
		return symbols.NoScope, false
	}
	for parent := a.table.Scope(s.Parent); parent != nil; parent = a.table.Scope(parent.Parent) {
		if parent.Kind.IsFunctionLike() {
			return parent.ID, true
		}
	}
	return symbols.NoScope, false
}

// enclosingBinding finds the function-like ancestor that binds name.
func (a *Analyzer) enclosingBinding(scope symbols.ScopeID, name string) (symbols.ScopeID, bool) {
	for fn, ok := a.enclosingFunction(scope); ok; fn, ok = a.enclosingFunction(fn) {
		if a.table.IsGlobal(fn, name) {
			return symbols.NoScope, false
		}
		if a.table.LookupLocal(fn, name) != nil {
			return fn, true
		}
	}
	return symbols.NoScope, false
}

// checkNonlocals runs after the walk, since the enclosing binding of a
// nonlocal name may appear later in the source than the declaration. Writes
// deferred during the walk land in their owner now, or are dropped.
func (a *Analyzer) checkNonlocals() {
	for _, d := range a.deferred {
		if owner, ok := a.enclosingBinding(d.scope, d.sym.Name); ok {
			a.record(owner, d.sym)
		}
	}
	a.deferred = nil
	for _, p := range a.pending {
		if _, ok := a.enclosingBinding(p.scope, p.name); ok {
			continue
		}
		a.report(diagnostics.InvalidScope(fmt.Sprintf("no binding for nonlocal '%s' found", p.name), p.span))
	}
}

func (a *Analyzer) visitExpr(expr ast.Expression) {
	traverse.VisitExpr(a, expr)
}

func (a *Analyzer) visitExprs(exprs []ast.Expression) {
	traverse.VisitExprs(a, exprs)
}

func (a *Analyzer) visitStmts(stmts []ast.Statement) {
	traverse.VisitStmts(a, stmts)
}
