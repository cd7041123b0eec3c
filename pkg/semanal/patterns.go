package semanal

import (
	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/symbols"
)

// bindPattern binds the capture names of a case pattern. When bind is false
// the pattern's value expressions are still walked; or-pattern alternatives
// after the first bind the same names and are walked that way.
func (a *Analyzer) bindPattern(pattern ast.MatchPattern, bind bool) {
	switch p := pattern.(type) {
	case nil:
	case *ast.MatchValue:
		a.visitExpr(p.Value)
	case *ast.MatchSingleton:
	case *ast.MatchSequence:
		for _, sub := range p.Patterns {
			a.bindPattern(sub, bind)
		}
	case *ast.MatchStar:
		if bind {
			a.bind(p.CaptureName(), p, symbols.TagList, bindFlags{})
		}
	case *ast.MatchMapping:
		a.visitExprs(p.Keys)
		for _, sub := range p.Patterns {
			a.bindPattern(sub, bind)
		}
		if bind {
			a.bind(p.Rest, p, symbols.TagDict, bindFlags{})
		}
	case *ast.MatchAs:
		a.bindPattern(p.Pattern, bind)
		if bind {
			a.bind(p.Name, p, symbols.TagUnknown, bindFlags{})
		}
	case *ast.MatchClass:
		a.visitExpr(p.Cls)
		for _, sub := range p.Patterns {
			a.bindPattern(sub, bind)
		}
		for _, sub := range p.KwdPatterns {
			a.bindPattern(sub, bind)
		}
	case *ast.MatchOr:
		for i, sub := range p.Patterns {
			a.bindPattern(sub, bind && i == 0)
		}
	}
}
