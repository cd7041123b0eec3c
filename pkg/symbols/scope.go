package symbols

import (
	"fmt"

	"enderpy/typechecker-go/pkg/ast"
)

// ScopeID indexes a scope in its table's arena.
type ScopeID int

// NoScope is the parent of the module scope.
const NoScope ScopeID = -1

type ScopeKind uint8

const (
	ScopeModule ScopeKind = iota
	ScopeClass
	ScopeFunction
	ScopeLambda
	ScopeComprehension
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeClass:
		return "class"
	case ScopeFunction:
		return "function"
	case ScopeLambda:
		return "lambda"
	case ScopeComprehension:
		return "comprehension"
	default:
		return fmt.Sprintf("scope(%d)", uint8(k))
	}
}

// IsFunctionLike reports whether names bound in the scope are function locals.
func (k ScopeKind) IsFunctionLike() bool {
	return k == ScopeFunction || k == ScopeLambda || k == ScopeComprehension
}

// Scope is one lexical scope. Node is the definition that opened it, nil for the module.
type Scope struct {
	ID     ScopeID
	Kind   ScopeKind
	Name   string
	Parent ScopeID
	Node   ast.Node

	symbols   map[string]*SymbolTableNode
	order     []string
	globals   map[string]struct{}
	nonlocals map[string]struct{}
}

func newScope(id ScopeID, kind ScopeKind, name string, parent ScopeID, node ast.Node) *Scope {
	return &Scope{
		ID:        id,
		Kind:      kind,
		Name:      name,
		Parent:    parent,
		Node:      node,
		symbols:   make(map[string]*SymbolTableNode),
		globals:   make(map[string]struct{}),
		nonlocals: make(map[string]struct{}),
	}
}
