// Package symbols holds per-file symbol tables: an arena of lexical scopes,
// each mapping bound names to the record that introduced them.
package symbols

import (
	"fmt"
	"strings"

	"enderpy/typechecker-go/pkg/ast"
)

// SymbolTableNode records one binding of Name in Scope.
type SymbolTableNode struct {
	Name string
	// Node is the statement or parameter that introduced the binding.
	Node ast.Node
	Type TypeTag
	// ModulePublic marks an explicit re-export (`from m import a as a`).
	ModulePublic bool
	// ModuleHidden marks names that are not visible to importers, such as
	// plain imports inside stub files.
	ModuleHidden bool
	// Implicit marks bindings no statement wrote, like a class's `__class__`.
	Implicit bool
	Scope    ScopeID
	// Redefinitions lists earlier binding nodes this record replaced, oldest first.
	Redefinitions []ast.Node
}

type RedefinitionPolicy uint8

const (
	LastWriteWins RedefinitionPolicy = iota
	KeepFirst
)

func (p RedefinitionPolicy) String() string {
	switch p {
	case LastWriteWins:
		return "last-write-wins"
	case KeepFirst:
		return "keep-first"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParseRedefinitionPolicy accepts the names produced by String. Empty means LastWriteWins.
func ParseRedefinitionPolicy(text string) (RedefinitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "last-write-wins":
		return LastWriteWins, nil
	case "keep-first":
		return KeepFirst, nil
	default:
		return LastWriteWins, fmt.Errorf("symbols: unknown redefinition policy %q", text)
	}
}

// SymbolTable is the scope arena for one file. It is not safe for concurrent
// mutation and is never shared across files.
type SymbolTable struct {
	Path   string
	scopes []*Scope
}

// New creates a table holding only the module scope.
func New(path string) *SymbolTable {
	table := &SymbolTable{Path: path}
	table.scopes = append(table.scopes, newScope(0, ScopeModule, "", NoScope, nil))
	return table
}

func (t *SymbolTable) Module() ScopeID {
	return 0
}

// PushScope allocates a child scope of parent and returns its id.
func (t *SymbolTable) PushScope(kind ScopeKind, name string, parent ScopeID, node ast.Node) ScopeID {
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, newScope(id, kind, name, parent, node))
	return id
}

// Scope returns the scope with id, or nil when id is out of range.
func (t *SymbolTable) Scope(id ScopeID) *Scope {
	if t == nil || id < 0 || int(id) >= len(t.scopes) {
		return nil
	}
	return t.scopes[id]
}

func (t *SymbolTable) Scopes() []*Scope {
	if t == nil {
		return nil
	}
	out := make([]*Scope, len(t.scopes))
	copy(out, t.scopes)
	return out
}

// Add binds node.Name in node.Scope. An existing binding is replaced and
// returned; its node is appended to the new record's Redefinitions.
func (t *SymbolTable) Add(node *SymbolTableNode) *SymbolTableNode {
	scope := t.Scope(node.Scope)
	if scope == nil {
		return nil
	}
	previous, ok := scope.symbols[node.Name]
	if !ok {
		scope.order = append(scope.order, node.Name)
		scope.symbols[node.Name] = node
		return nil
	}
	history := make([]ast.Node, 0, len(previous.Redefinitions)+1)
	history = append(history, previous.Redefinitions...)
	if previous.Node != nil {
		history = append(history, previous.Node)
	}
	node.Redefinitions = append(history, node.Redefinitions...)
	scope.symbols[node.Name] = node
	return previous
}

func (t *SymbolTable) LookupLocal(id ScopeID, name string) *SymbolTableNode {
	scope := t.Scope(id)
	if scope == nil {
		return nil
	}
	return scope.symbols[name]
}

// Lookup resolves name from scope id outwards. Class scopes are only
// consulted when the lookup starts in them, matching how function bodies
// cannot see class-level names.
func (t *SymbolTable) Lookup(id ScopeID, name string) (*SymbolTableNode, bool) {
	start := id
	for scope := t.Scope(id); scope != nil; scope = t.Scope(scope.Parent) {
		if scope.Kind == ScopeClass && scope.ID != start {
			continue
		}
		if sym, ok := scope.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// Symbols returns the bindings of a scope in first-binding order.
func (t *SymbolTable) Symbols(id ScopeID) []*SymbolTableNode {
	scope := t.Scope(id)
	if scope == nil {
		return nil
	}
	out := make([]*SymbolTableNode, 0, len(scope.order))
	for _, name := range scope.order {
		out = append(out, scope.symbols[name])
	}
	return out
}

func (t *SymbolTable) Len(id ScopeID) int {
	scope := t.Scope(id)
	if scope == nil {
		return 0
	}
	return len(scope.symbols)
}

func (t *SymbolTable) MarkGlobal(id ScopeID, name string) {
	if scope := t.Scope(id); scope != nil {
		scope.globals[name] = struct{}{}
	}
}

func (t *SymbolTable) MarkNonlocal(id ScopeID, name string) {
	if scope := t.Scope(id); scope != nil {
		scope.nonlocals[name] = struct{}{}
	}
}

func (t *SymbolTable) IsGlobal(id ScopeID, name string) bool {
	scope := t.Scope(id)
	if scope == nil {
		return false
	}
	_, ok := scope.globals[name]
	return ok
}

func (t *SymbolTable) IsNonlocal(id ScopeID, name string) bool {
	scope := t.Scope(id)
	if scope == nil {
		return false
	}
	_, ok := scope.nonlocals[name]
	return ok
}
