package symbols

import (
	"sort"

	"enderpy/typechecker-go/pkg/ast"
)

// Snapshot is a serializable view of a table, used for dumps and golden tests.
type Snapshot struct {
	Path   string          `json:"path" yaml:"path"`
	Scopes []ScopeSnapshot `json:"scopes" yaml:"scopes"`
}

type ScopeSnapshot struct {
	ID        int              `json:"id" yaml:"id"`
	Kind      string           `json:"kind" yaml:"kind"`
	Name      string           `json:"name,omitempty" yaml:"name,omitempty"`
	Parent    int              `json:"parent" yaml:"parent"`
	Globals   []string         `json:"globals,omitempty" yaml:"globals,omitempty"`
	Nonlocals []string         `json:"nonlocals,omitempty" yaml:"nonlocals,omitempty"`
	Symbols   []SymbolSnapshot `json:"symbols" yaml:"symbols"`
}

type SymbolSnapshot struct {
	Name          string       `json:"name" yaml:"name"`
	Type          string       `json:"type" yaml:"type"`
	Node          ast.NodeType `json:"node" yaml:"node"`
	Span          ast.Span     `json:"span" yaml:"span"`
	ModulePublic  bool         `json:"modulePublic,omitempty" yaml:"module_public,omitempty"`
	ModuleHidden  bool         `json:"moduleHidden,omitempty" yaml:"module_hidden,omitempty"`
	Implicit      bool         `json:"implicit,omitempty" yaml:"implicit,omitempty"`
	Redefinitions int          `json:"redefinitions,omitempty" yaml:"redefinitions,omitempty"`
}

func (t *SymbolTable) Snapshot() Snapshot {
	snap := Snapshot{Path: t.Path}
	for _, scope := range t.scopes {
		entry := ScopeSnapshot{
			ID:        int(scope.ID),
			Kind:      scope.Kind.String(),
			Name:      scope.Name,
			Parent:    int(scope.Parent),
			Globals:   sortedKeys(scope.globals),
			Nonlocals: sortedKeys(scope.nonlocals),
			Symbols:   make([]SymbolSnapshot, 0, len(scope.order)),
		}
		for _, sym := range t.Symbols(scope.ID) {
			item := SymbolSnapshot{
				Name:          sym.Name,
				Type:          sym.Type.String(),
				ModulePublic:  sym.ModulePublic,
				ModuleHidden:  sym.ModuleHidden,
				Implicit:      sym.Implicit,
				Redefinitions: len(sym.Redefinitions),
			}
			if sym.Node != nil {
				item.Node = sym.Node.NodeType()
				item.Span = sym.Node.Span()
			}
			entry.Symbols = append(entry.Symbols, item)
		}
		snap.Scopes = append(snap.Scopes, entry)
	}
	return snap
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
