package parser

import (
	"encoding/json"
	"reflect"
	"testing"

	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/diagnostics"
)

func parseSource(t testing.TB, source string) (*ast.Module, diagnostics.List) {
	t.Helper()
	p, err := NewModuleParser()
	if err != nil {
		t.Fatalf("NewModuleParser error: %v", err)
	}
	defer p.Close()

	mod, diags, err := p.ParseModule([]byte(source))
	if err != nil {
		t.Fatalf("ParseModule error: %v", err)
	}
	if mod == nil {
		t.Fatalf("ParseModule returned nil module")
	}
	return mod, diags
}

// parseClean parses source and fails on any diagnostic.
func parseClean(t testing.TB, source string) *ast.Module {
	t.Helper()
	mod, diags := parseSource(t, source)
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if bad := ast.SpanViolations(mod); len(bad) > 0 {
		t.Fatalf("span violations: %v", bad[0].NodeType())
	}
	return mod
}

func singleStatement[T ast.Statement](t testing.TB, mod *ast.Module) T {
	t.Helper()
	if len(mod.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Body))
	}
	stmt, ok := mod.Body[0].(T)
	if !ok {
		t.Fatalf("expected %T, got %T", *new(T), mod.Body[0])
	}
	return stmt
}

func checkSpan(t testing.TB, label string, node ast.Node, start, end uint) {
	t.Helper()
	if node == nil {
		t.Fatalf("%s: nil node", label)
	}
	span := node.Span()
	if span.Start != start || span.End != end {
		t.Fatalf("%s span mismatch: got [%d,%d), want [%d,%d)", label, span.Start, span.End, start, end)
	}
}

func nameOf(t testing.TB, expr ast.Expression) string {
	t.Helper()
	name, ok := expr.(*ast.Name)
	if !ok {
		t.Fatalf("expected *ast.Name, got %T", expr)
	}
	return name.ID
}

// assertExprEqual compares two expressions ignoring spans.
func assertExprEqual(t testing.TB, expected, actual ast.Expression) {
	t.Helper()
	want := stripSpans(t, expected)
	got := stripSpans(t, actual)
	if reflect.DeepEqual(want, got) {
		return
	}
	wantPretty, _ := json.MarshalIndent(want, "", "  ")
	gotPretty, _ := json.MarshalIndent(got, "", "  ")
	t.Fatalf("expression mismatch\nexpected: %s\n   actual: %s", wantPretty, gotPretty)
}

func stripSpans(t testing.TB, node ast.Node) interface{} {
	t.Helper()
	raw, err := json.Marshal(node)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return dropKey(decoded, "span")
}

func dropKey(value interface{}, key string) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		delete(v, key)
		for k, inner := range v {
			v[k] = dropKey(inner, key)
		}
		return v
	case []interface{}:
		for i, inner := range v {
			v[i] = dropKey(inner, key)
		}
		return v
	default:
		return v
	}
}
