package ast

import (
	"encoding/json"
	"strings"
	"testing"
)

func sampleModule() *Module {
	// def f(a):
	//     return a + 1
	ret := WithSpan(Ret(WithSpan(Bin(WithSpan(ID("a"), 24, 25), BinAdd, WithSpan(Int("1"), 28, 29)), 24, 29)), 17, 29)
	fn := WithSpan(Def("f", Params("a"), ret), 0, 29)
	return WithSpan(Mod(fn), 0, 30)
}

func TestNewSpanClampsInvertedRange(t *testing.T) {
	span := NewSpan(10, 4)
	if span.End < span.Start {
		t.Fatalf("expected end >= start, got %+v", span)
	}
	if span.Len() != 0 {
		t.Fatalf("expected empty span, got len %d", span.Len())
	}
	if got := NewSpan(3, 9).Len(); got != 6 {
		t.Fatalf("expected len 6, got %d", got)
	}
}

func TestSpanCoverAndContains(t *testing.T) {
	a := NewSpan(2, 5)
	b := NewSpan(4, 9)
	if got := a.Cover(b); got != NewSpan(2, 9) {
		t.Fatalf("unexpected cover %+v", got)
	}
	if !a.Contains(4) || a.Contains(5) {
		t.Fatalf("contains should treat the span as half-open")
	}
	if !NewSpan(0, 10).Encloses(a) || a.Encloses(b) {
		t.Fatalf("unexpected encloses result")
	}
}

func TestSpanViolationsAcceptsNestedTree(t *testing.T) {
	if bad := SpanViolations(sampleModule()); len(bad) != 0 {
		t.Fatalf("expected no violations, got %d (first %s)", len(bad), bad[0].NodeType())
	}
}

func TestSpanViolationsReportsEscapingChild(t *testing.T) {
	module := sampleModule()
	fn := module.Body[0].(*FunctionDef)
	SetSpan(fn.Body[0], NewSpan(17, 40))

	bad := SpanViolations(module)
	if len(bad) != 1 || bad[0].NodeType() != NodeReturn {
		t.Fatalf("expected the return statement to be reported, got %#v", bad)
	}
}

func TestCountNodesVisitsEveryNode(t *testing.T) {
	// Module, FunctionDef, Arguments, Arg, Return, BinOp, Name, Constant
	if got := CountNodes(sampleModule()); got != 8 {
		t.Fatalf("expected 8 nodes, got %d", got)
	}
	if got := CountNodes(nil); got != 0 {
		t.Fatalf("expected 0 nodes for nil root, got %d", got)
	}
}

func TestArgumentsValidate(t *testing.T) {
	args := NewArguments(nil, []*Arg{NewArg("a", nil)}, nil, []*Arg{NewArg("k", nil), NewArg("j", nil)}, []Expression{Int("1")}, nil, nil)
	if len(args.KwDefaults) != 2 || args.KwDefaults[1] != nil {
		t.Fatalf("expected kw defaults padded with nil, got %#v", args.KwDefaults)
	}
	if err := args.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	args.Defaults = []Expression{Int("1"), Int("2")}
	if err := args.Validate(); err == nil {
		t.Fatalf("expected too many defaults to fail validation")
	}
	if got := len(args.All()); got != 3 {
		t.Fatalf("expected 3 parameters, got %d", got)
	}
}

func TestAliasBoundName(t *testing.T) {
	cases := []struct {
		alias *Alias
		want  string
	}{
		{NewAlias("os", ""), "os"},
		{NewAlias("os.path", ""), "os"},
		{NewAlias("os.path", "p"), "p"},
	}
	for _, tc := range cases {
		if got := tc.alias.BoundName(); got != tc.want {
			t.Fatalf("%s as %q: expected %q, got %q", tc.alias.Name, tc.alias.AsName, tc.want, got)
		}
	}
}

func TestConstantJSONKeepsLiteralText(t *testing.T) {
	cases := []struct {
		value *Constant
		want  string
	}{
		{Int("42"), `"kind":"int","value":42`},
		{Int("0x1F"), `"kind":"int","value":"0x1F"`},
		{Flt("1e3"), `"kind":"float","value":"1e3"`},
		{None(), `"kind":"none","value":null`},
		{NewConstant(ComplexValue{Imaginary: "3j"}), `"kind":"complex","value":{"real":"","imaginary":"3j"}`},
		{NewConstant(TupleValue{IntValue("1"), StrValue("a")}), `"kind":"tuple","value":[1,"a"]`},
	}
	for _, tc := range cases {
		raw, err := json.Marshal(tc.value)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !strings.Contains(string(raw), tc.want) {
			t.Fatalf("expected %s in %s", tc.want, raw)
		}
	}
}

func TestAugAssignOpBinary(t *testing.T) {
	if got := AugFloorDiv.Binary(); got != BinFloorDiv {
		t.Fatalf("expected //, got %q", got)
	}
	if got := BinPow.AugmentedForm(); got != AugPow {
		t.Fatalf("expected **=, got %q", got)
	}
}
