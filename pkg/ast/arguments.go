package ast

import "fmt"

// Arg is a single parameter. Annotation is nil when the parameter is unannotated.
type Arg struct {
	nodeImpl

	Arg        string     `json:"arg"`
	Annotation Expression `json:"annotation,omitempty"`
}

func NewArg(name string, annotation Expression) *Arg {
	return &Arg{nodeImpl: newNodeImpl(NodeArg), Arg: name, Annotation: annotation}
}

// Arguments is the parameter list of a function or lambda.
//
// KwDefaults holds one slot per keyword-only parameter; a nil slot means the
// parameter has no default. Defaults apply to the trailing positional parameters.
type Arguments struct {
	nodeImpl

	PosOnlyArgs []*Arg       `json:"posonlyargs"`
	Args        []*Arg       `json:"args"`
	Vararg      *Arg         `json:"vararg,omitempty"`
	KwOnlyArgs  []*Arg       `json:"kwonlyargs"`
	KwDefaults  []Expression `json:"kwDefaults"`
	Kwarg       *Arg         `json:"kwarg,omitempty"`
	Defaults    []Expression `json:"defaults"`
}

// NewArguments builds a parameter list, padding kwDefaults with nil so every
// keyword-only parameter owns a default slot.
func NewArguments(posOnly, args []*Arg, vararg *Arg, kwOnly []*Arg, kwDefaults []Expression, kwarg *Arg, defaults []Expression) *Arguments {
	if posOnly == nil {
		posOnly = make([]*Arg, 0)
	}
	if args == nil {
		args = make([]*Arg, 0)
	}
	if kwOnly == nil {
		kwOnly = make([]*Arg, 0)
	}
	if defaults == nil {
		defaults = make([]Expression, 0)
	}
	padded := make([]Expression, len(kwOnly))
	copy(padded, kwDefaults)
	return &Arguments{
		nodeImpl:    newNodeImpl(NodeArguments),
		PosOnlyArgs: posOnly,
		Args:        args,
		Vararg:      vararg,
		KwOnlyArgs:  kwOnly,
		KwDefaults:  padded,
		Kwarg:       kwarg,
		Defaults:    defaults,
	}
}

// Validate checks the shape invariants of the parameter list.
func (a *Arguments) Validate() error {
	if a == nil {
		return nil
	}
	if len(a.KwOnlyArgs) != len(a.KwDefaults) {
		return fmt.Errorf("ast: %d keyword-only parameters but %d default slots", len(a.KwOnlyArgs), len(a.KwDefaults))
	}
	if positional := len(a.PosOnlyArgs) + len(a.Args); positional < len(a.Defaults) {
		return fmt.Errorf("ast: %d defaults for %d positional parameters", len(a.Defaults), positional)
	}
	return nil
}

// All returns every parameter in declaration order.
func (a *Arguments) All() []*Arg {
	if a == nil {
		return nil
	}
	out := make([]*Arg, 0, len(a.PosOnlyArgs)+len(a.Args)+len(a.KwOnlyArgs)+2)
	out = append(out, a.PosOnlyArgs...)
	out = append(out, a.Args...)
	if a.Vararg != nil {
		out = append(out, a.Vararg)
	}
	out = append(out, a.KwOnlyArgs...)
	if a.Kwarg != nil {
		out = append(out, a.Kwarg)
	}
	return out
}
