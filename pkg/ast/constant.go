package ast

import (
	"encoding/json"
	"strconv"
)

type ConstantKind string

const (
	ConstNone    ConstantKind = "none"
	ConstBool    ConstantKind = "bool"
	ConstStr     ConstantKind = "str"
	ConstBytes   ConstantKind = "bytes"
	ConstTuple   ConstantKind = "tuple"
	ConstInt     ConstantKind = "int"
	ConstFloat   ConstantKind = "float"
	ConstComplex ConstantKind = "complex"
)

// ConstantValue is the literal payload of a Constant. Numbers keep their source text.
type ConstantValue interface {
	ConstantKind() ConstantKind
	constantValue()
}

type NoneValue struct{}

type BoolValue bool

type StrValue string

type BytesValue []byte

type TupleValue []ConstantValue

// IntValue is the literal text of an integer, e.g. "0x1F" or "1_000".
type IntValue string

type FloatValue string

// ComplexValue holds the real and imaginary parts as written. Real is empty for `3j`.
type ComplexValue struct {
	Real      string `json:"real"`
	Imaginary string `json:"imaginary"`
}

func (NoneValue) ConstantKind() ConstantKind    { return ConstNone }
func (BoolValue) ConstantKind() ConstantKind    { return ConstBool }
func (StrValue) ConstantKind() ConstantKind     { return ConstStr }
func (BytesValue) ConstantKind() ConstantKind   { return ConstBytes }
func (TupleValue) ConstantKind() ConstantKind   { return ConstTuple }
func (IntValue) ConstantKind() ConstantKind     { return ConstInt }
func (FloatValue) ConstantKind() ConstantKind   { return ConstFloat }
func (ComplexValue) ConstantKind() ConstantKind { return ConstComplex }

func (NoneValue) constantValue()    {}
func (BoolValue) constantValue()    {}
func (StrValue) constantValue()     {}
func (BytesValue) constantValue()   {}
func (TupleValue) constantValue()   {}
func (IntValue) constantValue()     {}
func (FloatValue) constantValue()   {}
func (ComplexValue) constantValue() {}

type Constant struct {
	nodeImpl
	expressionMarker

	Value ConstantValue `json:"value"`
}

func NewConstant(value ConstantValue) *Constant {
	if value == nil {
		value = NoneValue{}
	}
	return &Constant{nodeImpl: newNodeImpl(NodeConstant), Value: value}
}

// Kind reports the variant of the constant's payload.
func (c *Constant) Kind() ConstantKind {
	if c == nil || c.Value == nil {
		return ConstNone
	}
	return c.Value.ConstantKind()
}

// MarshalJSON tags the payload with its kind so dumps stay unambiguous.
// Decimal integers serialize as JSON numbers; other literals keep their text.
func (c *Constant) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	value, err := constantPayload(c.Value)
	if err != nil {
		return nil, err
	}
	payload := struct {
		Type  NodeType        `json:"type"`
		Span  Span            `json:"span"`
		Kind  ConstantKind    `json:"kind"`
		Value json.RawMessage `json:"value"`
	}{
		Type:  c.Type,
		Span:  c.Loc,
		Kind:  c.Kind(),
		Value: value,
	}
	return json.Marshal(payload)
}

func constantPayload(value ConstantValue) (json.RawMessage, error) {
	switch v := value.(type) {
	case nil, NoneValue:
		return json.RawMessage("null"), nil
	case IntValue:
		if isDecimalDigits(string(v)) {
			return json.RawMessage(v), nil
		}
		return json.RawMessage(strconv.Quote(string(v))), nil
	case BytesValue:
		return json.Marshal(string(v))
	case TupleValue:
		items := make([]json.RawMessage, 0, len(v))
		for _, item := range v {
			raw, err := constantPayload(item)
			if err != nil {
				return nil, err
			}
			items = append(items, raw)
		}
		return json.Marshal(items)
	default:
		return json.Marshal(v)
	}
}

func isDecimalDigits(text string) bool {
	if text == "" || (len(text) > 1 && text[0] == '0') {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}
