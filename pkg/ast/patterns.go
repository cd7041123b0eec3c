package ast

// MatchValue matches by equality against a value expression (`case 1:`, `case Color.RED:`).
type MatchValue struct {
	nodeImpl
	matchPatternMarker

	Value Expression `json:"value"`
}

func NewMatchValue(value Expression) *MatchValue {
	return &MatchValue{nodeImpl: newNodeImpl(NodeMatchValue), Value: value}
}

// MatchSingleton matches None, True or False by identity.
type MatchSingleton struct {
	nodeImpl
	matchPatternMarker

	Value *Constant `json:"value"`
}

func NewMatchSingleton(value *Constant) *MatchSingleton {
	return &MatchSingleton{nodeImpl: newNodeImpl(NodeMatchSingleton), Value: value}
}

type MatchSequence struct {
	nodeImpl
	matchPatternMarker

	Patterns []MatchPattern `json:"patterns"`
}

func NewMatchSequence(patterns []MatchPattern) *MatchSequence {
	return &MatchSequence{nodeImpl: newNodeImpl(NodeMatchSequence), Patterns: patterns}
}

// MatchStar is the `*rest` element of a sequence pattern. Value is nil for `*_`.
type MatchStar struct {
	nodeImpl
	matchPatternMarker

	Value Expression `json:"value,omitempty"`
}

func NewMatchStar(value Expression) *MatchStar {
	return &MatchStar{nodeImpl: newNodeImpl(NodeMatchStar), Value: value}
}

// CaptureName returns the name bound by the star pattern, or "" for a wildcard.
func (p *MatchStar) CaptureName() string {
	if p == nil {
		return ""
	}
	if name, ok := p.Value.(*Name); ok && name.ID != "_" {
		return name.ID
	}
	return ""
}

// MatchMapping pairs Keys[i] with Patterns[i]. Rest names the `**rest` capture, empty when absent.
type MatchMapping struct {
	nodeImpl
	matchPatternMarker

	Keys     []Expression   `json:"keys"`
	Patterns []MatchPattern `json:"patterns"`
	Rest     string         `json:"rest,omitempty"`
}

func NewMatchMapping(keys []Expression, patterns []MatchPattern, rest string) *MatchMapping {
	return &MatchMapping{nodeImpl: newNodeImpl(NodeMatchMapping), Keys: keys, Patterns: patterns, Rest: rest}
}

// MatchAs is `pattern as name`, a bare capture (`case x:`) when Pattern is nil,
// or the wildcard `_` when both Pattern and Name are empty.
type MatchAs struct {
	nodeImpl
	matchPatternMarker

	Pattern MatchPattern `json:"pattern,omitempty"`
	Name    string       `json:"name,omitempty"`
}

func NewMatchAs(pattern MatchPattern, name string) *MatchAs {
	return &MatchAs{nodeImpl: newNodeImpl(NodeMatchAs), Pattern: pattern, Name: name}
}

type MatchClass struct {
	nodeImpl
	matchPatternMarker

	Cls         Expression     `json:"cls"`
	Patterns    []MatchPattern `json:"patterns"`
	KwdAttrs    []string       `json:"kwdAttrs"`
	KwdPatterns []MatchPattern `json:"kwdPatterns"`
}

func NewMatchClass(cls Expression, patterns []MatchPattern, kwdAttrs []string, kwdPatterns []MatchPattern) *MatchClass {
	return &MatchClass{
		nodeImpl:    newNodeImpl(NodeMatchClass),
		Cls:         cls,
		Patterns:    patterns,
		KwdAttrs:    kwdAttrs,
		KwdPatterns: kwdPatterns,
	}
}

type MatchOr struct {
	nodeImpl
	matchPatternMarker

	Patterns []MatchPattern `json:"patterns"`
}

func NewMatchOr(patterns []MatchPattern) *MatchOr {
	return &MatchOr{nodeImpl: newNodeImpl(NodeMatchOr), Patterns: patterns}
}
