// Package diagnostics holds span-addressed error descriptors produced while
// parsing and analyzing a source file. Diagnostics never abort a pass; they
// are collected and reported once the pass finishes.
package diagnostics

import (
	"fmt"
	"sort"

	"enderpy/typechecker-go/pkg/ast"
)

type Kind string

const (
	KindExpectToken      Kind = "expect-token"
	KindUnexpectedToken  Kind = "unexpected-token"
	KindUnknownStatement Kind = "unknown-statement"
	KindInvalidSyntax    Kind = "invalid-syntax"
	KindUnsupported      Kind = "unsupported"
	KindRedefinition     Kind = "redefinition"
	KindInvalidScope     Kind = "invalid-scope"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one located problem. Expected, Found, Line and Construct are
// only set by the kinds that carry them.
type Diagnostic struct {
	Kind      Kind     `json:"kind" yaml:"kind"`
	Severity  Severity `json:"severity" yaml:"severity"`
	Message   string   `json:"message" yaml:"message"`
	Span      ast.Span `json:"span" yaml:"span"`
	Expected  string   `json:"expected,omitempty" yaml:"expected,omitempty"`
	Found     string   `json:"found,omitempty" yaml:"found,omitempty"`
	Line      int      `json:"line,omitempty" yaml:"line,omitempty"`
	Construct string   `json:"construct,omitempty" yaml:"construct,omitempty"`
}

func (d Diagnostic) Error() string {
	return d.Message
}

// IsParse reports whether the diagnostic came from the parser rather than a semantic pass.
func (d Diagnostic) IsParse() bool {
	switch d.Kind {
	case KindExpectToken, KindUnexpectedToken, KindUnknownStatement, KindInvalidSyntax:
		return true
	default:
		return false
	}
}

func ExpectToken(expected, found string, span ast.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindExpectToken,
		Severity: SeverityError,
		Message:  fmt.Sprintf("Expect `%s` here, but found `%s`", expected, found),
		Span:     span,
		Expected: expected,
		Found:    found,
	}
}

func UnexpectedToken(line int, token string, span ast.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindUnexpectedToken,
		Severity: SeverityError,
		Message:  fmt.Sprintf("line: %d Unexpected token `%s`", line, token),
		Span:     span,
		Found:    token,
		Line:     line,
	}
}

func UnknownStatement(description string, span ast.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindUnknownStatement,
		Severity: SeverityError,
		Message:  fmt.Sprintf("Unknown statement %s", description),
		Span:     span,
		Found:    description,
	}
}

func InvalidSyntax(message string, span ast.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindInvalidSyntax,
		Severity: SeverityError,
		Message:  fmt.Sprintf("invalid syntax %s", message),
		Span:     span,
	}
}

// Unsupported marks a construct a semantic pass does not handle. The pass
// keeps going; only the offending subtree is skipped.
func Unsupported(construct string, span ast.Span) Diagnostic {
	return Diagnostic{
		Kind:      KindUnsupported,
		Severity:  SeverityWarning,
		Message:   fmt.Sprintf("unsupported construct: %s", construct),
		Span:      span,
		Construct: construct,
	}
}

func Redefinition(name string, previous ast.Span, span ast.Span) Diagnostic {
	return Diagnostic{
		Kind:      KindRedefinition,
		Severity:  SeverityError,
		Message:   fmt.Sprintf("name `%s` is already bound at offset %d", name, previous.Start),
		Span:      span,
		Construct: name,
	}
}

func InvalidScope(message string, span ast.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindInvalidScope,
		Severity: SeverityError,
		Message:  message,
		Span:     span,
	}
}

// List is an ordered collection of diagnostics for one file.
type List []Diagnostic

func (l *List) Add(diag Diagnostic) {
	*l = append(*l, diag)
}

func (l List) HasErrors() bool {
	for _, diag := range l {
		if diag.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics of the given kind.
func (l List) Count(kind Kind) int {
	n := 0
	for _, diag := range l {
		if diag.Kind == kind {
			n++
		}
	}
	return n
}

// Sort orders diagnostics by span start, keeping insertion order for ties.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Span.Start < l[j].Span.Start
	})
}
