package ast

import "reflect"

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// WithSpan sets the span on node and returns it, for use in builder chains.
func WithSpan[T Node](node T, start, end uint) T {
	SetSpan(node, NewSpan(start, end))
	return node
}

// Walk visits every node reachable from root in depth-first source order,
// calling fn with the node and its parent (nil for root). Returning false
// from fn skips the node's children.
func Walk(root Node, fn func(node, parent Node) bool) {
	if isNilNode(root) || fn == nil {
		return
	}
	if !fn(root, nil) {
		return
	}
	walkValue(derefValue(reflect.ValueOf(root)), root, fn)
}

func walkValue(val reflect.Value, parent Node, fn func(node, parent Node) bool) {
	if !val.IsValid() {
		return
	}
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return
		}
		if node, ok := val.Interface().(Node); ok {
			if isNilNode(node) {
				return
			}
			if fn(node, parent) {
				walkValue(derefValue(val), node, fn)
			}
			return
		}
		walkValue(val.Elem(), parent, fn)
	case reflect.Struct:
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			if !typ.Field(i).IsExported() {
				continue
			}
			walkValue(val.Field(i), parent, fn)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len(); i++ {
			walkValue(val.Index(i), parent, fn)
		}
	}
}

// SpanViolations returns the nodes under root whose span is inverted or
// escapes the span of the node that owns it. Nodes with a zero span are
// treated as unannotated and skipped.
func SpanViolations(root Node) []Node {
	var out []Node
	Walk(root, func(node, parent Node) bool {
		span := node.Span()
		if span.End < span.Start {
			out = append(out, node)
			return true
		}
		if parent == nil || span == (Span{}) {
			return true
		}
		if outer := parent.Span(); outer != (Span{}) && !outer.Encloses(span) {
			out = append(out, node)
		}
		return true
	})
	return out
}

// CountNodes returns the number of nodes reachable from root, root included.
func CountNodes(root Node) int {
	count := 0
	Walk(root, func(Node, Node) bool {
		count++
		return true
	})
	return count
}

func isNilNode(node Node) bool {
	if node == nil {
		return true
	}
	val := reflect.ValueOf(node)
	return val.Kind() == reflect.Pointer && val.IsNil()
}

func derefValue(val reflect.Value) reflect.Value {
	for val.IsValid() && (val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface) {
		if val.IsNil() {
			return val
		}
		val = val.Elem()
	}
	return val
}
