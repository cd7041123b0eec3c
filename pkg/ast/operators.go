package ast

func (op BooleanOperator) String() string    { return string(op) }
func (op UnaryOperator) String() string      { return string(op) }
func (op BinaryOperator) String() string     { return string(op) }
func (op ComparisonOperator) String() string { return string(op) }
func (op AugAssignOp) String() string        { return string(op) }

// Binary returns the binary operator an augmented assignment applies.
func (op AugAssignOp) Binary() BinaryOperator {
	s := string(op)
	if len(s) == 0 || s[len(s)-1] != '=' {
		return ""
	}
	return BinaryOperator(s[:len(s)-1])
}

// AugmentedForm returns the augmented-assignment spelling of a binary operator.
func (op BinaryOperator) AugmentedForm() AugAssignOp {
	if op == "" {
		return ""
	}
	return AugAssignOp(string(op) + "=")
}
