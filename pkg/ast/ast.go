package ast

type NodeType string

const (
	NodeModule NodeType = "Module"

	// Statements
	NodeAssign              NodeType = "Assign"
	NodeAnnAssign           NodeType = "AnnAssign"
	NodeAugAssign           NodeType = "AugAssign"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeAssert              NodeType = "Assert"
	NodePass                NodeType = "Pass"
	NodeDelete              NodeType = "Delete"
	NodeReturn              NodeType = "Return"
	NodeRaise               NodeType = "Raise"
	NodeBreak               NodeType = "Break"
	NodeContinue            NodeType = "Continue"
	NodeImport              NodeType = "Import"
	NodeImportFrom          NodeType = "ImportFrom"
	NodeGlobal              NodeType = "Global"
	NodeNonlocal            NodeType = "Nonlocal"
	NodeIf                  NodeType = "If"
	NodeWhile               NodeType = "While"
	NodeFor                 NodeType = "For"
	NodeWith                NodeType = "With"
	NodeTry                 NodeType = "Try"
	NodeTryStar             NodeType = "TryStar"
	NodeFunctionDef         NodeType = "FunctionDef"
	NodeClassDef            NodeType = "ClassDef"
	NodeMatch               NodeType = "Match"

	// Expressions
	NodeConstant        NodeType = "Constant"
	NodeList            NodeType = "List"
	NodeTuple           NodeType = "Tuple"
	NodeDict            NodeType = "Dict"
	NodeSet             NodeType = "Set"
	NodeName            NodeType = "Name"
	NodeBoolOp          NodeType = "BoolOp"
	NodeUnaryOp         NodeType = "UnaryOp"
	NodeBinOp           NodeType = "BinOp"
	NodeNamedExpr       NodeType = "NamedExpr"
	NodeYield           NodeType = "Yield"
	NodeYieldFrom       NodeType = "YieldFrom"
	NodeStarred         NodeType = "Starred"
	NodeGenerator       NodeType = "Generator"
	NodeListComp        NodeType = "ListComp"
	NodeSetComp         NodeType = "SetComp"
	NodeDictComp        NodeType = "DictComp"
	NodeAttribute       NodeType = "Attribute"
	NodeSubscript       NodeType = "Subscript"
	NodeSlice           NodeType = "Slice"
	NodeCall            NodeType = "Call"
	NodeAwait           NodeType = "Await"
	NodeCompare         NodeType = "Compare"
	NodeLambda          NodeType = "Lambda"
	NodeIfExp           NodeType = "IfExp"
	NodeJoinedStr       NodeType = "JoinedStr"
	NodeFormattedValue  NodeType = "FormattedValue"

	// Match patterns
	NodeMatchValue     NodeType = "MatchValue"
	NodeMatchSingleton NodeType = "MatchSingleton"
	NodeMatchSequence  NodeType = "MatchSequence"
	NodeMatchStar      NodeType = "MatchStar"
	NodeMatchMapping   NodeType = "MatchMapping"
	NodeMatchAs        NodeType = "MatchAs"
	NodeMatchClass     NodeType = "MatchClass"
	NodeMatchOr        NodeType = "MatchOr"

	// Supporting records
	NodeAlias         NodeType = "Alias"
	NodeKeyword       NodeType = "Keyword"
	NodeArguments     NodeType = "Arguments"
	NodeArg           NodeType = "Arg"
	NodeComprehension NodeType = "Comprehension"
	NodeWithItem      NodeType = "WithItem"
	NodeExceptHandler NodeType = "ExceptHandler"
	NodeMatchCase     NodeType = "MatchCase"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

// Span is a half-open byte range [Start, End) into the originating source buffer.
type Span struct {
	Start uint `json:"start"`
	End   uint `json:"end"`
}

// NewSpan builds a span, clamping End so that End >= Start always holds.
func NewSpan(start, end uint) Span {
	if end < start {
		end = start
	}
	return Span{Start: start, End: end}
}

func (s Span) Len() uint {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset uint) bool {
	return offset >= s.Start && offset < s.End
}

// Encloses reports whether other lies entirely inside s.
func (s Span) Encloses(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return NewSpan(start, end)
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Loc  Span     `json:"span"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.Loc }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.Loc = span }

// Marker interfaces. The unions are closed: only types in this package implement them.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type MatchPattern interface {
	Node
	matchPatternNode()
}

type matchPatternMarker struct{}

func (matchPatternMarker) matchPatternNode() {}

// Module is the root of a parsed source file.
type Module struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewModule(body []Statement) *Module {
	if body == nil {
		body = make([]Statement, 0)
	}
	return &Module{nodeImpl: newNodeImpl(NodeModule), Body: body}
}
