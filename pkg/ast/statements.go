package ast

// Simple statements

type Assign struct {
	nodeImpl
	statementMarker

	Targets []Expression `json:"targets"`
	Value   Expression   `json:"value"`
}

func NewAssign(targets []Expression, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Targets: targets, Value: value}
}

type AnnAssign struct {
	nodeImpl
	statementMarker

	Target     Expression `json:"target"`
	Annotation Expression `json:"annotation"`
	Value      Expression `json:"value,omitempty"`
	// Simple is true when the target is a bare name not wrapped in parentheses.
	Simple bool `json:"simple"`
}

func NewAnnAssign(target, annotation, value Expression, simple bool) *AnnAssign {
	return &AnnAssign{nodeImpl: newNodeImpl(NodeAnnAssign), Target: target, Annotation: annotation, Value: value, Simple: simple}
}

type AugAssignOp string

const (
	AugAdd      AugAssignOp = "+="
	AugSub      AugAssignOp = "-="
	AugMult     AugAssignOp = "*="
	AugMatMult  AugAssignOp = "@="
	AugDiv      AugAssignOp = "/="
	AugMod      AugAssignOp = "%="
	AugPow      AugAssignOp = "**="
	AugLShift   AugAssignOp = "<<="
	AugRShift   AugAssignOp = ">>="
	AugBitOr    AugAssignOp = "|="
	AugBitXor   AugAssignOp = "^="
	AugBitAnd   AugAssignOp = "&="
	AugFloorDiv AugAssignOp = "//="
)

type AugAssign struct {
	nodeImpl
	statementMarker

	Target Expression  `json:"target"`
	Op     AugAssignOp `json:"op"`
	Value  Expression  `json:"value"`
}

func NewAugAssign(target Expression, op AugAssignOp, value Expression) *AugAssign {
	return &AugAssign{nodeImpl: newNodeImpl(NodeAugAssign), Target: target, Op: op, Value: value}
}

// ExpressionStatement is a bare expression evaluated for its side effects.
type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expr Expression `json:"expr"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expr: expr}
}

type Assert struct {
	nodeImpl
	statementMarker

	Test Expression `json:"test"`
	Msg  Expression `json:"msg,omitempty"`
}

func NewAssert(test, msg Expression) *Assert {
	return &Assert{nodeImpl: newNodeImpl(NodeAssert), Test: test, Msg: msg}
}

type Pass struct {
	nodeImpl
	statementMarker
}

func NewPass() *Pass {
	return &Pass{nodeImpl: newNodeImpl(NodePass)}
}

type Delete struct {
	nodeImpl
	statementMarker

	Targets []Expression `json:"targets"`
}

func NewDelete(targets []Expression) *Delete {
	return &Delete{nodeImpl: newNodeImpl(NodeDelete), Targets: targets}
}

type Return struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value,omitempty"`
}

func NewReturn(value Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Value: value}
}

type Raise struct {
	nodeImpl
	statementMarker

	Exc   Expression `json:"exc,omitempty"`
	Cause Expression `json:"cause,omitempty"`
}

func NewRaise(exc, cause Expression) *Raise {
	return &Raise{nodeImpl: newNodeImpl(NodeRaise), Exc: exc, Cause: cause}
}

type Break struct {
	nodeImpl
	statementMarker
}

func NewBreak() *Break {
	return &Break{nodeImpl: newNodeImpl(NodeBreak)}
}

type Continue struct {
	nodeImpl
	statementMarker
}

func NewContinue() *Continue {
	return &Continue{nodeImpl: newNodeImpl(NodeContinue)}
}

// Alias is one `name [as asname]` entry of an import. AsName is empty when absent.
type Alias struct {
	nodeImpl

	Name   string `json:"name"`
	AsName string `json:"asname,omitempty"`
}

func NewAlias(name, asName string) *Alias {
	return &Alias{nodeImpl: newNodeImpl(NodeAlias), Name: name, AsName: asName}
}

// BoundName returns the name the alias introduces into the importing scope.
// `import a.b.c` binds `a`; `import a.b as c` binds `c`.
func (a *Alias) BoundName() string {
	if a == nil {
		return ""
	}
	if a.AsName != "" {
		return a.AsName
	}
	for i := 0; i < len(a.Name); i++ {
		if a.Name[i] == '.' {
			return a.Name[:i]
		}
	}
	return a.Name
}

type Import struct {
	nodeImpl
	statementMarker

	Names []*Alias `json:"names"`
}

func NewImport(names []*Alias) *Import {
	return &Import{nodeImpl: newNodeImpl(NodeImport), Names: names}
}

type ImportFrom struct {
	nodeImpl
	statementMarker

	Module string   `json:"module"`
	Names  []*Alias `json:"names"`
	// Level counts the leading dots of a relative import.
	Level uint `json:"level"`
}

func NewImportFrom(module string, names []*Alias, level uint) *ImportFrom {
	return &ImportFrom{nodeImpl: newNodeImpl(NodeImportFrom), Module: module, Names: names, Level: level}
}

type Global struct {
	nodeImpl
	statementMarker

	Names []string `json:"names"`
}

func NewGlobal(names []string) *Global {
	return &Global{nodeImpl: newNodeImpl(NodeGlobal), Names: names}
}

type Nonlocal struct {
	nodeImpl
	statementMarker

	Names []string `json:"names"`
}

func NewNonlocal(names []string) *Nonlocal {
	return &Nonlocal{nodeImpl: newNodeImpl(NodeNonlocal), Names: names}
}

// Compound statements

type If struct {
	nodeImpl
	statementMarker

	Test   Expression  `json:"test"`
	Body   []Statement `json:"body"`
	OrElse []Statement `json:"orelse"`
}

func NewIf(test Expression, body, orElse []Statement) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Test: test, Body: body, OrElse: orElse}
}

type While struct {
	nodeImpl
	statementMarker

	Test   Expression  `json:"test"`
	Body   []Statement `json:"body"`
	OrElse []Statement `json:"orelse"`
}

func NewWhile(test Expression, body, orElse []Statement) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Test: test, Body: body, OrElse: orElse}
}

type For struct {
	nodeImpl
	statementMarker

	Target  Expression  `json:"target"`
	Iter    Expression  `json:"iter"`
	Body    []Statement `json:"body"`
	OrElse  []Statement `json:"orelse"`
	IsAsync bool        `json:"isAsync,omitempty"`
}

func NewFor(target, iter Expression, body, orElse []Statement, isAsync bool) *For {
	return &For{nodeImpl: newNodeImpl(NodeFor), Target: target, Iter: iter, Body: body, OrElse: orElse, IsAsync: isAsync}
}

type WithItem struct {
	nodeImpl

	ContextExpr  Expression `json:"contextExpr"`
	OptionalVars Expression `json:"optionalVars,omitempty"`
}

func NewWithItem(contextExpr, optionalVars Expression) *WithItem {
	return &WithItem{nodeImpl: newNodeImpl(NodeWithItem), ContextExpr: contextExpr, OptionalVars: optionalVars}
}

type With struct {
	nodeImpl
	statementMarker

	Items   []*WithItem `json:"items"`
	Body    []Statement `json:"body"`
	IsAsync bool        `json:"isAsync,omitempty"`
}

func NewWith(items []*WithItem, body []Statement, isAsync bool) *With {
	return &With{nodeImpl: newNodeImpl(NodeWith), Items: items, Body: body, IsAsync: isAsync}
}

// ExceptHandler is one `except [Type [as name]]:` clause. Name is empty when absent.
type ExceptHandler struct {
	nodeImpl

	Typ  Expression  `json:"typ,omitempty"`
	Name string      `json:"name,omitempty"`
	Body []Statement `json:"body"`
}

func NewExceptHandler(typ Expression, name string, body []Statement) *ExceptHandler {
	return &ExceptHandler{nodeImpl: newNodeImpl(NodeExceptHandler), Typ: typ, Name: name, Body: body}
}

type Try struct {
	nodeImpl
	statementMarker

	Body      []Statement      `json:"body"`
	Handlers  []*ExceptHandler `json:"handlers"`
	OrElse    []Statement      `json:"orelse"`
	FinalBody []Statement      `json:"finalbody"`
}

func NewTry(body []Statement, handlers []*ExceptHandler, orElse, finalBody []Statement) *Try {
	return &Try{nodeImpl: newNodeImpl(NodeTry), Body: body, Handlers: handlers, OrElse: orElse, FinalBody: finalBody}
}

// TryStar is a try statement whose handlers are `except*` clauses.
type TryStar struct {
	nodeImpl
	statementMarker

	Body      []Statement      `json:"body"`
	Handlers  []*ExceptHandler `json:"handlers"`
	OrElse    []Statement      `json:"orelse"`
	FinalBody []Statement      `json:"finalbody"`
}

func NewTryStar(body []Statement, handlers []*ExceptHandler, orElse, finalBody []Statement) *TryStar {
	return &TryStar{nodeImpl: newNodeImpl(NodeTryStar), Body: body, Handlers: handlers, OrElse: orElse, FinalBody: finalBody}
}

type FunctionDef struct {
	nodeImpl
	statementMarker

	Name          string       `json:"name"`
	Args          *Arguments   `json:"args"`
	Body          []Statement  `json:"body"`
	DecoratorList []Expression `json:"decoratorList"`
	Returns       Expression   `json:"returns,omitempty"`
	TypeComment   string       `json:"typeComment,omitempty"`
	IsAsync       bool         `json:"isAsync,omitempty"`
}

func NewFunctionDef(name string, args *Arguments, body []Statement, decorators []Expression, returns Expression, isAsync bool) *FunctionDef {
	if args == nil {
		args = NewArguments(nil, nil, nil, nil, nil, nil, nil)
	}
	return &FunctionDef{
		nodeImpl:      newNodeImpl(NodeFunctionDef),
		Name:          name,
		Args:          args,
		Body:          body,
		DecoratorList: decorators,
		Returns:       returns,
		IsAsync:       isAsync,
	}
}

type ClassDef struct {
	nodeImpl
	statementMarker

	Name          string       `json:"name"`
	Bases         []Expression `json:"bases"`
	Keywords      []*Keyword   `json:"keywords"`
	Body          []Statement  `json:"body"`
	DecoratorList []Expression `json:"decoratorList"`
}

func NewClassDef(name string, bases []Expression, keywords []*Keyword, body []Statement, decorators []Expression) *ClassDef {
	return &ClassDef{
		nodeImpl:      newNodeImpl(NodeClassDef),
		Name:          name,
		Bases:         bases,
		Keywords:      keywords,
		Body:          body,
		DecoratorList: decorators,
	}
}

type MatchCase struct {
	nodeImpl

	Pattern MatchPattern `json:"pattern"`
	Guard   Expression   `json:"guard,omitempty"`
	Body    []Statement  `json:"body"`
}

func NewMatchCase(pattern MatchPattern, guard Expression, body []Statement) *MatchCase {
	return &MatchCase{nodeImpl: newNodeImpl(NodeMatchCase), Pattern: pattern, Guard: guard, Body: body}
}

type Match struct {
	nodeImpl
	statementMarker

	Subject Expression   `json:"subject"`
	Cases   []*MatchCase `json:"cases"`
}

func NewMatch(subject Expression, cases []*MatchCase) *Match {
	return &Match{nodeImpl: newNodeImpl(NodeMatch), Subject: subject, Cases: cases}
}
