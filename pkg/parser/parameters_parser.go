package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"enderpy/typechecker-go/pkg/ast"
)

// parseParameters lowers `parameters` and `lambda_parameters` nodes. A bare
// `*` switches later parameters to keyword-only; `/` moves everything seen so
// far into the positional-only list.
func (ctx *parseContext) parseParameters(node *sitter.Node) *ast.Arguments {
	var (
		posOnly     []*ast.Arg
		args        []*ast.Arg
		vararg      *ast.Arg
		kwOnly      []*ast.Arg
		kwDefaults  []ast.Expression
		kwarg       *ast.Arg
		defaults    []ast.Expression
		keywordOnly bool
	)

	add := func(arg *ast.Arg, def ast.Expression) {
		if keywordOnly {
			kwOnly = append(kwOnly, arg)
			kwDefaults = append(kwDefaults, def)
			return
		}
		if def != nil {
			defaults = append(defaults, def)
		} else if len(defaults) > 0 {
			ctx.invalid(node, "non-default argument follows default argument")
		}
		args = append(args, arg)
	}

	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "identifier":
			add(annotate(ast.NewArg(ctx.identifierName(child), nil), child), nil)
		case "typed_parameter":
			annotation := ctx.parseType(child.ChildByFieldName("type"))
			inner := firstNamedChild(child)
			if inner == nil {
				ctx.invalid(child, "parameter without name")
				continue
			}
			switch inner.Kind() {
			case "list_splat_pattern":
				vararg = annotate(ast.NewArg(ctx.identifierName(firstNamedChild(inner)), annotation), child)
				keywordOnly = true
			case "dictionary_splat_pattern":
				kwarg = annotate(ast.NewArg(ctx.identifierName(firstNamedChild(inner)), annotation), child)
			default:
				add(annotate(ast.NewArg(ctx.identifierName(inner), annotation), child), nil)
			}
		case "default_parameter":
			arg := annotate(ast.NewArg(ctx.identifierName(child.ChildByFieldName("name")), nil), child)
			add(arg, ctx.parseExpression(child.ChildByFieldName("value")))
		case "typed_default_parameter":
			annotation := ctx.parseType(child.ChildByFieldName("type"))
			arg := annotate(ast.NewArg(ctx.identifierName(child.ChildByFieldName("name")), annotation), child)
			add(arg, ctx.parseExpression(child.ChildByFieldName("value")))
		case "list_splat_pattern":
			vararg = annotate(ast.NewArg(ctx.identifierName(firstNamedChild(child)), nil), child)
			keywordOnly = true
		case "dictionary_splat_pattern":
			kwarg = annotate(ast.NewArg(ctx.identifierName(firstNamedChild(child)), nil), child)
		case "keyword_separator":
			keywordOnly = true
		case "positional_separator":
			posOnly = append(posOnly, args...)
			args = nil
		default:
			// Python 2 tuple parameters and similar forms.
			ctx.invalid(child, "unsupported parameter "+child.Kind())
		}
	}

	arguments := ast.NewArguments(posOnly, args, vararg, kwOnly, kwDefaults, kwarg, defaults)
	if node != nil {
		annotate(arguments, node)
	}
	return arguments
}
