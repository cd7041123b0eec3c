package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"enderpy/typechecker-go/pkg/ast"
)

// parseNumber keeps the literal text; values are never evaluated here.
func (ctx *parseContext) parseNumber(node *sitter.Node) ast.Expression {
	content := ctx.text(node)
	if content == "" {
		ctx.invalid(node, "empty number literal")
		return nil
	}
	if last := content[len(content)-1]; last == 'j' || last == 'J' {
		return annotate(ast.NewConstant(ast.ComplexValue{Imaginary: content[:len(content)-1]}), node)
	}
	if node.Kind() == "float" {
		return annotate(ast.NewConstant(ast.FloatValue(content)), node)
	}
	// Python 2 long suffix.
	content = strings.TrimRight(content, "lL")
	return annotate(ast.NewConstant(ast.IntValue(content)), node)
}

type stringPrefix struct {
	bytes  bool
	raw    bool
	format bool
}

func parseStringPrefix(start string) stringPrefix {
	var prefix stringPrefix
	for _, r := range start {
		switch r {
		case 'b', 'B':
			prefix.bytes = true
		case 'r', 'R':
			prefix.raw = true
		case 'f', 'F', 't', 'T':
			prefix.format = true
		case '\'', '"':
			return prefix
		}
	}
	return prefix
}

func (ctx *parseContext) parseString(node *sitter.Node) ast.Expression {
	var startNode, endNode *sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "string_start":
			startNode = child
		case "string_end":
			endNode = child
		}
	}
	if startNode == nil {
		ctx.invalid(node, "string without opening quote")
		return nil
	}
	prefix := parseStringPrefix(ctx.text(startNode))
	if prefix.format {
		return ctx.parseFString(node, prefix)
	}

	bodyStart := startNode.EndByte()
	bodyEnd := node.EndByte()
	if endNode != nil && !endNode.IsMissing() {
		bodyEnd = endNode.StartByte()
	}
	body := ""
	if bodyEnd >= bodyStart && int(bodyEnd) <= len(ctx.source) {
		body = string(ctx.source[bodyStart:bodyEnd])
	}
	if !prefix.raw {
		body = decodeEscapes(body, prefix.bytes)
	}
	if prefix.bytes {
		return annotate(ast.NewConstant(ast.BytesValue(body)), node)
	}
	return annotate(ast.NewConstant(ast.StrValue(body)), node)
}

// parseFString lowers f"..." into a JoinedStr of literal Constants and
// FormattedValues.
func (ctx *parseContext) parseFString(node *sitter.Node, prefix stringPrefix) ast.Expression {
	var parts fstringParts
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "string_content":
			parts.literal(ctx.fstringLiteral(ctx.text(child), prefix), spanOf(child))
		case "interpolation":
			ctx.parseInterpolation(child, prefix, &parts)
		}
	}
	return annotate(ast.NewJoinedStr(parts.values), node)
}

func (ctx *parseContext) fstringLiteral(text string, prefix stringPrefix) string {
	if !prefix.raw {
		text = decodeEscapes(text, false)
	}
	text = strings.ReplaceAll(text, "{{", "{")
	return strings.ReplaceAll(text, "}}", "}")
}

// fstringParts merges adjacent literal fragments the way CPython does.
type fstringParts struct {
	values []ast.Expression
}

func (p *fstringParts) literal(text string, span ast.Span) {
	if text == "" {
		return
	}
	if n := len(p.values); n > 0 {
		if prev, ok := p.values[n-1].(*ast.Constant); ok {
			if s, ok := prev.Value.(ast.StrValue); ok {
				prev.Value = s + ast.StrValue(text)
				ast.SetSpan(prev, prev.Span().Cover(span))
				return
			}
		}
	}
	if p.values == nil {
		p.values = make([]ast.Expression, 0)
	}
	literal := ast.NewConstant(ast.StrValue(text))
	ast.SetSpan(literal, span)
	p.values = append(p.values, literal)
}

func (p *fstringParts) add(expr ast.Expression) {
	if expr == nil {
		return
	}
	if p.values == nil {
		p.values = make([]ast.Expression, 0)
	}
	p.values = append(p.values, expr)
}

func (ctx *parseContext) parseInterpolation(node *sitter.Node, prefix stringPrefix, parts *fstringParts) {
	exprNode := node.ChildByFieldName("expression")
	if exprNode == nil {
		exprNode = firstNamedChild(node)
	}
	value := ctx.parseExpression(exprNode)

	conversion := int32(-1)
	if conv := node.ChildByFieldName("type_conversion"); conv != nil {
		text := strings.TrimPrefix(ctx.text(conv), "!")
		if r, _ := utf8.DecodeRuneInString(text); r == 's' || r == 'r' || r == 'a' {
			conversion = r
		} else {
			ctx.invalid(conv, "f-string conversion must be !s, !r or !a")
		}
	}

	var formatSpec ast.Expression
	if spec := node.ChildByFieldName("format_specifier"); spec != nil {
		formatSpec = ctx.parseFormatSpec(spec, prefix)
	}

	// f"{x=}" renders the expression text before its value.
	if hasToken(node, "=") && exprNode != nil {
		literalEnd := exprNode.EndByte()
		for i := uint(0); i < node.ChildCount(); i++ {
			if child := node.Child(i); child != nil && child.Kind() == "=" {
				literalEnd = child.EndByte()
			}
		}
		parts.literal(string(ctx.source[exprNode.StartByte():literalEnd]), ast.NewSpan(exprNode.StartByte(), literalEnd))
		if conversion == -1 && formatSpec == nil {
			conversion = 'r'
		}
	}
	parts.add(annotate(ast.NewFormattedValue(value, conversion, formatSpec), node))
}

// parseFormatSpec lowers the text after `:` into a JoinedStr; nested
// `{expr}` fields become FormattedValues.
func (ctx *parseContext) parseFormatSpec(node *sitter.Node, prefix stringPrefix) ast.Expression {
	var parts fstringParts
	cursor := node.StartByte()
	if first := node.Child(0); first != nil && first.Kind() == ":" {
		cursor = first.EndByte()
	}
	for _, child := range namedChildren(node) {
		if child.Kind() != "format_expression" {
			continue
		}
		if child.StartByte() > cursor {
			parts.literal(ctx.fstringLiteral(string(ctx.source[cursor:child.StartByte()]), prefix), ast.NewSpan(cursor, child.StartByte()))
		}
		inner := child.ChildByFieldName("expression")
		if inner == nil {
			inner = firstNamedChild(child)
		}
		parts.add(annotate(ast.NewFormattedValue(ctx.parseExpression(inner), -1, nil), child))
		cursor = child.EndByte()
	}
	if node.EndByte() > cursor {
		parts.literal(ctx.fstringLiteral(string(ctx.source[cursor:node.EndByte()]), prefix), ast.NewSpan(cursor, node.EndByte()))
	}
	return annotate(ast.NewJoinedStr(parts.values), node)
}

// parseConcatenatedString folds implicit concatenation. Mixing bytes with
// text is an error; any f-string part turns the result into a JoinedStr.
func (ctx *parseContext) parseConcatenatedString(node *sitter.Node) ast.Expression {
	pieces := make([]ast.Expression, 0)
	joined := false
	bytesCount := 0
	for _, child := range namedChildren(node) {
		expr := ctx.parseExpression(child)
		if expr == nil {
			continue
		}
		switch e := expr.(type) {
		case *ast.JoinedStr:
			joined = true
		case *ast.Constant:
			if e.Kind() == ast.ConstBytes {
				bytesCount++
			}
		}
		pieces = append(pieces, expr)
	}
	if bytesCount > 0 && bytesCount != len(pieces) {
		ctx.invalid(node, "cannot mix bytes and nonbytes literals")
	}

	if joined {
		var parts fstringParts
		for _, piece := range pieces {
			values := []ast.Expression{piece}
			if j, ok := piece.(*ast.JoinedStr); ok {
				values = j.Values
			}
			for _, v := range values {
				if c, ok := v.(*ast.Constant); ok {
					if text, ok := c.Value.(ast.StrValue); ok {
						parts.literal(string(text), c.Span())
						continue
					}
				}
				parts.add(v)
			}
		}
		return annotate(ast.NewJoinedStr(parts.values), node)
	}

	if bytesCount == len(pieces) && bytesCount > 0 {
		var buf []byte
		for _, piece := range pieces {
			buf = append(buf, piece.(*ast.Constant).Value.(ast.BytesValue)...)
		}
		return annotate(ast.NewConstant(ast.BytesValue(buf)), node)
	}
	var sb strings.Builder
	for _, piece := range pieces {
		if c, ok := piece.(*ast.Constant); ok {
			switch v := c.Value.(type) {
			case ast.StrValue:
				sb.WriteString(string(v))
			case ast.BytesValue:
				sb.Write(v)
			}
		}
	}
	return annotate(ast.NewConstant(ast.StrValue(sb.String())), node)
}

// decodeEscapes resolves backslash escapes. In bytes literals \u, \U and \N
// are left as written.
func decodeEscapes(s string, bytes bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case '\n':
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			end := i + 1
			for end < len(s) && end < i+3 && s[end] >= '0' && s[end] <= '7' {
				end++
			}
			v, _ := strconv.ParseUint(s[i:end], 8, 32)
			writeCode(&sb, rune(v), bytes)
			i = end - 1
		case 'x':
			if v, ok := hexDigits(s, i+1, 2); ok {
				writeCode(&sb, rune(v), bytes)
				i += 2
				continue
			}
			sb.WriteString(`\x`)
		case 'u', 'U':
			width := 4
			if e == 'U' {
				width = 8
			}
			if v, ok := hexDigits(s, i+1, width); ok && !bytes {
				sb.WriteRune(rune(v))
				i += width
				continue
			}
			sb.WriteByte('\\')
			sb.WriteByte(e)
		default:
			// Unknown escapes (and \N{...}) keep their backslash.
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}
	return sb.String()
}

func hexDigits(s string, start, width int) (uint64, bool) {
	if start+width > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil {
		return 0, false
	}
	return v, true
}

func writeCode(sb *strings.Builder, r rune, bytes bool) {
	if bytes || r < utf8.RuneSelf {
		sb.WriteByte(byte(r))
		return
	}
	sb.WriteRune(r)
}
