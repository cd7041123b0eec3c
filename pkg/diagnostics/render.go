package diagnostics

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// LineCol converts a byte offset into a 1-based line and 1-based display column.
// Offsets past the end of source clamp to the end.
func LineCol(source []byte, offset uint) (int, int) {
	if offset > uint(len(source)) {
		offset = uint(len(source))
	}
	line := 1
	lineStart := 0
	for i := 0; i < int(offset); i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, displayWidth(source[lineStart:offset]) + 1
}

// displayWidth counts terminal cells, giving East Asian wide runes two cells.
func displayWidth(text []byte) int {
	cells := 0
	for len(text) > 0 {
		r, size := utf8.DecodeRune(text)
		text = text[size:]
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			cells += 2
		default:
			cells++
		}
	}
	return cells
}

// Render writes a header and a caret snippet with one line of context on
// either side of the diagnostic's start position.
func Render(w io.Writer, name string, source []byte, diag Diagnostic) error {
	line, col := LineCol(source, diag.Span.Start)
	lines := strings.Split(string(source), "\n")
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", diag.Severity, name, line, col, diag.Message)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", diag.Severity, line, col, diag.Message)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s%s\n", strings.Repeat(" ", col-1), carets(source, diag))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderAll renders every diagnostic in order, separated by blank lines.
func RenderAll(w io.Writer, name string, source []byte, list List) error {
	for i, diag := range list {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := Render(w, name, source, diag); err != nil {
			return err
		}
	}
	return nil
}

// carets underlines the span on its first line, at least one cell wide.
func carets(source []byte, diag Diagnostic) string {
	start, end := diag.Span.Start, diag.Span.End
	if end > uint(len(source)) {
		end = uint(len(source))
	}
	if start >= end {
		return "^"
	}
	segment := source[start:end]
	if idx := strings.IndexByte(string(segment), '\n'); idx >= 0 {
		segment = segment[:idx]
	}
	n := displayWidth(segment)
	if n < 1 {
		n = 1
	}
	return strings.Repeat("^", n)
}
