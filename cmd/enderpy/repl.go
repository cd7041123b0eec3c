package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"enderpy/typechecker-go/pkg/diagnostics"
	"enderpy/typechecker-go/pkg/parser"
	"enderpy/typechecker-go/pkg/program"
	"enderpy/typechecker-go/pkg/semanal"
	"enderpy/typechecker-go/pkg/symbols"
)

const (
	historyFile = ".enderpy_history"
	promptMain  = ">>> "
	promptCont  = "... "
	replName    = "<repl>"
)

func (c *cli) runRepl(args []string, opts globalOptions) int {
	if len(args) > 0 {
		fmt.Fprintf(c.stderr, "enderpy repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return 2
	}
	sess, err := c.openSession(opts)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	defer sess.Close()

	repl, err := newReplSession(sess.cfg.AnalyzerOptions(sess.logger))
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	defer repl.Close()

	fmt.Fprintf(c.stdout, "%s (type :help for commands)\n", cliToolVersion)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		if _, ok := <-sigc; ok {
			ln.Close()
			os.Exit(130)
		}
	}()

	for {
		code, ok := readStatement(ln)
		if !ok {
			fmt.Fprintln(c.stdout)
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if quit := c.replCommand(repl, trimmed); quit {
				return 0
			}
			continue
		}

		out, err := repl.Eval(code)
		if err != nil {
			fmt.Fprintln(c.stderr, err)
			continue
		}
		io.WriteString(c.stdout, out)
	}
}

func (c *cli) replCommand(repl *replSession, command string) bool {
	switch strings.ToLower(command) {
	case ":quit", ":q", ":exit":
		return true
	case ":symbols":
		if err := writeStructured(c.stdout, "yaml", repl.Snapshot()); err != nil {
			fmt.Fprintln(c.stderr, err)
		}
	case ":reset":
		repl.Reset()
		fmt.Fprintln(c.stdout, "session cleared")
	case ":source":
		io.WriteString(c.stdout, repl.Source())
	case ":help":
		fmt.Fprintln(c.stdout, ":symbols  show every scope bound so far")
		fmt.Fprintln(c.stdout, ":source   show the accumulated session source")
		fmt.Fprintln(c.stdout, ":reset    forget everything entered so far")
		fmt.Fprintln(c.stdout, ":quit     leave the repl")
	default:
		fmt.Fprintln(c.stdout, "unknown command. Type :help for commands.")
	}
	return false
}

// readStatement reads one logical statement, prompting for continuation
// lines while brackets are open or a block body is being entered.
func readStatement(ln *liner.State) (string, bool) {
	var lines []string
	for {
		prompt := promptMain
		if len(lines) > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if len(lines) > 0 {
				return strings.Join(lines, "\n"), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		lines = append(lines, line)
		if !needsContinuation(lines) {
			return strings.Join(lines, "\n"), true
		}
	}
}

// needsContinuation reports whether the lines read so far form an incomplete statement.
func needsContinuation(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	if bracketDepth(strings.Join(lines, "\n")) > 0 {
		return true
	}
	last := strings.TrimRight(stripComment(lines[len(lines)-1]), " \t")
	if strings.HasSuffix(last, "\\") || strings.HasSuffix(last, ":") {
		return true
	}
	first := strings.TrimRight(stripComment(lines[0]), " \t")
	if strings.HasSuffix(first, ":") || strings.HasPrefix(strings.TrimSpace(first), "@") {
		return strings.TrimSpace(lines[len(lines)-1]) != ""
	}
	return false
}

// bracketDepth counts unclosed brackets outside string literals and comments.
func bracketDepth(src string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(src); i++ {
		ch := src[i]
		if quote != 0 {
			switch {
			case ch == '\\':
				i++
			case ch == quote:
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
		case '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth
}

func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if quote != 0 {
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
		case '#':
			return line[:i]
		}
	}
	return line
}

// replSession accumulates accepted input and re-analyzes the whole buffer
// after each entry, so later statements see earlier bindings.
type replSession struct {
	parser *parser.ModuleParser
	opts   semanal.Options
	source []byte
	file   *program.EnderpyFile
}

func newReplSession(opts semanal.Options) (*replSession, error) {
	mp, err := parser.NewModuleParser()
	if err != nil {
		return nil, err
	}
	r := &replSession{parser: mp, opts: opts}
	r.Reset()
	return r, nil
}

func (r *replSession) Close() {
	r.parser.Close()
}

func (r *replSession) Reset() {
	r.source = nil
	r.file = program.ConvertFile(replName, nil, nil, nil)
	semanal.Run(r.file, r.opts)
}

func (r *replSession) Source() string {
	return string(r.source)
}

func (r *replSession) Snapshot() symbols.Snapshot {
	return r.file.Names.Snapshot()
}

// Eval analyzes code in the context of everything accepted so far. Input
// with syntax errors is rejected and the session is left unchanged; otherwise
// the new bindings and any semantic diagnostics are described.
func (r *replSession) Eval(code string) (string, error) {
	offset := uint(len(r.source))
	candidate := make([]byte, 0, len(r.source)+len(code)+1)
	candidate = append(candidate, r.source...)
	candidate = append(candidate, code...)
	if !strings.HasSuffix(code, "\n") {
		candidate = append(candidate, '\n')
	}

	module, parseDiags, err := r.parser.ParseModule(candidate)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if len(parseDiags) > 0 {
		if err := diagnostics.RenderAll(&b, replName, candidate, parseDiags); err != nil {
			return "", err
		}
		return b.String(), nil
	}

	file := program.ConvertFile(replName, candidate, module, nil)
	semanal.Run(file, r.opts)
	r.source = candidate
	r.file = file

	var fresh diagnostics.List
	for _, diag := range file.Diagnostics {
		if diag.Span.Start >= offset {
			fresh = append(fresh, diag)
		}
	}
	if err := diagnostics.RenderAll(&b, replName, candidate, fresh); err != nil {
		return "", err
	}
	if len(fresh) > 0 {
		b.WriteString("\n")
	}
	for _, sym := range file.Names.Symbols(file.Names.Module()) {
		if sym.Implicit || sym.Node == nil || sym.Node.Span().Start < offset {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", sym.Name, sym.Type)
	}
	return b.String(), nil
}
