package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"enderpy/typechecker-go/pkg/checker"
	"enderpy/typechecker-go/pkg/diagnostics"
)

type jsonDiagnostic struct {
	Path   string `json:"path"`
	Module string `json:"module"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	diagnostics.Diagnostic
}

func (c *cli) runCheck(args []string, opts globalOptions) int {
	format := opts.format
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "json" {
		fmt.Fprintf(c.stderr, "check does not support --format %s\n", format)
		return 2
	}

	sess, err := c.openSession(opts)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	defer sess.Close()

	result, err := sess.check(args)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}

	if format == "json" {
		err = c.writeCheckJSON(sess, result)
	} else {
		err = c.writeCheckText(sess, result)
	}
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	if result.HasErrors() {
		return 1
	}
	return 0
}

func (s *session) check(paths []string) (checker.CheckResult, error) {
	prog, err := s.loadProgram(paths)
	if err != nil {
		return checker.CheckResult{}, err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pc := checker.NewProgramChecker(s.cfg.AnalyzerOptions(s.logger), s.cfg.Workers)
	return pc.Check(ctx, prog)
}

func (c *cli) writeCheckText(sess *session, result checker.CheckResult) error {
	total := 0
	for _, res := range result.Files {
		if len(res.File.Diagnostics) == 0 {
			continue
		}
		if total > 0 {
			fmt.Fprintln(c.stdout)
		}
		total += len(res.File.Diagnostics)
		if err := diagnostics.RenderAll(c.stdout, sess.displayPath(res.File.Path), res.File.Source, res.File.Diagnostics); err != nil {
			return err
		}
	}
	if total > 0 {
		fmt.Fprintln(c.stdout)
	}
	_, err := fmt.Fprintf(c.stdout, "checked %d %s, found %d %s\n",
		len(result.Files), plural(len(result.Files), "file", "files"),
		total, plural(total, "diagnostic", "diagnostics"))
	return err
}

func (c *cli) writeCheckJSON(sess *session, result checker.CheckResult) error {
	sources := make(map[string][]byte, len(result.Files))
	for _, res := range result.Files {
		sources[res.File.Path] = res.File.Source
	}
	out := make([]jsonDiagnostic, 0, len(result.Diagnostics))
	for _, diag := range result.Diagnostics {
		line, col := diagnostics.LineCol(sources[diag.Path], diag.Diagnostic.Span.Start)
		out = append(out, jsonDiagnostic{
			Path:       sess.displayPath(diag.Path),
			Module:     diag.Module,
			Line:       line,
			Column:     col,
			Diagnostic: diag.Diagnostic,
		})
	}
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
