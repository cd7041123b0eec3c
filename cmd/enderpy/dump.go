package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/diagnostics"
	"enderpy/typechecker-go/pkg/driver"
	"enderpy/typechecker-go/pkg/symbols"
)

// runSymbols prints the symbol table of every checked file.
func (c *cli) runSymbols(args []string, opts globalOptions) int {
	format := opts.format
	if format == "" {
		format = "yaml"
	}
	if format != "yaml" && format != "json" {
		fmt.Fprintf(c.stderr, "symbols does not support --format %s\n", format)
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
	snapshots := make([]symbols.Snapshot, 0, len(result.Files))
	for _, res := range result.Files {
		snap := res.File.Names.Snapshot()
		snap.Path = sess.displayPath(snap.Path)
		snapshots = append(snapshots, snap)
	}
	if err := writeStructured(c.stdout, format, snapshots); err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	return 0
}

type astDump struct {
	Path        string           `json:"path"`
	Module      *ast.Module      `json:"module"`
	Diagnostics diagnostics.List `json:"diagnostics,omitempty"`
}

// runAST prints the lowered tree of a single file as JSON.
func (c *cli) runAST(args []string, opts globalOptions) int {
	if len(args) != 1 {
		fmt.Fprintln(c.stderr, "ast expects exactly one file")
		return 2
	}
	if opts.format != "" && opts.format != "json" {
		fmt.Fprintf(c.stderr, "ast does not support --format %s\n", opts.format)
		return 2
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(c.stderr, "read %s: %v\n", args[0], err)
		return 1
	}

	loader, err := driver.NewLoader(driver.DefaultConfig(filepath.Dir(path)), nil)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	defer loader.Close()
	file, err := loader.ParseFile(path, source)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}

	if err := writeStructured(c.stdout, "json", astDump{Path: args[0], Module: file.AST, Diagnostics: file.Diagnostics}); err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	if file.Diagnostics.HasErrors() {
		return 1
	}
	return 0
}

func writeStructured(w io.Writer, format string, value any) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return err
	}
	return enc.Close()
}
