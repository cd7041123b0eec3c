package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"enderpy/typechecker-go/pkg/semanal"
	"enderpy/typechecker-go/pkg/symbols"
)

func writeProject(t *testing.T, config string, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files["enderpy.yml"] = config
	for rel, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := newCLI(&stdout, &stderr).run(args)
	return code, stdout.String(), stderr.String()
}

func TestParseGlobalFlags(t *testing.T) {
	opts, rest, err := parseGlobalFlags([]string{"--config=a.yml", "check", "--workers", "4", "--format", "JSON", "src", "--", "--rev"})
	if err != nil {
		t.Fatalf("parseGlobalFlags error: %v", err)
	}
	if opts.configPath != "a.yml" || opts.workers != 4 || opts.format != "json" {
		t.Fatalf("unexpected options %+v", opts)
	}
	if got := strings.Join(rest, " "); got != "check src --rev" {
		t.Fatalf("remaining = %q", got)
	}

	bad := [][]string{
		{"--workers", "zero"},
		{"--workers=0"},
		{"--format", "xml"},
		{"--rev"},
		{"--config="},
	}
	for _, args := range bad {
		if _, _, err := parseGlobalFlags(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestRunVersionAndUsage(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	if code != 0 || strings.TrimSpace(stdout) != cliToolVersion {
		t.Fatalf("version = %d %q", code, stdout)
	}
	code, _, stderr := runCLI(t)
	if code != 1 || !strings.Contains(stderr, "Usage:") {
		t.Fatalf("expected usage, got %d %q", code, stderr)
	}
	code, _, _ = runCLI(t, "--format", "xml", "check")
	if code != 2 {
		t.Fatalf("expected flag error exit code 2, got %d", code)
	}
}

func TestRunCheckText(t *testing.T) {
	root := writeProject(t, "workers: 2\n", map[string]string{
		"pkg/ok.py":  "x = 1\n",
		"pkg/bad.py": "y = 2\nprint 'hi'\n",
	})
	code, stdout, stderr := runCLI(t, "--config", filepath.Join(root, "enderpy.yml"), "check")
	if code != 1 {
		t.Fatalf("expected exit 1 for a file with errors, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "in pkg/bad.py at 2:1") {
		t.Fatalf("expected a rendered diagnostic for pkg/bad.py, got %q", stdout)
	}
	if !strings.Contains(stdout, "checked 2 files") {
		t.Fatalf("missing summary line in %q", stdout)
	}
}

func TestRunCheckCleanJSON(t *testing.T) {
	root := writeProject(t, "", map[string]string{"main.py": "def f(a):\n    return a\n"})
	code, stdout, stderr := runCLI(t, "--config", filepath.Join(root, "enderpy.yml"), "--format", "json", "check")
	if code != 0 {
		t.Fatalf("expected clean check, got %d (stderr %q)", code, stderr)
	}
	var out []map[string]any
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(out) != 0 {
		t.Fatalf("expected no diagnostics, got %v", out)
	}
}

func TestRunCheckJSONCarriesPosition(t *testing.T) {
	root := writeProject(t, "strict_assignments: true\n", map[string]string{"a.py": "z = 0\na, b = 1, 2\n"})
	code, stdout, _ := runCLI(t, "--config", filepath.Join(root, "enderpy.yml"), "--format=json", "check")
	if code != 0 {
		t.Fatalf("warnings alone should not fail the check, got exit %d", code)
	}
	var out []struct {
		Path   string `json:"path"`
		Module string `json:"module"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
		Kind   string `json:"kind"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(out) != 1 || out[0].Path != "a.py" || out[0].Module != "a" || out[0].Line != 2 || out[0].Column != 1 || out[0].Kind != "unsupported" {
		t.Fatalf("unexpected diagnostics %+v", out)
	}
}

func TestRunSymbolsYAML(t *testing.T) {
	root := writeProject(t, "", map[string]string{"m.py": "import os\nclass C:\n    attr = 1\n"})
	code, stdout, stderr := runCLI(t, "--config", filepath.Join(root, "enderpy.yml"), "symbols")
	if code != 0 {
		t.Fatalf("symbols failed: %d %q", code, stderr)
	}
	var snaps []symbols.Snapshot
	if err := yaml.Unmarshal([]byte(stdout), &snaps); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, stdout)
	}
	if len(snaps) != 1 || snaps[0].Path != "m.py" {
		t.Fatalf("unexpected snapshots %+v", snaps)
	}
	var names []string
	for _, sym := range snaps[0].Scopes[0].Symbols {
		names = append(names, sym.Name)
	}
	if got := strings.Join(names, ","); got != "os,C" {
		t.Fatalf("module symbols = %s", got)
	}
}

func TestRunAST(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.py")
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	code, stdout, stderr := runCLI(t, "ast", path)
	if code != 0 {
		t.Fatalf("ast failed: %d %q", code, stderr)
	}
	if !strings.Contains(stdout, `"Assign"`) {
		t.Fatalf("expected an Assign node in %s", stdout)
	}
	if code, _, _ := runCLI(t, "ast"); code != 2 {
		t.Fatalf("expected usage error without a file, got %d", code)
	}
}

func TestNeedsContinuation(t *testing.T) {
	cases := []struct {
		lines []string
		want  bool
	}{
		{[]string{"x = 1"}, false},
		{[]string{"x = (1,"}, true},
		{[]string{"x = (1,", "2)"}, false},
		{[]string{"s = '(' # ("}, false},
		{[]string{"def f():"}, true},
		{[]string{"def f():", "    return 1"}, true},
		{[]string{"def f():", "    return 1", ""}, false},
		{[]string{"@dec"}, true},
		{[]string{"x = 1 + \\"}, true},
	}
	for _, tc := range cases {
		if got := needsContinuation(tc.lines); got != tc.want {
			t.Fatalf("needsContinuation(%q) = %v, want %v", tc.lines, got, tc.want)
		}
	}
}

func TestReplSessionEval(t *testing.T) {
	repl, err := newReplSession(semanal.Options{Redefinition: symbols.KeepFirst})
	if err != nil {
		t.Fatalf("newReplSession error: %v", err)
	}
	defer repl.Close()

	out, err := repl.Eval("x = 1")
	if err != nil || out != "x: int\n" {
		t.Fatalf("Eval = %q, %v", out, err)
	}

	out, err = repl.Eval("def f(a):\n    return a\n")
	if err != nil || out != "f: function\n" {
		t.Fatalf("Eval = %q, %v", out, err)
	}

	before := repl.Source()
	out, err = repl.Eval("y = (1,")
	if err != nil || !strings.Contains(out, "<repl>") {
		t.Fatalf("expected a rendered syntax error, got %q, %v", out, err)
	}
	if repl.Source() != before {
		t.Fatalf("rejected input must not change the session")
	}

	out, err = repl.Eval("x = 'again'")
	if err != nil || !strings.Contains(out, "x") || !strings.Contains(out, "error") {
		t.Fatalf("expected a redefinition diagnostic, got %q, %v", out, err)
	}

	repl.Reset()
	if repl.Source() != "" || len(repl.Snapshot().Scopes[0].Symbols) != 0 {
		t.Fatalf("Reset should clear the session")
	}
}
