package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"enderpy/typechecker-go/pkg/ast"
	"enderpy/typechecker-go/pkg/diagnostics"
	"enderpy/typechecker-go/pkg/logger"
	"enderpy/typechecker-go/pkg/parser"
	"enderpy/typechecker-go/pkg/program"
)

// RawFile is a source file that has been read but not parsed.
type RawFile struct {
	Path   string
	Source []byte
}

// SourceFile is one parsed Python file.
type SourceFile struct {
	Path        string
	Module      string
	Source      []byte
	AST         *ast.Module
	Diagnostics diagnostics.List
}

// Program contains every file selected for checking, sorted by path.
type Program struct {
	Root  string
	Files []*SourceFile
}

// ParseErrors counts the parser diagnostics across all files.
func (p *Program) ParseErrors() int {
	total := 0
	for _, file := range p.Files {
		total += len(file.Diagnostics)
	}
	return total
}

// Loader discovers and parses Python sources under a config's include roots.
type Loader struct {
	parser *parser.ModuleParser
	cfg    *Config
	logger *slog.Logger
}

// NewLoader constructs a loader. A nil cfg selects DefaultConfig for the working directory.
func NewLoader(cfg *Config, log *slog.Logger) (*Loader, error) {
	if cfg == nil {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("loader: working directory: %w", err)
		}
		cfg = DefaultConfig(wd)
	}
	if log == nil {
		log = logger.Logger()
	}
	mp, err := parser.NewModuleParser()
	if err != nil {
		return nil, err
	}
	return &Loader{parser: mp, cfg: cfg, logger: log}, nil
}

// Close releases parser resources.
func (l *Loader) Close() {
	if l == nil {
		return
	}
	if l.parser != nil {
		l.parser.Close()
		l.parser = nil
	}
}

// IsPythonSource reports whether path names a `.py` or `.pyi` file.
func IsPythonSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyi":
		return true
	default:
		return false
	}
}

// Discover lists the Python files under the include roots, skipping excluded
// paths. The result is absolute, sorted and free of duplicates.
func (l *Loader) Discover() ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range l.cfg.IncludeRoots() {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("loader: stat include %s: %w", root, err)
		}
		if !info.IsDir() {
			if IsPythonSource(root) {
				add(root)
			}
			continue
		}
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel := l.relative(path)
			if d.IsDir() {
				if path != root && l.cfg.Excluded(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !IsPythonSource(path) || l.cfg.Excluded(rel) {
				return nil
			}
			add(path)
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("loader: walk %s: %w", root, walkErr)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Load reads and parses paths, or every discovered file when none are given.
func (l *Loader) Load(paths ...string) (*Program, error) {
	if l == nil || l.parser == nil {
		return nil, fmt.Errorf("loader: closed")
	}
	if len(paths) == 0 {
		discovered, err := l.Discover()
		if err != nil {
			return nil, err
		}
		paths = discovered
	}

	raw := make([]RawFile, 0, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("loader: resolve %s: %w", path, err)
		}
		source, err := os.ReadFile(abs)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loader: %s does not exist", abs)
			}
			return nil, fmt.Errorf("loader: read %s: %w", abs, err)
		}
		raw = append(raw, RawFile{Path: abs, Source: source})
	}
	return l.LoadSources(raw)
}

// LoadSources parses files that were read elsewhere, such as from a git revision.
func (l *Loader) LoadSources(files []RawFile) (*Program, error) {
	if l == nil || l.parser == nil {
		return nil, fmt.Errorf("loader: closed")
	}
	sorted := append([]RawFile(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	prog := &Program{Root: l.cfg.Root, Files: make([]*SourceFile, 0, len(sorted))}
	for _, raw := range sorted {
		file, err := l.ParseFile(raw.Path, raw.Source)
		if err != nil {
			logger.LogFileError("parse", raw.Path, err)
			return nil, err
		}
		prog.Files = append(prog.Files, file)
	}
	l.logger.Info("loaded program", "root", prog.Root, "files", len(prog.Files), "parse_diagnostics", prog.ParseErrors())
	return prog, nil
}

// ParseFile parses a single source. Nodes whose spans do not nest inside
// their parent are reported as invalid syntax.
func (l *Loader) ParseFile(path string, source []byte) (*SourceFile, error) {
	module, diags, err := l.parser.ParseModule(source)
	if err != nil {
		return nil, fmt.Errorf("loader: parse %s: %w", path, err)
	}
	for _, node := range ast.SpanViolations(module) {
		diags.Add(diagnostics.InvalidSyntax(fmt.Sprintf("%T span escapes its parent", node), node.Span()))
	}
	l.logger.Debug("parsed file", "file", path, "nodes", ast.CountNodes(module), "diagnostics", len(diags))
	return &SourceFile{
		Path:        path,
		Module:      program.ModuleName(l.cfg.Root, path),
		Source:      source,
		AST:         module,
		Diagnostics: diags,
	}, nil
}

func (l *Loader) relative(path string) string {
	rel, err := filepath.Rel(l.cfg.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
