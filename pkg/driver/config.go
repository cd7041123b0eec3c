package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"

	"enderpy/typechecker-go/pkg/logger"
	"enderpy/typechecker-go/pkg/semanal"
	"enderpy/typechecker-go/pkg/symbols"
)

// ConfigFileName is the project configuration looked up from the working directory upwards.
const ConfigFileName = "enderpy.yml"

// DefaultExcludes skip caches, virtualenvs and VCS metadata.
var DefaultExcludes = []string{
	`(^|/)\.(git|hg|tox|nox|venv|mypy_cache|pytest_cache)(/|$)`,
	`(^|/)__pycache__(/|$)`,
	`(^|/)(venv|node_modules|build|dist)(/|$)`,
}

// Config models the enderpy.yml contents.
type Config struct {
	Path string
	// Root is the directory include paths are resolved against.
	Root              string
	Include           []string
	Exclude           []string
	Workers           int
	Redefinition      symbols.RedefinitionPolicy
	StrictAssignments bool
	Log               LogConfig

	excludes []*regexp2.Regexp
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig returns the configuration used when no enderpy.yml exists.
func DefaultConfig(root string) *Config {
	cfg := &Config{
		Root:    root,
		Include: []string{"."},
		Exclude: append([]string(nil), DefaultExcludes...),
		Workers: runtime.NumCPU(),
		Log:     LogConfig{Level: "warn", Format: "text"},
	}
	// DefaultExcludes always compile.
	_ = cfg.compile()
	return cfg
}

// LoadConfig parses enderpy.yml from disk, returning a validated config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", abs, err)
	}
	cfg, err := ParseConfig(data, filepath.Dir(abs))
	if err != nil {
		return nil, err
	}
	cfg.Path = abs
	return cfg, nil
}

// ParseConfig decodes YAML config data. Relative include paths resolve against root.
func ParseConfig(data []byte, root string) (*Config, error) {
	var raw configDisk
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	cfg, errs := raw.toConfig(root)
	cfg.normalize()
	if err := cfg.compile(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			errs.Issues = append(errs.Issues, verr.Issues...)
		} else {
			return nil, err
		}
	}
	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// FindConfig walks from start towards the filesystem root looking for enderpy.yml.
func FindConfig(start string) (string, bool, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf("config: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Excluded reports whether a slash-separated path relative to Root matches an exclude pattern.
func (c *Config) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, re := range c.excludes {
		ok, err := re.MatchString(rel)
		if err == nil && ok {
			return true
		}
	}
	return false
}

// IncludeRoots returns the absolute include directories or files.
func (c *Config) IncludeRoots() []string {
	roots := make([]string, 0, len(c.Include))
	for _, inc := range c.Include {
		if filepath.IsAbs(inc) {
			roots = append(roots, filepath.Clean(inc))
			continue
		}
		roots = append(roots, filepath.Join(c.Root, inc))
	}
	return roots
}

// AnalyzerOptions maps the config onto semantic analyzer options.
func (c *Config) AnalyzerOptions(log *slog.Logger) semanal.Options {
	return semanal.Options{
		Redefinition:     c.Redefinition,
		SingleTargetOnly: c.StrictAssignments,
		Logger:           log,
	}
}

// LoggerConfig maps the log section onto a logger configuration.
func (c *Config) LoggerConfig() (logger.Config, error) {
	cfg := logger.DefaultConfig()
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return cfg, err
	}
	cfg.Level = level
	if c.Log.Format != "" {
		cfg.Format = c.Log.Format
	}
	cfg.LogFile = c.Log.File
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if len(c.Include) == 0 {
		c.Include = []string{"."}
	}
	for i, inc := range c.Include {
		c.Include[i] = filepath.Clean(strings.TrimSpace(inc))
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.File != "" && !filepath.IsAbs(c.Log.File) {
		c.Log.File = filepath.Join(c.Root, c.Log.File)
	}
}

func (c *Config) compile() error {
	var errs ValidationError
	c.excludes = c.excludes[:0]
	for i, pattern := range c.Exclude {
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("exclude[%d]: %v", i, err))
			continue
		}
		c.excludes = append(c.excludes, re)
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type configDisk struct {
	Include           []string      `yaml:"include"`
	Exclude           []string      `yaml:"exclude"`
	ExtendExclude     []string      `yaml:"extend_exclude"`
	Workers           int           `yaml:"workers"`
	Redefinition      string        `yaml:"redefinition"`
	StrictAssignments bool          `yaml:"strict_assignments"`
	Log               logConfigDisk `yaml:"log"`
}

type logConfigDisk struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

func (d configDisk) toConfig(root string) (*Config, ValidationError) {
	var errs ValidationError
	cfg := &Config{
		Root:              root,
		Include:           append([]string(nil), d.Include...),
		Workers:           d.Workers,
		StrictAssignments: d.StrictAssignments,
		Log: LogConfig{
			Level:  d.Log.Level,
			Format: d.Log.Format,
			File:   d.Log.File,
		},
	}
	if d.Exclude != nil {
		cfg.Exclude = append([]string(nil), d.Exclude...)
	} else {
		cfg.Exclude = append([]string(nil), DefaultExcludes...)
	}
	cfg.Exclude = append(cfg.Exclude, d.ExtendExclude...)

	if d.Workers < 0 {
		errs.Issues = append(errs.Issues, "workers must not be negative")
	}
	policy, err := symbols.ParseRedefinitionPolicy(d.Redefinition)
	if err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("redefinition: %v", err))
	}
	cfg.Redefinition = policy
	for i, inc := range d.Include {
		if strings.TrimSpace(inc) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("include[%d] must be a non-empty path", i))
		}
	}
	if _, err := logger.ParseLevel(d.Log.Level); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.level: %v", err))
	}
	switch strings.ToLower(strings.TrimSpace(d.Log.Format)) {
	case "", "text", "json":
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.format must be text or json, got %q", d.Log.Format))
	}
	return cfg, errs
}
