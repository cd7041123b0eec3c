package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"enderpy/typechecker-go/pkg/driver"
	"enderpy/typechecker-go/pkg/logger"
)

// session holds what every subcommand needs: the resolved config and a logger.
type session struct {
	cfg    *driver.Config
	logger *slog.Logger
	opts   globalOptions
}

func (c *cli) openSession(opts globalOptions) (*session, error) {
	cfg, err := resolveConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}

	logCfg, err := cfg.LoggerConfig()
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		level, err := logger.ParseLevel(opts.logLevel)
		if err != nil {
			return nil, err
		}
		logCfg.Level = level
	}
	logCfg.Output = c.stderr
	if err := logger.Init(logCfg); err != nil {
		return nil, err
	}
	log := logger.With("root", cfg.Root)
	if cfg.Path != "" {
		log.Debug("using config", "path", cfg.Path)
	}
	return &session{cfg: cfg, logger: log, opts: opts}, nil
}

func (s *session) Close() {
	_ = logger.Close()
}

// resolveConfig loads an explicit config, else the nearest enderpy.yml, else
// the defaults rooted at the working directory.
func resolveConfig(explicit string) (*driver.Config, error) {
	if explicit != "" {
		return driver.LoadConfig(explicit)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	path, ok, err := driver.FindConfig(wd)
	if err != nil {
		return nil, err
	}
	if ok {
		return driver.LoadConfig(path)
	}
	return driver.DefaultConfig(wd), nil
}

// loadProgram parses the requested files, or every discovered file, from the
// working tree or from the --rev commit.
func (s *session) loadProgram(paths []string) (*driver.Program, error) {
	loader, err := driver.NewLoader(s.cfg, s.logger)
	if err != nil {
		return nil, err
	}
	defer loader.Close()

	logger.LogPhase("load")
	if s.opts.rev == "" {
		prog, err := loader.Load(paths...)
		if err != nil {
			return nil, err
		}
		logger.LogPhaseComplete("load", len(prog.Files))
		return prog, nil
	}

	if len(paths) > 0 {
		return nil, fmt.Errorf("--rev cannot be combined with explicit paths")
	}
	source, err := driver.OpenGitSource(s.cfg.Root)
	if err != nil {
		return nil, err
	}
	files, hash, err := source.Files(s.opts.rev, s.cfg)
	if err != nil {
		return nil, err
	}
	s.logger.Info("reading revision", "rev", s.opts.rev, "commit", hash.String(), "files", len(files))
	prog, err := loader.LoadSources(files)
	if err != nil {
		return nil, err
	}
	logger.LogPhaseComplete("load", len(prog.Files))
	return prog, nil
}

// displayPath shortens path relative to the config root for output.
func (s *session) displayPath(path string) string {
	rel, err := filepath.Rel(s.cfg.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
