// Package checker runs conversion and semantic analysis over every file of a
// loaded program.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"enderpy/typechecker-go/pkg/diagnostics"
	"enderpy/typechecker-go/pkg/driver"
	"enderpy/typechecker-go/pkg/logger"
	"enderpy/typechecker-go/pkg/program"
	"enderpy/typechecker-go/pkg/semanal"
)

// FileDiagnostic attaches a diagnostic to the file it was reported in.
type FileDiagnostic struct {
	Path       string
	Module     string
	Diagnostic diagnostics.Diagnostic
}

// FileResult is the analyzed unit for one source file.
type FileResult struct {
	Module string
	File   *program.EnderpyFile
	Stats  semanal.Stats
}

// CheckResult holds per-file results in the order of the program's files.
type CheckResult struct {
	Files       []FileResult
	Diagnostics []FileDiagnostic
}

// HasErrors reports whether any file produced an error-severity diagnostic.
func (r CheckResult) HasErrors() bool {
	for _, diag := range r.Diagnostics {
		if diag.Diagnostic.Severity == diagnostics.SeverityError {
			return true
		}
	}
	return false
}

// ProgramChecker analyzes the files of a program on a bounded set of workers.
type ProgramChecker struct {
	opts    semanal.Options
	workers int
	logger  *slog.Logger
}

// NewProgramChecker constructs a checker. Workers <= 0 selects the CPU count.
func NewProgramChecker(opts semanal.Options, workers int) *ProgramChecker {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Logger()
		opts.Logger = log
	}
	return &ProgramChecker{opts: opts, workers: workers, logger: log}
}

// Check converts and analyzes every file in prog. Files are independent, so
// they are spread over the worker pool; results keep the program's order.
// Cancelling ctx stops dispatching new files and returns ctx's error.
func (pc *ProgramChecker) Check(ctx context.Context, prog *driver.Program) (CheckResult, error) {
	if prog == nil {
		return CheckResult{}, fmt.Errorf("checker: program is nil")
	}
	logger.LogPhase("semanal")

	results := make([]FileResult, len(prog.Files))
	errs := make([]error, len(prog.Files))
	jobs := make(chan int)

	workers := pc.workers
	if workers > len(prog.Files) {
		workers = len(prog.Files)
	}
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx], errs[idx] = pc.checkFile(prog.Files[idx])
			}
		}()
	}

dispatch:
	for idx := range prog.Files {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return CheckResult{}, fmt.Errorf("checker: %w", err)
	}
	for _, err := range errs {
		if err != nil {
			return CheckResult{}, err
		}
	}

	result := CheckResult{Files: results}
	for _, res := range results {
		for _, diag := range res.File.Diagnostics {
			result.Diagnostics = append(result.Diagnostics, FileDiagnostic{
				Path:       res.File.Path,
				Module:     res.Module,
				Diagnostic: diag,
			})
		}
	}
	logger.LogPhaseComplete("semanal", len(results))
	return result, nil
}

// CheckFile converts and analyzes a single parsed file.
func (pc *ProgramChecker) CheckFile(src *driver.SourceFile) (FileResult, error) {
	return pc.checkFile(src)
}

func (pc *ProgramChecker) checkFile(src *driver.SourceFile) (res FileResult, err error) {
	if src == nil {
		return FileResult{}, fmt.Errorf("checker: nil source file")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("checker: %s: analysis panicked: %v", src.Path, r)
			logger.LogFileError("semanal", src.Path, err)
		}
	}()

	file := program.ConvertFile(src.Path, src.Source, src.AST, src.Diagnostics)
	stats := semanal.Run(file, pc.opts)
	file.Diagnostics.Sort()
	pc.logger.Debug("checked file",
		"file", src.Path,
		"module", src.Module,
		"bindings", stats.Bindings,
		"diagnostics", len(file.Diagnostics),
	)
	return FileResult{Module: src.Module, File: file, Stats: stats}, nil
}
