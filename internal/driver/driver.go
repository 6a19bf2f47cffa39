// Package driver orchestrates the analysis pipeline: file discovery,
// standard-library loading, parallel parsing, symbol resolution and the
// interchange entry points the CLI dispatches to.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"syster/internal/diag"
	"syster/internal/lexer"
	"syster/internal/model"
	"syster/internal/parser"
	"syster/internal/sema"
	"syster/internal/source"
	"syster/internal/symbols"
)

// Options configure one analysis run.
type Options struct {
	// NoStdlib skips loading the bundled model library.
	NoStdlib bool
	// StdlibPath overrides the embedded library with a directory of sources.
	StdlibPath string
	// MaxDiagnostics caps the total number of collected diagnostics
	// (0 means the default of 256).
	MaxDiagnostics int
	// Jobs limits parse parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Progress receives stage events. May be nil.
	Progress ProgressSink
}

const defaultMaxDiagnostics = 256

// ConfigError is a fatal invocation problem: bad paths, unreadable stdlib
// override, nothing to analyze. Unlike model diagnostics it aborts the run
// and maps to a non-zero exit status.
type ConfigError struct {
	Code diag.Code
	Msg  string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// AnalysisResult is everything one run produced. Model errors live in Bag;
// their presence does not make the run itself a failure.
type AnalysisResult struct {
	FileCount    int
	SymbolCount  int
	ErrorCount   int
	WarningCount int

	Bag     *diag.Bag
	FileSet *source.FileSet
	Units   []*model.FileUnit
	Table   *symbols.Table
	Sema    sema.Result
	Graph   *model.Graph
	Timings Timings
}

// Analyze runs the full pipeline over path, which may be a single source
// file or a directory searched recursively for *.sysml and *.kerml files.
func Analyze(ctx context.Context, path string, opts Options) (*AnalysisResult, error) {
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}

	loadStart := time.Now()
	emit(opts.Progress, Event{Stage: StageLoad, Status: StatusWorking})

	files, err := ListSourceFiles(path)
	if err != nil {
		return nil, &ConfigError{Code: diag.IOLoadFileError, Msg: "cannot read " + path, Err: err}
	}
	if len(files) == 0 {
		return nil, &ConfigError{Code: diag.ConfNoInputFiles,
			Msg: fmt.Sprintf("no .sysml or .kerml files under %s", path)}
	}

	fileSet := source.NewFileSetWithBase(baseDirFor(path))
	stdlibIDs, err := loadLibrary(fileSet, opts)
	if err != nil {
		return nil, err
	}

	type slot struct {
		id      source.FileID
		loadErr error
	}
	slots := make([]slot, len(files))
	for i, p := range files {
		id, err := fileSet.Load(p)
		slots[i] = slot{id: id, loadErr: err}
	}
	emit(opts.Progress, Event{Stage: StageLoad, Status: StatusDone, Elapsed: time.Since(loadStart)})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Parse stage: stdlib units first so user code can resolve against the
	// library, then the discovered files in sorted order. Each worker owns
	// a distinct result index, so no locking is needed.
	parseStart := time.Now()
	maxErrors, convErr := safecast.Conv[uint](maxDiag)
	if convErr != nil {
		maxErrors = 0
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	units := make([]*model.FileUnit, len(stdlibIDs)+len(files))
	parseOne := func(gctx context.Context, idx int, id source.FileID, loadErr error, path string) error {
		select {
		case <-gctx.Done():
			return gctx.Err()
		default:
		}
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
		start := time.Now()
		bag := diag.NewBag(maxDiag)
		if loadErr != nil {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.IOLoadFileError,
				Message:  "failed to load file: " + loadErr.Error(),
			})
			units[idx] = &model.FileUnit{Path: path, Bag: bag}
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError,
				Err: loadErr, Elapsed: time.Since(start)})
			return nil
		}
		file := fileSet.Get(id)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		unit := parser.ParseFile(fileSet, file, lx, parser.Options{
			Reporter:  reporter,
			MaxErrors: maxErrors,
			Stdlib:    file.IsStdlib(),
		})
		unit.Bag = bag
		units[idx] = unit

		status := StatusDone
		if bag.HasErrors() {
			status = StatusError
		}
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: status,
			Elapsed: time.Since(start)})
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(stdlibIDs)+len(files)))
	for i, id := range stdlibIDs {
		i, id := i, id
		g.Go(func() error {
			return parseOne(gctx, i, id, nil, fileSet.Get(id).Path)
		})
	}
	for i, s := range slots {
		i, s := i, s
		g.Go(func() error {
			return parseOne(gctx, len(stdlibIDs)+i, s.id, s.loadErr, files[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &AnalysisResult{
		FileCount: len(files),
		Bag:       diag.NewBag(maxDiag),
		FileSet:   fileSet,
		Units:     units,
	}
	res.Timings.Set(StageParse, time.Since(parseStart))
	for _, unit := range units {
		if unit.Bag != nil {
			res.Bag.Merge(unit.Bag)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Resolve stage runs sequentially over the full unit list.
	resolveStart := time.Now()
	emit(opts.Progress, Event{Stage: StageResolve, Status: StatusWorking})
	reporter := diag.BagReporter{Bag: res.Bag}
	res.Table = symbols.Build(units, reporter)
	res.Sema = sema.Analyze(res.Table, units, reporter)
	res.Graph = model.FromUnits(units)
	res.SymbolCount = res.Graph.SymbolCount()
	res.Timings.Set(StageResolve, time.Since(resolveStart))

	res.Bag.Sort()
	res.Bag.Dedup()
	res.ErrorCount = res.Bag.CountBySeverity(diag.SevError)
	res.WarningCount = res.Bag.CountBySeverity(diag.SevWarning)

	status := StatusDone
	if res.ErrorCount > 0 {
		status = StatusError
	}
	emit(opts.Progress, Event{Stage: StageResolve, Status: status,
		Elapsed: time.Since(resolveStart)})
	return res, nil
}

// ListSourceFiles returns the sorted model source files under path. A path
// naming a regular file is accepted as-is regardless of extension.
func ListSourceFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isSourcePath(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func isSourcePath(path string) bool {
	return strings.HasSuffix(path, ".sysml") || strings.HasSuffix(path, ".kerml")
}

func baseDirFor(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
