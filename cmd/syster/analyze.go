package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"syster/internal/diagfmt"
	"syster/internal/driver"
	"syster/internal/model"
	"syster/internal/project"
)

type rootOptions struct {
	json       bool
	verbose    bool
	exportAST  bool
	exportFmt  string
	outPath    string
	importPath string
	decompile  bool
	withNotes  bool
	fullpath   bool
	uiMode     uiMode
	driver     driver.Options
}

// runRoot dispatches the top-level invocation: import an interchange file,
// or analyze sources, then apply the requested outputs (summary, JSON,
// symbol dump, export, decompile).
func runRoot(cmd *cobra.Command, args []string) error {
	opts, err := readRootOptions(cmd)
	if err != nil {
		return err
	}

	if opts.importPath != "" {
		if len(args) != 0 {
			return fmt.Errorf("--import does not take a source path")
		}
		return runImport(cmd, opts)
	}

	if len(args) == 0 {
		return fmt.Errorf("expected a source file or directory (or --import)")
	}
	return runAnalyze(cmd, args[0], opts)
}

func readRootOptions(cmd *cobra.Command) (rootOptions, error) {
	flags := cmd.Flags()
	var opts rootOptions
	var err error
	read := func(dst *bool, name string) {
		if err == nil {
			*dst, err = flags.GetBool(name)
		}
	}
	read(&opts.json, "json")
	read(&opts.verbose, "verbose")
	read(&opts.exportAST, "export-ast")
	read(&opts.decompile, "decompile")
	read(&opts.withNotes, "with-notes")
	read(&opts.fullpath, "fullpath")
	read(&opts.driver.NoStdlib, "no-stdlib")
	if err != nil {
		return opts, err
	}
	if opts.exportFmt, err = flags.GetString("export"); err != nil {
		return opts, err
	}
	if opts.outPath, err = flags.GetString("out"); err != nil {
		return opts, err
	}
	if opts.importPath, err = flags.GetString("import"); err != nil {
		return opts, err
	}
	if opts.driver.StdlibPath, err = flags.GetString("stdlib-path"); err != nil {
		return opts, err
	}
	if opts.driver.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, err
	}
	if opts.driver.Jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return opts, err
	}
	if opts.uiMode, err = readUIMode(uiValue); err != nil {
		return opts, err
	}
	return opts, nil
}

// exportsToStdout reports whether --export will write the encoded payload
// to standard output, which then must stay free of human-readable text.
func (o rootOptions) exportsToStdout() bool {
	return o.exportFmt != "" && o.outPath == ""
}

// applyManifest fills driver options from syster.toml for every flag the
// user did not set explicitly.
func applyManifest(cmd *cobra.Command, path string, opts *rootOptions) {
	manifest, ok, err := project.FindAndLoad(manifestStartDir(path))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		return
	}
	if !ok {
		return
	}
	flags := cmd.Flags()
	if !flags.Changed("no-stdlib") && manifest.Analysis.NoStdlib {
		opts.driver.NoStdlib = true
	}
	if !flags.Changed("stdlib-path") && manifest.Analysis.StdlibPath != "" {
		opts.driver.StdlibPath = manifest.Analysis.StdlibPath
	}
	if !flags.Changed("max-diagnostics") && manifest.Analysis.MaxDiagnostics > 0 {
		opts.driver.MaxDiagnostics = manifest.Analysis.MaxDiagnostics
	}
	if !flags.Changed("jobs") && manifest.Analysis.Jobs > 0 {
		opts.driver.Jobs = manifest.Analysis.Jobs
	}
}

func manifestStartDir(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

func runAnalyze(cmd *cobra.Command, path string, opts rootOptions) error {
	applyManifest(cmd, path, &opts)

	res, err := analyzeWithOptionalUI(cmd, path, opts)
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeAuto
	if opts.fullpath {
		pathMode = diagfmt.PathModeAbsolute
	}

	if opts.exportAST {
		files := diagfmt.Symbols(res.Units, res.FileSet, pathMode)
		if err := diagfmt.WriteSymbolsJSON(cmd.OutOrStdout(), files); err != nil {
			return err
		}
	}

	if opts.json {
		summary := diagfmt.AnalysisJSON{
			FileCount:    res.FileCount,
			SymbolCount:  res.SymbolCount,
			ErrorCount:   res.ErrorCount,
			WarningCount: res.WarningCount,
			Diagnostics: diagfmt.Diagnostics(res.Bag, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         pathMode,
				IncludeNotes:     opts.withNotes,
			}),
		}
		if err := diagfmt.WriteAnalysisJSON(cmd.OutOrStdout(), summary); err != nil {
			return err
		}
	} else {
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     isTerminal(os.Stderr),
			PathMode:  pathMode,
			ShowNotes: opts.withNotes,
		})
		// The encoded payload owns stdout when --export has no --out.
		summaryOut := cmd.OutOrStdout()
		if opts.exportsToStdout() {
			summaryOut = cmd.ErrOrStderr()
		}
		printSummary(summaryOut, res)
		if opts.verbose {
			printVerbose(summaryOut, res)
		}
	}

	if opts.exportFmt != "" {
		format, err := driver.ParseFormat(opts.exportFmt)
		if err != nil {
			return err
		}
		if opts.outPath == "" {
			data, err := driver.Encode(res.Graph, format)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
		} else {
			if err := driver.Export(res.Graph, format, opts.outPath, nil); err != nil {
				return err
			}
			if !opts.json {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", opts.outPath, format)
			}
		}
	}

	if opts.decompile {
		if _, err := cmd.OutOrStdout().Write(driver.Decompile(res.Graph)); err != nil {
			return err
		}
	}
	return nil
}

func runImport(cmd *cobra.Command, opts rootOptions) error {
	g, err := driver.Import(opts.importPath)
	if err != nil {
		return err
	}

	if opts.exportAST {
		files := diagfmt.GraphSymbols(g, opts.importPath)
		return diagfmt.WriteSymbolsJSON(cmd.OutOrStdout(), files)
	}
	if opts.decompile {
		_, err := cmd.OutOrStdout().Write(driver.Decompile(g))
		return err
	}
	if opts.exportFmt != "" {
		format, err := driver.ParseFormat(opts.exportFmt)
		if err != nil {
			return err
		}
		if opts.outPath == "" {
			data, err := driver.Encode(g, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return driver.Export(g, format, opts.outPath, nil)
	}
	if opts.json {
		return diagfmt.WriteAnalysisJSON(cmd.OutOrStdout(), diagfmt.AnalysisJSON{
			FileCount:   len(g.SourceFiles),
			SymbolCount: g.SymbolCount(),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %s: %d symbols\n",
		okMark(), opts.importPath, g.SymbolCount())
	listRoots(cmd, g)
	return nil
}

func printSummary(out io.Writer, res *driver.AnalysisResult) {
	noun := "files"
	if res.FileCount == 1 {
		noun = "file"
	}
	if res.ErrorCount > 0 {
		fmt.Fprintf(out, "%s Analyzed %d %s: %d symbols, %d errors, %d warnings\n",
			failMark(), res.FileCount, noun, res.SymbolCount, res.ErrorCount, res.WarningCount)
		return
	}
	fmt.Fprintf(out, "%s Analyzed %d %s: %d symbols, %d warnings\n",
		okMark(), res.FileCount, noun, res.SymbolCount, res.WarningCount)
}

func printVerbose(out io.Writer, res *driver.AnalysisResult) {
	fmt.Fprintf(out, "  parse:   %s\n", res.Timings.Duration(driver.StageParse))
	fmt.Fprintf(out, "  resolve: %s\n", res.Timings.Duration(driver.StageResolve))
	fmt.Fprintf(out, "  resolved %d references, %d unresolved\n",
		res.Sema.ResolvedRefs, res.Sema.UnresolvedRefs)
	if packages := driver.LibraryPackages(); len(packages) > 0 {
		fmt.Fprintf(out, "  library: %s\n", strings.Join(packages, ", "))
	}
}

func listRoots(cmd *cobra.Command, g *model.Graph) {
	for _, root := range g.Roots {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", root.Kind, root.QualifiedName)
	}
}

func okMark() string {
	return color.New(color.FgGreen).Sprint("✓")
}

func failMark() string {
	return color.New(color.FgRed).Sprint("✗")
}
