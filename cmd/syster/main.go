package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"syster/internal/version"
)

// newRootCmd builds the root command with a fresh flag set.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "syster [flags] <file.sysml|directory>",
		Short: "SysML v2 model analyzer",
		Long: `syster parses SysML v2 and KerML sources, resolves the model's symbols
and specializations, and converts models between interchange formats`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRoot,
		// Model errors are reported as diagnostics, not as usage problems.
		SilenceUsage: true,
	}

	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.Flags()
	flags.Bool("json", false, "emit the analysis summary as JSON")
	flags.BoolP("verbose", "v", false, "show per-stage timings and library info")
	flags.Bool("no-stdlib", false, "do not load the bundled model library")
	flags.String("stdlib-path", "", "load the model library from a directory instead of the bundled one")
	flags.Bool("export-ast", false, "dump the per-file symbol tree as JSON")
	flags.String("export", "", "write the model in an interchange format (xmi|json-ld|kpar)")
	flags.String("out", "", "output path for --export; omit to write to stdout")
	flags.String("import", "", "load a model from an interchange file instead of analyzing sources")
	flags.Bool("decompile", false, "render the model back into source notation")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics to collect (0=default)")
	flags.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	flags.String("ui", "auto", "interactive progress display (auto|on|off)")
	flags.Bool("with-notes", true, "include diagnostic notes in output")
	flags.Bool("fullpath", false, "emit absolute file paths in output")

	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	rootCmd.Version = version.Version

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
