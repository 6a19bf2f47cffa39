package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"syster/internal/driver"
	"syster/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type analyzeOutcome struct {
	result *driver.AnalysisResult
	err    error
}

// analyzeWithOptionalUI runs the analysis, rendering interactive progress
// when stdout is a terminal and no machine-readable output was requested.
func analyzeWithOptionalUI(cmd *cobra.Command, path string, opts rootOptions) (*driver.AnalysisResult, error) {
	useTUI := shouldUseTUI(opts.uiMode) && !opts.json && !opts.exportAST &&
		!opts.decompile && !opts.exportsToStdout()
	if !useTUI {
		return driver.Analyze(cmd.Context(), path, opts.driver)
	}
	return runAnalyzeWithUI(cmd.Context(), path, opts.driver)
}

func runAnalyzeWithUI(ctx context.Context, path string, opts driver.Options) (*driver.AnalysisResult, error) {
	files, err := driver.ListSourceFiles(path)
	if err != nil {
		// Let Analyze produce the proper configuration error.
		return driver.Analyze(ctx, path, opts)
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan analyzeOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Analyze(ctx, path, opts)
		outcomeCh <- analyzeOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("analyzing "+path, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
