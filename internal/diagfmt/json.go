package diagfmt

import (
	"encoding/json"
	"io"

	"syster/internal/diag"
	"syster/internal/source"
)

// LocationJSON is a span rendered for JSON output.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is a secondary note rendered for JSON output.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one diagnostic rendered for JSON output.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// AnalysisJSON is the machine-readable summary of one analysis run.
type AnalysisJSON struct {
	FileCount    int              `json:"file_count"`
	SymbolCount  int              `json:"symbol_count"`
	ErrorCount   int              `json:"error_count"`
	WarningCount int              `json:"warning_count"`
	Diagnostics  []DiagnosticJSON `json:"diagnostics"`
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	if fs == nil || int(span.File) >= fs.Len() {
		return loc
	}
	f := fs.Get(span.File)
	loc.File = f.FormatPath(opts.PathMode.formatMode(), fs.BaseDir())
	if opts.IncludePositions {
		start, end := fs.Resolve(span)
		loc.StartLine = start.Line
		loc.StartCol = start.Col
		loc.EndLine = end.Line
		loc.EndCol = end.Col
	}
	return loc
}

// Diagnostics converts bag items into their JSON form. The bag is expected
// to be sorted already.
func Diagnostics(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) []DiagnosticJSON {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	out := make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.Lower(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{
					Message:  n.Msg,
					Location: makeLocation(n.Span, fs, opts),
				})
			}
		}
		out = append(out, dj)
	}
	return out
}

// WriteAnalysisJSON writes the full analysis summary to w.
func WriteAnalysisJSON(w io.Writer, summary AnalysisJSON) error {
	if summary.Diagnostics == nil {
		summary.Diagnostics = []DiagnosticJSON{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
