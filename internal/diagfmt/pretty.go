package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"syster/internal/diag"
	"syster/internal/source"
)

// Pretty renders diagnostics for humans. The bag is expected to be sorted.
// Each diagnostic prints as:
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	    <source line>
//	    <caret underline>
//
// followed by its notes in the same shape when ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.printDiagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p prettyPrinter) printDiagnostic(d diag.Diagnostic) {
	p.printHeading(d.Severity, d.Code.ID(), d.Message, d.Primary)
	p.printContext(d.Primary)
	if !p.opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		p.printHeading(diag.SevInfo, "note", note.Msg, note.Span)
		p.printContext(note.Span)
	}
}

func (p prettyPrinter) printHeading(sev diag.Severity, label, msg string, span source.Span) {
	fmt.Fprintf(p.w, "%s: %s %s: %s\n",
		p.location(span), p.severity(sev), label, msg)
}

func (p prettyPrinter) location(span source.Span) string {
	if p.fs == nil || int(span.File) >= p.fs.Len() {
		return "<unknown>"
	}
	f := p.fs.Get(span.File)
	start, _ := p.fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d",
		f.FormatPath(p.opts.PathMode.formatMode(), p.fs.BaseDir()), start.Line, start.Col)
}

func (p prettyPrinter) severity(sev diag.Severity) string {
	label := sev.Lower()
	if !p.opts.Color {
		return label
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(label)
	default:
		return color.New(color.FgCyan).Sprint(label)
	}
}

// printContext shows the first source line of the span with a caret
// underline. Display columns are measured with runewidth so the underline
// stays aligned under tabs and wide runes.
func (p prettyPrinter) printContext(span source.Span) {
	if p.fs == nil || span.Empty() || int(span.File) >= p.fs.Len() {
		return
	}
	f := p.fs.Get(span.File)
	start, end := p.fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}

	fmt.Fprintf(p.w, "    %s\n", expandTabs(line))

	underlineEnd := end.Col
	if end.Line != start.Line {
		lineLen, err := safecast.Conv[uint32](len([]rune(line)))
		if err != nil {
			return
		}
		underlineEnd = lineLen + 1
	}
	marker := caretLine(line, start.Col, underlineEnd)
	if p.opts.Color {
		marker = color.New(color.FgGreen, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(p.w, "    %s\n", marker)
}

const tabWidth = 4

func expandTabs(line string) string {
	return strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
}

// caretLine builds "   ^~~~" padding and underline in display columns.
// startCol and endCol are 1-based byte-rune columns on the logical line.
func caretLine(line string, startCol, endCol uint32) string {
	if endCol <= startCol {
		endCol = startCol + 1
	}
	runes := []rune(line)
	var pad, width int
	for i, r := range runes {
		col := uint32(i + 1)
		rw := runewidth.RuneWidth(r)
		if r == '\t' {
			rw = tabWidth
		}
		if col < startCol {
			pad += rw
		} else if col < endCol {
			width += rw
		}
	}
	// Span may point past the end of the line (e.g. EOF diagnostics).
	if width == 0 {
		width = 1
	}
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteByte('^')
	if width > 1 {
		sb.WriteString(strings.Repeat("~", width-1))
	}
	return sb.String()
}
