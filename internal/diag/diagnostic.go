package diag

import "syster/internal/source"

// Note attaches secondary context to a diagnostic, e.g. the location of a
// previous definition.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the central finding record shared by all pipeline phases.
// It is immutable once produced.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// New constructs a diagnostic without emitting it anywhere.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
	}
}

// WithNote returns a copy of the diagnostic with an extra note appended.
func (d Diagnostic) WithNote(span source.Span, msg string) Diagnostic {
	notes := make([]Note, 0, len(d.Notes)+1)
	notes = append(notes, d.Notes...)
	notes = append(notes, Note{Span: span, Msg: msg})
	d.Notes = notes
	return d
}
