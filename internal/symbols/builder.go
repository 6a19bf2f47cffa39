package symbols

import (
	"fmt"

	"syster/internal/diag"
	"syster/internal/model"
)

// Build walks the given units in order and registers every symbol-kind
// element under its qualified name. Standard-library units must come first
// so that user files colliding with library names get the diagnostic, not
// the other way around.
//
// Exactly one duplicate-definition diagnostic is emitted per colliding
// element; the first-seen definition wins in the table. Qualification is
// positional and independent of declaration order across files.
func Build(units []*model.FileUnit, reporter diag.Reporter) *Table {
	table := NewTable()
	for _, unit := range units {
		unit.Walk(func(el *model.Element) {
			if !el.Kind.IsSymbol() {
				return
			}
			prev, ok := table.Insert(el)
			if ok {
				return
			}
			if reporter != nil {
				d := diag.New(diag.SevError, diag.SemaDuplicateSymbol, el.Span,
					fmt.Sprintf("duplicate definition of %q", el.QualifiedName))
				d = d.WithNote(prev.Span, "previously defined here")
				reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
			}
		})
	}
	return table
}
