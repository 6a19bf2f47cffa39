package sema

import (
	"fmt"

	"syster/internal/diag"
	"syster/internal/model"
	"syster/internal/symbols"
)

// Result carries the outcome of semantic analysis.
type Result struct {
	// ResolvedRefs is the number of supertype references that resolved.
	ResolvedRefs int
	// UnresolvedRefs is the number that did not.
	UnresolvedRefs int
	// Cycles is the number of specialization cycles found.
	Cycles int
}

// Analyze resolves supertype references across the given units against the
// symbol table and detects specialization cycles. Resolution happens as a
// separate post-parse pass over the complete table, so forward references
// across files and namespaces work regardless of declaration order.
//
// Unresolved references yield an error diagnostic and stay unresolved;
// analysis always continues. Diagnostics for standard-library units are
// suppressed (trusted input).
func Analyze(table *symbols.Table, units []*model.FileUnit, reporter diag.Reporter) Result {
	var res Result
	var ordered []*model.Element

	for _, unit := range units {
		unit.Walk(func(el *model.Element) {
			if !el.Kind.IsSymbol() {
				return
			}
			ordered = append(ordered, el)
			for i := range el.Supertypes {
				ref := &el.Supertypes[i]
				target, ok := resolveRef(table, el, ref.Name)
				if !ok {
					res.UnresolvedRefs++
					if reporter != nil && !unit.Stdlib {
						reporter.Report(diag.SemaUnresolvedSymbol, diag.SevError, ref.Span,
							fmt.Sprintf("cannot resolve supertype %q of %q", ref.Name, el.QualifiedName), nil)
					}
					continue
				}
				ref.Resolved = target
				res.ResolvedRefs++
			}
		})
	}

	res.Cycles = detectCycles(ordered, reporter)
	return res
}

// resolveRef resolves name against the table: exact qualified lookup first,
// then the name re-qualified within each enclosing namespace of el, from the
// innermost outwards.
func resolveRef(table *symbols.Table, el *model.Element, name string) (*model.Element, bool) {
	if target, ok := table.Lookup(name); ok {
		return target, true
	}
	for owner := el.Owner(); owner != nil; owner = owner.Owner() {
		if target, ok := table.Lookup(model.Qualify(owner.QualifiedName, name)); ok {
			return target, true
		}
	}
	return nil, false
}
