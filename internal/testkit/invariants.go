// Package testkit provides invariant checkers shared by tests across
// packages. Not imported by production code.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"syster/internal/model"
	"syster/internal/source"
)

// CheckUnitInvariants runs structural invariants on a parsed unit:
//  1. every element span lies within the file content bounds
//  2. ownership links match the child lists
//  3. qualified names extend the owner's qualified name
func CheckUnitInvariants(unit *model.FileUnit, sf *source.File) error {
	if unit == nil || sf == nil {
		return fmt.Errorf("nil unit or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	for _, root := range unit.Elements {
		if root.Owner() != nil {
			return fmt.Errorf("top-level element %q has an owner", root.QualifiedName)
		}
		var firstErr error
		root.Walk(func(el *model.Element) {
			if firstErr != nil {
				return
			}
			firstErr = checkElement(el, lenContent, sf.ID)
		})
		if firstErr != nil {
			return firstErr
		}
	}
	return nil
}

func checkElement(el *model.Element, lenContent uint32, fileID source.FileID) error {
	if !el.Span.Empty() {
		if el.Span.File != fileID {
			return fmt.Errorf("%q: span points to file %d, want %d", el.QualifiedName, el.Span.File, fileID)
		}
		if el.Span.End < el.Span.Start || el.Span.End > lenContent {
			return fmt.Errorf("%q: span %v out of bounds (len %d)", el.QualifiedName, el.Span, lenContent)
		}
	}
	for _, child := range el.Children {
		if child.Owner() != el {
			return fmt.Errorf("%q: child %q has wrong owner", el.QualifiedName, child.Name)
		}
		if child.Kind.IsSymbol() && child.QualifiedName != model.Qualify(el.QualifiedName, child.Name) {
			return fmt.Errorf("%q: child qualified name %q does not extend owner",
				el.QualifiedName, child.QualifiedName)
		}
	}
	return nil
}
