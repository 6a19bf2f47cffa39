package model

import (
	"syster/internal/diag"
	"syster/internal/source"
)

// FileUnit is the parse result for one source file: its top-level elements
// in declaration order plus the diagnostics produced while parsing it.
type FileUnit struct {
	Path     string
	FileID   source.FileID
	Stdlib   bool
	Elements []*Element
	Bag      *diag.Bag
}

// Walk visits every element of the unit in declaration order.
func (u *FileUnit) Walk(fn func(*Element)) {
	for _, el := range u.Elements {
		el.Walk(fn)
	}
}

// SymbolCount returns the number of symbol-kind elements in the unit.
func (u *FileUnit) SymbolCount() int {
	n := 0
	u.Walk(func(e *Element) {
		if e.Kind.IsSymbol() {
			n++
		}
	})
	return n
}
