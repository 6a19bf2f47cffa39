package model

// Graph is an element graph detached from source files: the shape every
// interchange codec encodes and decodes. SourceFiles carries the manifest of
// files the graph was built from (may be empty for imported graphs).
type Graph struct {
	Roots       []*Element
	SourceFiles []string
}

// FromUnits assembles a graph over the top-level elements of the given
// units, in unit order. Standard-library units are excluded.
func FromUnits(units []*FileUnit) *Graph {
	g := &Graph{}
	for _, u := range units {
		if u.Stdlib {
			continue
		}
		g.Roots = append(g.Roots, u.Elements...)
		g.SourceFiles = append(g.SourceFiles, u.Path)
	}
	return g
}

// Walk visits every element in declaration order.
func (g *Graph) Walk(fn func(*Element)) {
	for _, root := range g.Roots {
		root.Walk(fn)
	}
}

// SymbolCount returns the number of symbol-kind elements in the graph.
func (g *Graph) SymbolCount() int {
	n := 0
	g.Walk(func(e *Element) {
		if e.Kind.IsSymbol() {
			n++
		}
	})
	return n
}

// Find returns the first element with the given qualified name, or nil.
func (g *Graph) Find(qualifiedName string) *Element {
	var found *Element
	g.Walk(func(e *Element) {
		if found == nil && e.QualifiedName == qualifiedName {
			found = e
		}
	})
	return found
}
