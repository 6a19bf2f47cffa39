package sema

import (
	"strings"

	"syster/internal/diag"
	"syster/internal/model"
)

// detectCycles finds strongly connected components in the resolved
// specialization graph and reports one diagnostic per cycle, naming every
// participant exactly once. Returns the number of cycles found.
func detectCycles(ordered []*model.Element, reporter diag.Reporter) int {
	t := &tarjan{
		index:   make(map[*model.Element]int, len(ordered)),
		lowlink: make(map[*model.Element]int, len(ordered)),
		onStack: make(map[*model.Element]bool, len(ordered)),
	}
	for _, el := range ordered {
		if _, seen := t.index[el]; !seen {
			t.strongConnect(el)
		}
	}

	cycles := 0
	for _, scc := range t.sccs {
		if len(scc) == 1 && !selfEdge(scc[0]) {
			continue
		}
		cycles++
		report(scc, reporter)
	}
	return cycles
}

func selfEdge(el *model.Element) bool {
	for _, ref := range el.Supertypes {
		if ref.Resolved == el {
			return true
		}
	}
	return false
}

func report(scc []*model.Element, reporter diag.Reporter) {
	if reporter == nil {
		return
	}
	names := make([]string, len(scc))
	for i, el := range scc {
		names[i] = el.QualifiedName
	}
	if len(scc) == 1 {
		reporter.Report(diag.SemaSelfSpecialize, diag.SevError, scc[0].Span,
			"element "+names[0]+" specializes itself", nil)
		return
	}
	notes := make([]diag.Note, 0, len(scc)-1)
	for _, el := range scc[1:] {
		notes = append(notes, diag.Note{Span: el.Span, Msg: "cycle participant declared here"})
	}
	reporter.Report(diag.SemaSpecializeCycle, diag.SevError, scc[0].Span,
		"specialization cycle: "+strings.Join(names, " -> "), notes)
}

// tarjan is an iterative-enough recursion-based SCC finder; model graphs are
// shallow so recursion depth is bounded by specialization chains.
type tarjan struct {
	counter int
	index   map[*model.Element]int
	lowlink map[*model.Element]int
	onStack map[*model.Element]bool
	stack   []*model.Element
	sccs    [][]*model.Element
}

func (t *tarjan) strongConnect(el *model.Element) {
	t.index[el] = t.counter
	t.lowlink[el] = t.counter
	t.counter++
	t.stack = append(t.stack, el)
	t.onStack[el] = true

	for _, ref := range el.Supertypes {
		next := ref.Resolved
		if next == nil {
			continue
		}
		if _, seen := t.index[next]; !seen {
			t.strongConnect(next)
			t.lowlink[el] = min(t.lowlink[el], t.lowlink[next])
		} else if t.onStack[next] {
			t.lowlink[el] = min(t.lowlink[el], t.index[next])
		}
	}

	if t.lowlink[el] == t.index[el] {
		var scc []*model.Element
		for {
			n := len(t.stack) - 1
			member := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[member] = false
			scc = append(scc, member)
			if member == el {
				break
			}
		}
		// Tarjan pops in reverse discovery order; flip for stable output.
		for i, j := 0, len(scc)-1; i < j; i, j = i+1, j-1 {
			scc[i], scc[j] = scc[j], scc[i]
		}
		t.sccs = append(t.sccs, scc)
	}
}
