package symbols

import (
	"syster/internal/model"
)

// Table maps qualified names onto elements for one analysis session.
// Duplicate qualified names keep the first-seen definition; later ones are
// reported and ignored for lookup purposes.
type Table struct {
	byName map[string]*model.Element
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{byName: make(map[string]*model.Element)}
}

// Lookup returns the element registered under the exact qualified name.
func (t *Table) Lookup(qualifiedName string) (*model.Element, bool) {
	el, ok := t.byName[qualifiedName]
	return el, ok
}

// Insert registers el under its qualified name. If the name is taken the
// table is unchanged and the existing element is returned with ok=false.
func (t *Table) Insert(el *model.Element) (existing *model.Element, ok bool) {
	if prev, taken := t.byName[el.QualifiedName]; taken {
		return prev, false
	}
	t.byName[el.QualifiedName] = el
	return nil, true
}

// Len returns the number of registered symbols.
func (t *Table) Len() int { return len(t.byName) }
