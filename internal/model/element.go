package model

import (
	"strings"

	"syster/internal/source"
)

// QualifiedSep separates namespace segments in qualified names.
const QualifiedSep = "::"

// SupertypeRef is a declared specialization (or typed-by) reference.
// Resolved stays nil until semantic analysis succeeds for this reference.
type SupertypeRef struct {
	Name     string // as written, possibly qualified
	Span     source.Span
	Resolved *Element
}

// Element is a node in the model graph: one named model item, its supertype
// references and its owned children, in declaration order. Elements are
// created during parsing, annotated once during semantic analysis and are
// treated as immutable afterwards.
type Element struct {
	Kind          Kind
	Name          string
	QualifiedName string
	Doc           string
	Span          source.Span
	Supertypes    []SupertypeRef
	Children      []*Element

	owner *Element
}

// Owner returns the owning element, or nil for top-level elements.
func (e *Element) Owner() *Element { return e.owner }

// OwnerQualifiedName returns the owner's qualified name, or "".
func (e *Element) OwnerQualifiedName() string {
	if e.owner == nil {
		return ""
	}
	return e.owner.QualifiedName
}

// AddChild appends child and wires its ownership.
func (e *Element) AddChild(child *Element) {
	child.owner = e
	e.Children = append(e.Children, child)
}

// Adopt marks e as owned by owner without appending (codec reconstruction).
func (e *Element) Adopt(owner *Element) { e.owner = owner }

// SupertypeNames returns the declared supertype names in order.
func (e *Element) SupertypeNames() []string {
	if len(e.Supertypes) == 0 {
		return nil
	}
	names := make([]string, len(e.Supertypes))
	for i, ref := range e.Supertypes {
		names[i] = ref.Name
	}
	return names
}

// Walk visits e and all descendants in declaration (pre-) order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, child := range e.Children {
		child.Walk(fn)
	}
}

// Qualify joins namespace segments into a qualified name.
func Qualify(outer, name string) string {
	if outer == "" {
		return name
	}
	return outer + QualifiedSep + name
}

// SplitQualified splits a qualified name into its segments.
func SplitQualified(qname string) []string {
	return strings.Split(qname, QualifiedSep)
}

// SimpleName returns the last segment of a qualified name.
func SimpleName(qname string) string {
	if i := strings.LastIndex(qname, QualifiedSep); i >= 0 {
		return qname[i+len(QualifiedSep):]
	}
	return qname
}

// IsQualified reports whether the name contains a namespace separator.
func IsQualified(name string) bool {
	return strings.Contains(name, QualifiedSep)
}
