// Package decompile renders a model graph back into SysML textual notation.
// The output is canonical rather than faithful: comments and layout from the
// original sources are gone, declarations keep their model order.
package decompile

import (
	"strconv"
	"strings"

	"syster/internal/model"
	"syster/internal/token"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

// Graph renders every root element of the graph, separated by blank lines.
func Graph(g *model.Graph, opt Options) []byte {
	w := NewWriter(opt)
	for i, el := range g.Roots {
		if i > 0 {
			w.BlankLine()
		}
		printElement(w, el)
	}
	w.Newline()
	return w.Bytes()
}

// Element renders a single element subtree.
func Element(el *model.Element, opt Options) []byte {
	w := NewWriter(opt)
	printElement(w, el)
	w.Newline()
	return w.Bytes()
}

func printElement(w *Writer, el *model.Element) {
	if el.Kind == model.KindImport {
		w.WriteString("import " + el.Name + ";")
		w.Newline()
		return
	}

	w.WriteString(keyword(el.Kind))
	w.WriteString(" ")
	w.WriteString(sourceName(el.Name))
	printSupertypes(w, el)

	if el.Doc == "" && len(el.Children) == 0 {
		w.WriteString(";")
		w.Newline()
		return
	}

	w.WriteString(" {")
	w.Newline()
	w.IndentPush()
	if el.Doc != "" {
		w.WriteString("doc " + strconv.Quote(el.Doc) + ";")
		w.Newline()
	}
	for _, child := range el.Children {
		printElement(w, child)
	}
	w.IndentPop()
	w.WriteString("}")
	w.Newline()
}

// Usages spell their first reference as the typed-by clause and the rest as
// specializations; definitions only ever specialize.
func printSupertypes(w *Writer, el *model.Element) {
	refs := el.Supertypes
	if len(refs) == 0 {
		return
	}
	if el.Kind.IsUsage() {
		w.WriteString(" : " + refs[0].Name)
		refs = refs[1:]
		if len(refs) == 0 {
			return
		}
	}
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.Name
	}
	w.WriteString(" :> " + strings.Join(names, ", "))
}

func keyword(k model.Kind) string {
	switch k {
	case model.KindPackage:
		return "package"
	case model.KindPartDef:
		return "part def"
	case model.KindItemDef:
		return "item def"
	case model.KindActionDef:
		return "action def"
	case model.KindPortDef:
		return "port def"
	case model.KindAttributeDef:
		return "attribute def"
	case model.KindConnectionDef:
		return "connection def"
	case model.KindInterfaceDef:
		return "interface def"
	case model.KindRequirementDef:
		return "requirement def"
	case model.KindClass:
		return "class"
	case model.KindClassifier:
		return "classifier"
	case model.KindDataType:
		return "datatype"
	case model.KindPartUsage:
		return "part"
	case model.KindItemUsage:
		return "item"
	case model.KindActionUsage:
		return "action"
	case model.KindPortUsage:
		return "port"
	case model.KindAttributeUsage:
		return "attribute"
	case model.KindConnectionUsage:
		return "connection"
	case model.KindRequirementUsage:
		return "requirement"
	case model.KindReferenceUsage:
		return "ref"
	default:
		return "package"
	}
}

// sourceName quotes names that the lexer would not accept as plain
// identifiers ("unrestricted names" in the notation).
func sourceName(name string) string {
	if isPlainIdent(name) {
		return name
	}
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range name {
		if r == '\'' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('\'')
	return sb.String()
}

func isPlainIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	if _, isKw := token.LookupKeyword(name); isKw {
		return false
	}
	return true
}
