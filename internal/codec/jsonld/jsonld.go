// Package jsonld implements the JSON-LD interchange codec: a flat @graph
// array of nodes keyed by qualified name, with ownership expressed through
// an "owner" property rather than nesting.
package jsonld

import (
	"bytes"
	"encoding/json"

	"syster/internal/codec"
	"syster/internal/diag"
	"syster/internal/model"
)

const contextIRI = "https://www.omg.org/spec/SysML/20240201/context"

// Codec is the JSON-LD codec. The zero value is ready to use.
type Codec struct{}

// Format returns codec.FormatJSONLD.
func (Codec) Format() codec.Format { return codec.FormatJSONLD }

type document struct {
	Context string   `json:"@context,omitempty"`
	Sources []string `json:"sourceFiles,omitempty"`
	Graph   []node   `json:"@graph"`
}

// node is one flat graph entry. Unknown properties are tolerated on decode.
type node struct {
	Type       string   `json:"@type"`
	ID         string   `json:"@id"`
	Name       string   `json:"name"`
	Owner      string   `json:"owner,omitempty"`
	SuperTypes []string `json:"superTypes,omitempty"`
	Doc        string   `json:"doc,omitempty"`
}

// Encode flattens the graph into pre-order node records. Children always
// appear after their owner, so decoding never sees a dangling owner.
func (Codec) Encode(g *model.Graph) ([]byte, error) {
	doc := document{Context: contextIRI, Sources: g.SourceFiles}
	g.Walk(func(el *model.Element) {
		doc.Graph = append(doc.Graph, node{
			Type:       el.Kind.String(),
			ID:         nodeID(el),
			Name:       el.Name,
			Owner:      el.OwnerQualifiedName(),
			SuperTypes: el.SupertypeNames(),
			Doc:        el.Doc,
		})
	})
	if doc.Graph == nil {
		doc.Graph = []node{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nodeID(el *model.Element) string {
	if el.Kind == model.KindImport {
		return model.Qualify(el.OwnerQualifiedName(), "import "+el.Name)
	}
	return el.QualifiedName
}

// Decode accepts either a full document ({"@graph": [...]}) or a bare node
// array. Nodes may arrive in any order; ownership is stitched up afterwards.
func (c Codec) Decode(data []byte) (*model.Graph, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "not valid JSON-LD", err)
	}

	g := &model.Graph{SourceFiles: doc.Sources}
	byID := make(map[string]*model.Element, len(doc.Graph))
	for i, n := range doc.Graph {
		if n.Type == "" || n.ID == "" {
			return nil, codec.Errorf(c.Format(), diag.FmtSchemaViolation,
				"node %d is missing @type or @id", i)
		}
		kind, ok := model.KindFromString(n.Type)
		if !ok {
			return nil, codec.Errorf(c.Format(), diag.FmtUnknownKind,
				"unknown element kind %q", n.Type)
		}
		if _, taken := byID[n.ID]; taken {
			return nil, codec.Errorf(c.Format(), diag.FmtSchemaViolation,
				"duplicate @id %q", n.ID)
		}
		el := &model.Element{Kind: kind, Name: n.Name, Doc: n.Doc}
		if kind != model.KindImport {
			el.QualifiedName = n.ID
		}
		for _, super := range n.SuperTypes {
			el.Supertypes = append(el.Supertypes, model.SupertypeRef{Name: super})
		}
		byID[n.ID] = el
	}
	for i, n := range doc.Graph {
		el := byID[n.ID]
		if n.Owner == "" {
			g.Roots = append(g.Roots, el)
			continue
		}
		owner, ok := byID[n.Owner]
		if !ok {
			return nil, codec.Errorf(c.Format(), diag.FmtSchemaViolation,
				"node %d names unknown owner %q", i, n.Owner)
		}
		owner.AddChild(el)
	}
	return g, nil
}

func parseDocument(data []byte) (document, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var doc document
		err := json.Unmarshal(trimmed, &doc.Graph)
		return doc, err
	}
	var doc document
	err := json.Unmarshal(data, &doc)
	return doc, err
}
