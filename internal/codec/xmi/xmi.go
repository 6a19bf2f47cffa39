// Package xmi implements the XMI interchange codec: a fixed XML schema
// mapping element kinds onto sysml:* elements under an xmi:XMI root.
package xmi

import (
	"bytes"
	"encoding/xml"
	"io"

	"syster/internal/codec"
	"syster/internal/diag"
	"syster/internal/model"
)

const (
	nsXMI   = "http://www.omg.org/spec/XMI/20131001"
	nsSysML = "http://www.omg.org/spec/SysML/20240201"

	rootName           = "XMI"
	specializationName = "specialization"
	sourceEntryName    = "sourceFile"
)

// Codec is the XMI codec. The zero value is ready to use.
type Codec struct{}

// Format returns codec.FormatXMI.
func (Codec) Format() codec.Format { return codec.FormatXMI }

// Encode renders the graph as a well-formed XMI document:
//
//	<xmi:XMI xmlns:xmi="..." xmlns:sysml="...">
//	  <xmi:sourceFile path="a.sysml"/>
//	  <sysml:Package xmi:id="Vehicle" name="Vehicle">
//	    <sysml:PartDef xmi:id="Vehicle::Engine" name="Engine">
//	      <sysml:specialization general="Base::Part"/>
//	    </sysml:PartDef>
//	  </sysml:Package>
//	</xmi:XMI>
func (Codec) Encode(g *model.Graph) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "xmi:" + rootName},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:xmi"}, Value: nsXMI},
			{Name: xml.Name{Local: "xmlns:sysml"}, Value: nsSysML},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}
	for _, path := range g.SourceFiles {
		entry := xml.StartElement{
			Name: xml.Name{Local: "xmi:" + sourceEntryName},
			Attr: []xml.Attr{{Name: xml.Name{Local: "path"}, Value: path}},
		}
		if err := enc.EncodeToken(entry); err != nil {
			return nil, err
		}
		if err := enc.EncodeToken(entry.End()); err != nil {
			return nil, err
		}
	}
	for _, el := range g.Roots {
		if err := encodeElement(enc, el); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encodeElement(enc *xml.Encoder, el *model.Element) error {
	attrs := []xml.Attr{
		{Name: xml.Name{Local: "xmi:id"}, Value: elementID(el)},
		{Name: xml.Name{Local: "name"}, Value: el.Name},
	}
	if el.Doc != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "doc"}, Value: el.Doc})
	}
	start := xml.StartElement{Name: xml.Name{Local: "sysml:" + el.Kind.String()}, Attr: attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, ref := range el.Supertypes {
		spec := xml.StartElement{
			Name: xml.Name{Local: "sysml:" + specializationName},
			Attr: []xml.Attr{{Name: xml.Name{Local: "general"}, Value: ref.Name}},
		}
		if err := enc.EncodeToken(spec); err != nil {
			return err
		}
		if err := enc.EncodeToken(spec.End()); err != nil {
			return err
		}
	}
	for _, child := range el.Children {
		if err := encodeElement(enc, child); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Imports carry their target in Name and have no stable qualified name.
func elementID(el *model.Element) string {
	if el.Kind == model.KindImport {
		return "import " + el.Name
	}
	return el.QualifiedName
}

// Decode parses an XMI document back into an element graph. Any deviation
// from the expected schema (wrong root, unknown element kind, missing
// attributes) yields a *codec.FormatError and no partial graph.
func (c Codec) Decode(data []byte) (*model.Graph, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	root, err := nextStart(dec)
	if err != nil {
		return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "not well-formed XML", err)
	}
	if root == nil || root.Name.Local != rootName {
		return nil, codec.Errorf(c.Format(), diag.FmtSchemaViolation, "expected xmi:XMI document root")
	}

	g := &model.Graph{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, codec.Errorf(c.Format(), diag.FmtMalformedInput, "unexpected end of document")
		}
		if err != nil {
			return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "not well-formed XML", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == sourceEntryName {
				g.SourceFiles = append(g.SourceFiles, attr(t, "path"))
				if err := dec.Skip(); err != nil {
					return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "bad source entry", err)
				}
				continue
			}
			el, err := c.decodeElement(dec, t, nil)
			if err != nil {
				return nil, err
			}
			g.Roots = append(g.Roots, el)
		case xml.EndElement:
			if t.Name.Local == rootName {
				return g, nil
			}
		}
	}
}

func (c Codec) decodeElement(dec *xml.Decoder, start xml.StartElement, owner *model.Element) (*model.Element, error) {
	kind, ok := model.KindFromString(start.Name.Local)
	if !ok {
		return nil, codec.Errorf(c.Format(), diag.FmtUnknownKind,
			"unknown element kind %q", start.Name.Local)
	}

	el := &model.Element{Kind: kind}
	if kind == model.KindImport {
		el.Name = attr(start, "name")
	} else {
		el.Name = attr(start, "name")
		el.QualifiedName = attr(start, "xmi:id")
		if el.QualifiedName == "" {
			el.QualifiedName = attr(start, "id")
		}
		if el.Name == "" || el.QualifiedName == "" {
			return nil, codec.Errorf(c.Format(), diag.FmtSchemaViolation,
				"element %q is missing name or xmi:id", start.Name.Local)
		}
	}
	el.Doc = attr(start, "doc")
	if owner != nil {
		el.Adopt(owner)
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "not well-formed XML", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == specializationName {
				general := attr(t, "general")
				if general == "" {
					return nil, codec.Errorf(c.Format(), diag.FmtSchemaViolation, "specialization without general")
				}
				el.Supertypes = append(el.Supertypes, model.SupertypeRef{Name: general})
				if err := dec.Skip(); err != nil {
					return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "bad specialization", err)
				}
				continue
			}
			child, err := c.decodeElement(dec, t, el)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)
		case xml.EndElement:
			return el, nil
		}
	}
}

func nextStart(dec *xml.Decoder) (*xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return &start, nil
		}
	}
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name || (a.Name.Space != "" && a.Name.Space+":"+a.Name.Local == name) {
			return a.Value
		}
	}
	return ""
}
