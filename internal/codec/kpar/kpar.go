// Package kpar implements the KPAR interchange codec: a zip archive holding
// the model as XMI plus a manifest and a msgpack symbol index for cheap
// inspection without a full decode.
package kpar

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"syster/internal/codec"
	"syster/internal/codec/xmi"
	"syster/internal/diag"
	"syster/internal/model"
)

// FormatVersion is bumped whenever the archive layout changes.
const FormatVersion = 1

// Archive entry names. The manifest's entry map must list exactly these.
const (
	manifestEntry = "manifest.json"
	modelEntry    = "model.xmi"
	indexEntry    = "symbols.mp"
)

// Manifest describes the archive contents so a reader can validate the
// archive before touching the model payload.
type Manifest struct {
	FormatVersion int            `json:"format_version"`
	Sources       []string       `json:"sources,omitempty"`
	SymbolCount   int            `json:"symbol_count"`
	Entries       map[string]int `json:"entries"`
}

// IndexEntry is one row of the msgpack symbol index.
type IndexEntry struct {
	QualifiedName string   `msgpack:"qname"`
	Kind          string   `msgpack:"kind"`
	Supertypes    []string `msgpack:"supertypes,omitempty"`
}

// Codec is the KPAR codec. The zero value is ready to use.
type Codec struct{}

// Format returns codec.FormatKPAR.
func (Codec) Format() codec.Format { return codec.FormatKPAR }

// Encode writes the archive. Entry order, timestamps and payload bytes are
// all fixed, so encoding the same graph twice yields identical archives.
func (c Codec) Encode(g *model.Graph) ([]byte, error) {
	modelData, err := xmi.Codec{}.Encode(g)
	if err != nil {
		return nil, err
	}
	indexData, err := encodeIndex(g)
	if err != nil {
		return nil, err
	}
	manifest := Manifest{
		FormatVersion: FormatVersion,
		Sources:       g.SourceFiles,
		SymbolCount:   g.SymbolCount(),
		Entries: map[string]int{
			modelEntry: len(modelData),
			indexEntry: len(indexData),
		},
	}
	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct {
		name string
		data []byte
	}{
		{manifestEntry, manifestData},
		{modelEntry, modelData},
		{indexEntry, indexData},
	}
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: time.Unix(0, 0).UTC(),
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeIndex(g *model.Graph) ([]byte, error) {
	var index []IndexEntry
	g.Walk(func(el *model.Element) {
		if !el.Kind.IsSymbol() {
			return
		}
		index = append(index, IndexEntry{
			QualifiedName: el.QualifiedName,
			Kind:          el.Kind.String(),
			Supertypes:    el.SupertypeNames(),
		})
	})
	return msgpack.Marshal(index)
}

// Decode validates the archive against its manifest and reconstructs the
// graph from the embedded XMI payload.
func (c Codec) Decode(data []byte) (*model.Graph, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "not a zip archive", err)
	}

	manifest, err := c.readManifest(zr)
	if err != nil {
		return nil, err
	}
	if manifest.FormatVersion != FormatVersion {
		return nil, codec.Errorf(c.Format(), diag.FmtSchemaViolation,
			"unsupported format version %d (want %d)", manifest.FormatVersion, FormatVersion)
	}
	for name := range manifest.Entries {
		if findEntry(zr, name) == nil {
			return nil, codec.Errorf(c.Format(), diag.FmtMissingEntry,
				"manifest lists %q but archive has no such entry", name)
		}
	}
	if _, ok := manifest.Entries[modelEntry]; !ok {
		return nil, codec.Errorf(c.Format(), diag.FmtMissingEntry,
			"manifest does not list %q", modelEntry)
	}

	modelData, err := c.readEntry(zr, modelEntry)
	if err != nil {
		return nil, err
	}
	g, err := (xmi.Codec{}).Decode(modelData)
	if err != nil {
		return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "bad model payload", err)
	}
	g.SourceFiles = manifest.Sources

	index, err := c.readIndex(zr)
	if err != nil {
		return nil, err
	}
	if len(index) != g.SymbolCount() {
		return nil, codec.Errorf(c.Format(), diag.FmtManifestMismatch,
			"symbol index has %d entries, model has %d symbols", len(index), g.SymbolCount())
	}
	if manifest.SymbolCount != g.SymbolCount() {
		return nil, codec.Errorf(c.Format(), diag.FmtManifestMismatch,
			"manifest declares %d symbols, model has %d", manifest.SymbolCount, g.SymbolCount())
	}
	return g, nil
}

// ReadIndex extracts just the symbol index without decoding the model.
func (c Codec) ReadIndex(data []byte) ([]IndexEntry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "not a zip archive", err)
	}
	return c.readIndex(zr)
}

func (c Codec) readManifest(zr *zip.Reader) (*Manifest, error) {
	data, err := c.readEntry(zr, manifestEntry)
	if err != nil {
		return nil, err
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "bad manifest", err)
	}
	return &manifest, nil
}

func (c Codec) readIndex(zr *zip.Reader) ([]IndexEntry, error) {
	data, err := c.readEntry(zr, indexEntry)
	if err != nil {
		return nil, err
	}
	var index []IndexEntry
	if err := msgpack.Unmarshal(data, &index); err != nil {
		return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "bad symbol index", err)
	}
	return index, nil
}

func (c Codec) readEntry(zr *zip.Reader, name string) ([]byte, error) {
	f := findEntry(zr, name)
	if f == nil {
		return nil, codec.Errorf(c.Format(), diag.FmtMissingEntry, "archive has no %q entry", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "cannot open "+name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, codec.Wrap(c.Format(), diag.FmtMalformedInput, "cannot read "+name, err)
	}
	return data, nil
}

func findEntry(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
