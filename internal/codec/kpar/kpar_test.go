package kpar

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
	"time"

	"syster/internal/codec"
	"syster/internal/diag"
	"syster/internal/model"
)

func sampleGraph() *model.Graph {
	pkg := &model.Element{Kind: model.KindPackage, Name: "Vehicle", QualifiedName: "Vehicle"}
	engine := &model.Element{
		Kind:          model.KindPartDef,
		Name:          "Engine",
		QualifiedName: "Vehicle::Engine",
		Supertypes:    []model.SupertypeRef{{Name: "Base::Part"}},
	}
	pkg.AddChild(engine)
	return &model.Graph{Roots: []*model.Element{pkg}, SourceFiles: []string{"vehicle.sysml"}}
}

func TestRoundTrip(t *testing.T) {
	data, err := Codec{}.Encode(sampleGraph())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	g, err := Codec{}.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if g.SymbolCount() != 2 {
		t.Fatalf("symbol count = %d, want 2", g.SymbolCount())
	}
	if len(g.SourceFiles) != 1 || g.SourceFiles[0] != "vehicle.sysml" {
		t.Fatalf("source files = %v", g.SourceFiles)
	}
	engine := g.Find("Vehicle::Engine")
	if engine == nil || engine.Kind != model.KindPartDef {
		t.Fatalf("Vehicle::Engine = %v", engine)
	}
}

func TestDeterministicEncode(t *testing.T) {
	a, err := Codec{}.Encode(sampleGraph())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Codec{}.Encode(sampleGraph())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("encoding the same graph twice produced different archives")
	}
}

func TestReadIndex(t *testing.T) {
	data, err := Codec{}.Encode(sampleGraph())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	index, err := Codec{}.ReadIndex(data)
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if len(index) != 2 {
		t.Fatalf("index has %d entries, want 2", len(index))
	}
	if index[1].QualifiedName != "Vehicle::Engine" || index[1].Kind != "PartDef" {
		t.Fatalf("index[1] = %+v", index[1])
	}
	if len(index[1].Supertypes) != 1 || index[1].Supertypes[0] != "Base::Part" {
		t.Fatalf("index[1].Supertypes = %v", index[1].Supertypes)
	}
}

func TestDecodeNotZip(t *testing.T) {
	g, err := Codec{}.Decode([]byte("this is not an archive"))
	if g != nil {
		t.Fatal("expected nil graph")
	}
	assertCode(t, err, diag.FmtMalformedInput)
}

func TestDecodeMissingManifest(t *testing.T) {
	_, err := Codec{}.Decode(buildArchive(t, map[string][]byte{
		modelEntry: []byte("<xmi:XMI></xmi:XMI>"),
	}))
	assertCode(t, err, diag.FmtMissingEntry)
}

func TestDecodeManifestListsMissingEntry(t *testing.T) {
	manifest := []byte(`{"format_version": 1, "entries": {"model.xmi": 10, "symbols.mp": 5}}`)
	_, err := Codec{}.Decode(buildArchive(t, map[string][]byte{
		manifestEntry: manifest,
	}))
	assertCode(t, err, diag.FmtMissingEntry)
}

func TestDecodeWrongVersion(t *testing.T) {
	manifest := []byte(`{"format_version": 99, "entries": {}}`)
	_, err := Codec{}.Decode(buildArchive(t, map[string][]byte{
		manifestEntry: manifest,
	}))
	assertCode(t, err, diag.FmtSchemaViolation)
}

func TestDecodeIndexMismatch(t *testing.T) {
	// Valid archive, then corrupt it by rewriting the index entry with an
	// empty list so the count no longer matches the model.
	data, err := Codec{}.Encode(sampleGraph())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	entries := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		rc.Close()
		entries[f.Name] = buf.Bytes()
	}
	entries[indexEntry] = []byte{0x90} // msgpack empty array
	_, err = Codec{}.Decode(buildArchive(t, entries))
	assertCode(t, err, diag.FmtManifestMismatch)
}

func buildArchive(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{manifestEntry, modelEntry, indexEntry} {
		data, ok := entries[name]
		if !ok {
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Modified: time.Unix(0, 0).UTC()})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

func assertCode(t *testing.T, err error, code diag.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var ferr *codec.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("error %T is not *codec.FormatError", err)
	}
	if ferr.Code != code {
		t.Fatalf("code = %v, want %v", ferr.Code, code)
	}
}
