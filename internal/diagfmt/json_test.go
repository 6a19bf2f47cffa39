package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"syster/internal/diag"
	"syster/internal/lexer"
	"syster/internal/model"
	"syster/internal/parser"
	"syster/internal/source"
)

func TestDiagnosticsJSON(t *testing.T) {
	bag, fs, _ := testBag(t)
	out := Diagnostics(bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true})
	if len(out) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(out))
	}
	d := out[0]
	if d.Severity != "error" || d.Code != "SEM3002" {
		t.Errorf("severity/code = %q/%q", d.Severity, d.Code)
	}
	if d.Location.File != "m.sysml" || d.Location.StartLine != 2 || d.Location.StartCol != 24 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "searched from package M" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestDiagnosticsJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.sysml", []byte("x"))
	bag := diag.NewBag(16)
	for i := 0; i < 5; i++ {
		bag.Add(diag.New(diag.SevWarning, diag.SynUnexpectedToken,
			source.Span{File: id}, "w"))
	}
	if got := Diagnostics(bag, fs, JSONOpts{Max: 2}); len(got) != 2 {
		t.Errorf("got %d diagnostics, want 2", len(got))
	}
}

func TestWriteAnalysisJSON(t *testing.T) {
	var sb strings.Builder
	err := WriteAnalysisJSON(&sb, AnalysisJSON{
		FileCount:   1,
		SymbolCount: 2,
	})
	if err != nil {
		t.Fatalf("WriteAnalysisJSON: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"file_count", "symbol_count", "error_count", "warning_count", "diagnostics"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %s", key, sb.String())
		}
	}
	if decoded["diagnostics"] == nil {
		t.Error("diagnostics should encode as [] rather than null")
	}
}

func TestSymbolsDump(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.sysml", []byte("package M { part def Engine :> Base; part def Base; }"))
	file := fs.Get(id)
	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	unit := parser.ParseFile(fs, file, lx, parser.Options{Reporter: reporter})
	unit.Bag = bag

	stdlibUnit := &model.FileUnit{Path: "stdlib/Base.sysml", Stdlib: true}

	files := Symbols([]*model.FileUnit{stdlibUnit, unit}, fs, PathModeAuto)
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1 (stdlib excluded)", len(files))
	}
	syms := files[0].Symbols
	if len(syms) != 3 {
		t.Fatalf("got %d symbols, want 3", len(syms))
	}
	if syms[0].QualifiedName != "M" || syms[0].Kind != "Package" {
		t.Errorf("first symbol = %+v", syms[0])
	}
	engine := syms[1]
	if engine.QualifiedName != "M::Engine" || engine.Owner != "M" {
		t.Errorf("engine = %+v", engine)
	}
	if len(engine.Supertypes) != 1 || engine.Supertypes[0] != "Base" {
		t.Errorf("engine supertypes = %v", engine.Supertypes)
	}
	if engine.StartLine != 1 || engine.StartCol == 0 {
		t.Errorf("engine position = %d:%d", engine.StartLine, engine.StartCol)
	}
}
