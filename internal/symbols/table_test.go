package symbols_test

import (
	"testing"

	"syster/internal/diag"
	"syster/internal/lexer"
	"syster/internal/model"
	"syster/internal/parser"
	"syster/internal/source"
	"syster/internal/symbols"
)

func parseUnits(t *testing.T, inputs ...string) ([]*model.FileUnit, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	units := make([]*model.FileUnit, 0, len(inputs))
	for i, input := range inputs {
		id := fs.AddVirtual(testName(i), []byte(input))
		file := fs.Get(id)
		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		unit := parser.ParseFile(fs, file, lx, parser.Options{Reporter: reporter})
		unit.Bag = bag
		units = append(units, unit)
	}
	return units, fs
}

func testName(i int) string {
	return string(rune('a'+i)) + ".sysml"
}

func TestBuildRegistersQualifiedNames(t *testing.T) {
	units, _ := parseUnits(t, "package Vehicle { part def Engine; part engine : Engine; }")
	bag := diag.NewBag(16)
	table := symbols.Build(units, diag.BagReporter{Bag: bag})

	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	for _, qname := range []string{"Vehicle", "Vehicle::Engine", "Vehicle::engine"} {
		if _, ok := table.Lookup(qname); !ok {
			t.Errorf("missing symbol %q", qname)
		}
	}
	if table.Len() != 3 {
		t.Errorf("expected 3 symbols, got %d", table.Len())
	}
}

func TestBuildSkipsImports(t *testing.T) {
	units, _ := parseUnits(t, "package P { import Base::*; }")
	table := symbols.Build(units, nil)
	if table.Len() != 1 {
		t.Errorf("imports must not register symbols; got %d", table.Len())
	}
}

func TestDuplicateYieldsExactlyOneDiagnostic(t *testing.T) {
	units, _ := parseUnits(t,
		"package P { part def X; }",
		"package Q { part def Y; }",
	)
	// Same qualified name in one file.
	dup, _ := parseUnits(t, "package P2 { part def X; part def X; }")
	bag := diag.NewBag(16)
	symbols.Build(dup, diag.BagReporter{Bag: bag})
	if n := bag.CountBySeverity(diag.SevError); n != 1 {
		t.Errorf("expected exactly 1 duplicate diagnostic, got %d", n)
	}
	if bag.Items()[0].Code != diag.SemaDuplicateSymbol {
		t.Errorf("expected SemaDuplicateSymbol, got %v", bag.Items()[0].Code)
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Error("duplicate diagnostic should carry a note pointing at the first definition")
	}

	// Distinct qualified names across files do not collide.
	bag = diag.NewBag(16)
	symbols.Build(units, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestFirstSeenDefinitionWins(t *testing.T) {
	units, _ := parseUnits(t,
		"package P { part def X; }",
		"package P { item def Y; }",
	)
	bag := diag.NewBag(16)
	table := symbols.Build(units, diag.BagReporter{Bag: bag})

	el, ok := table.Lookup("P")
	if !ok {
		t.Fatal("P should be registered")
	}
	// The first unit's package element must remain the resolved one.
	if el.Span.File != units[0].FileID {
		t.Error("first-seen definition should win in the table")
	}
	if !bag.HasErrors() {
		t.Error("expected a duplicate diagnostic for the second P")
	}
}
