package parser_test

import (
	"testing"

	"syster/internal/diag"
	"syster/internal/lexer"
	"syster/internal/model"
	"syster/internal/parser"
	"syster/internal/source"
	"syster/internal/testkit"
)

func parseString(t *testing.T, input string) (*model.FileUnit, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sysml", []byte(input))
	file := fs.Get(id)
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	unit := parser.ParseFile(fs, file, lx, parser.Options{Reporter: reporter})
	unit.Bag = bag
	return unit, bag
}

func TestParsePackageWithPartDef(t *testing.T) {
	unit, bag := parseString(t, "package Vehicle { part def Engine; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(unit.Elements) != 1 {
		t.Fatalf("expected 1 top-level element, got %d", len(unit.Elements))
	}
	pkg := unit.Elements[0]
	if pkg.Kind != model.KindPackage || pkg.QualifiedName != "Vehicle" {
		t.Errorf("unexpected package element: %v %q", pkg.Kind, pkg.QualifiedName)
	}
	if len(pkg.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(pkg.Children))
	}
	engine := pkg.Children[0]
	if engine.Kind != model.KindPartDef || engine.QualifiedName != "Vehicle::Engine" {
		t.Errorf("unexpected child: %v %q", engine.Kind, engine.QualifiedName)
	}
	if unit.SymbolCount() != 2 {
		t.Errorf("expected 2 symbols, got %d", unit.SymbolCount())
	}
}

func TestParseSupertypes(t *testing.T) {
	unit, bag := parseString(t, `
package P {
    part def Base;
    part def Car :> Base, External::Wheeled;
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	car := unit.Elements[0].Children[1]
	names := car.SupertypeNames()
	if len(names) != 2 || names[0] != "Base" || names[1] != "External::Wheeled" {
		t.Errorf("unexpected supertypes: %v", names)
	}
}

func TestParseSpecializesKeyword(t *testing.T) {
	unit, bag := parseString(t, "part def Car specializes Vehicle;")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	names := unit.Elements[0].SupertypeNames()
	if len(names) != 1 || names[0] != "Vehicle" {
		t.Errorf("unexpected supertypes: %v", names)
	}
}

func TestParseUsageTyping(t *testing.T) {
	unit, bag := parseString(t, `
package Car {
    part def Engine;
    part engine : Engine [1..2];
    attribute mass : Real;
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	pkg := unit.Elements[0]
	engine := pkg.Children[1]
	if engine.Kind != model.KindPartUsage {
		t.Errorf("expected PartUsage, got %v", engine.Kind)
	}
	if names := engine.SupertypeNames(); len(names) != 1 || names[0] != "Engine" {
		t.Errorf("typed-by should land in supertypes, got %v", names)
	}
	mass := pkg.Children[2]
	if mass.Kind != model.KindAttributeUsage {
		t.Errorf("expected AttributeUsage, got %v", mass.Kind)
	}
}

func TestParseKerMLKinds(t *testing.T) {
	unit, bag := parseString(t, `
package Base {
    classifier Anything;
    class Occurrence :> Anything;
    datatype Real;
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	kinds := []model.Kind{model.KindClassifier, model.KindClass, model.KindDataType}
	for i, want := range kinds {
		if got := unit.Elements[0].Children[i].Kind; got != want {
			t.Errorf("child %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestParseImports(t *testing.T) {
	unit, bag := parseString(t, `
package P {
    import ScalarValues::Real;
    import Base::*;
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	imports := unit.Elements[0].Children
	if imports[0].Kind != model.KindImport || imports[0].Name != "ScalarValues::Real" {
		t.Errorf("unexpected import: %v %q", imports[0].Kind, imports[0].Name)
	}
	if imports[1].Name != "Base::*" {
		t.Errorf("unexpected wildcard import: %q", imports[1].Name)
	}
}

func TestParseDocAttachesToOwner(t *testing.T) {
	unit, bag := parseString(t, `
package Vehicle {
    doc "A vehicle model.";
    part def Engine;
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if doc := unit.Elements[0].Doc; doc != "A vehicle model." {
		t.Errorf("unexpected doc: %q", doc)
	}
}

func TestParseRecoversAtStatementBoundary(t *testing.T) {
	unit, bag := parseString(t, `
package P {
    part def ;
    part def Good;
}`)
	if !bag.HasErrors() {
		t.Fatal("expected a syntax diagnostic")
	}
	// The valid definition after the error must still be present.
	pkg := unit.Elements[0]
	found := false
	for _, child := range pkg.Children {
		if child.Name == "Good" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected recovery to keep 'Good', children: %d", len(pkg.Children))
	}
}

func TestParseStrayCloseBraceTerminates(t *testing.T) {
	// No error budget: the stray brace must be consumed, not spun on.
	unit, bag := parseString(t, "}")
	if len(unit.Elements) != 0 {
		t.Errorf("expected no elements, got %d", len(unit.Elements))
	}
	if bag.Len() != 1 {
		t.Errorf("expected 1 diagnostic, got %d: %v", bag.Len(), bag.Items())
	}
}

func TestParseStrayCloseBraceKeepsFollowingMembers(t *testing.T) {
	unit, bag := parseString(t, "} package P { part def X; }")
	if bag.Len() != 1 {
		t.Errorf("expected 1 diagnostic, got %d: %v", bag.Len(), bag.Items())
	}
	if len(unit.Elements) != 1 || unit.Elements[0].QualifiedName != "P" {
		t.Fatalf("expected package P after stray '}', got %v", unit.Elements)
	}
	pkg := unit.Elements[0]
	if len(pkg.Children) != 1 || pkg.Children[0].QualifiedName != "P::X" {
		t.Errorf("expected P::X to survive, children: %v", pkg.Children)
	}
}

func TestParseRecoversAcrossGarbage(t *testing.T) {
	unit, bag := parseString(t, "part def A garbage tokens here ; part def B;")
	if !bag.HasErrors() {
		t.Fatal("expected a syntax diagnostic")
	}
	names := make([]string, 0, len(unit.Elements))
	for _, el := range unit.Elements {
		names = append(names, el.Name)
	}
	if len(unit.Elements) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("expected partial tree with A and B, got %v", names)
	}
}

func TestParseUnclosedBody(t *testing.T) {
	unit, bag := parseString(t, "package P { part def A;")
	if !bag.HasErrors() {
		t.Fatal("expected missing '}' diagnostic")
	}
	// Partial tree is still returned.
	if len(unit.Elements) != 1 || len(unit.Elements[0].Children) != 1 {
		t.Error("expected partial element tree for valid prefix")
	}
	var hasUnclosed bool
	for _, d := range bag.Items() {
		if d.Code == diag.SynUnclosedBrace {
			hasUnclosed = true
		}
	}
	if !hasUnclosed {
		t.Errorf("expected SynUnclosedBrace, got %v", bag.Items())
	}
}

func TestParseNeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"",
		";;;",
		"}}}}",
		"::",
		"part part part",
		"package",
		"package P { import ; }",
		"part def X :> ;",
		"part x : [1..] ;",
		"'unterminated",
	}
	for _, input := range inputs {
		unit, _ := parseString(t, input)
		if unit == nil {
			t.Errorf("%q: expected a unit even for garbage", input)
		}
	}
}

func TestParseNestedQualifiedNames(t *testing.T) {
	unit, bag := parseString(t, `
package A {
    package B {
        part def C {
            part d : C;
        }
    }
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	var qnames []string
	unit.Walk(func(e *model.Element) { qnames = append(qnames, e.QualifiedName) })
	want := []string{"A", "A::B", "A::B::C", "A::B::C::d"}
	if len(qnames) != len(want) {
		t.Fatalf("expected %v, got %v", want, qnames)
	}
	for i := range want {
		if qnames[i] != want[i] {
			t.Errorf("qualified name %d: expected %q, got %q", i, want[i], qnames[i])
		}
	}
}

func TestParseStructuralInvariants(t *testing.T) {
	inputs := []string{
		"package Vehicle { part def Engine :> Base::Part; part e : Engine; }",
		"package A { package B { class C { datatype D; } } }",
		"part def 'Disk Brake' { doc \"x\"; import P::*; }",
		"package Broken { part def ; part def Ok; }",
	}
	for _, input := range inputs {
		fs := source.NewFileSet()
		id := fs.AddVirtual("test.sysml", []byte(input))
		file := fs.Get(id)
		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		unit := parser.ParseFile(fs, file, lx, parser.Options{Reporter: reporter})
		if err := testkit.CheckUnitInvariants(unit, file); err != nil {
			t.Errorf("%q: %v", input, err)
		}
	}
}
