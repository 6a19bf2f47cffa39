package decompile_test

import (
	"strings"
	"testing"

	"syster/internal/decompile"
	"syster/internal/diag"
	"syster/internal/lexer"
	"syster/internal/model"
	"syster/internal/parser"
	"syster/internal/source"
)

func parseGraph(t *testing.T, input string) *model.Graph {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sysml", []byte(input))
	file := fs.Get(id)
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	unit := parser.ParseFile(fs, file, lx, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	unit.Bag = bag
	return model.FromUnits([]*model.FileUnit{unit})
}

func TestGraphOutput(t *testing.T) {
	g := parseGraph(t, `
package Vehicle {
    import Base::*;
    doc "Top-level vehicle model.";
    part def Engine :> Base::Part;
    part def 'Disk Brake';
    part engine : Engine;
    attribute mass : ScalarValues::Real;
}`)
	got := string(decompile.Graph(g, decompile.Options{}))
	want := `package Vehicle {
    doc "Top-level vehicle model.";
    import Base::*;
    part def Engine :> Base::Part;
    part def 'Disk Brake';
    part engine : Engine;
    attribute mass : ScalarValues::Real;
}
`
	if got != want {
		t.Errorf("output mismatch:\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}

func TestUsageWithTypeAndSpecializations(t *testing.T) {
	g := parseGraph(t, `
package P {
    part def A;
    part def B;
    part x : A :> B;
}`)
	got := string(decompile.Graph(g, decompile.Options{}))
	if !strings.Contains(got, "part x : A :> B;") {
		t.Errorf("usage clause not rendered:\n%s", got)
	}
}

func TestKerMLKinds(t *testing.T) {
	g := parseGraph(t, `
package K {
    classifier Anything;
    class Occurrence :> Anything;
    datatype Bool :> Anything;
}`)
	got := string(decompile.Graph(g, decompile.Options{}))
	for _, want := range []string{
		"classifier Anything;",
		"class Occurrence :> Anything;",
		"datatype Bool :> Anything;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestQuotedNameKeywordCollision(t *testing.T) {
	el := &model.Element{Kind: model.KindPartDef, Name: "part", QualifiedName: "part"}
	got := string(decompile.Element(el, decompile.Options{}))
	if !strings.Contains(got, "part def 'part';") {
		t.Errorf("keyword name not quoted:\n%s", got)
	}
}

func TestEscapedNameRoundTrip(t *testing.T) {
	name := `O'Brien \ Co`
	el := &model.Element{Kind: model.KindPartDef, Name: name, QualifiedName: name}
	g := &model.Graph{Roots: []*model.Element{el}}
	text := string(decompile.Graph(g, decompile.Options{}))
	second := parseGraph(t, text)
	if len(second.Roots) != 1 || second.Roots[0].Name != name {
		t.Fatalf("name did not survive the round trip:\n%s", text)
	}
}

// Decompiled output must parse back into an equivalent graph.
func TestRoundTrip(t *testing.T) {
	input := `
package Vehicle {
    doc "Vehicle model.";
    import Base::*;
    part def Engine :> Base::Part {
        doc "Combustion engine.";
        attribute power : ScalarValues::Real;
    }
    part def 'Disk Brake' :> Base::Part;
    part engine : Engine;
}

package Library {
    classifier Anything;
}`
	first := parseGraph(t, input)
	text := string(decompile.Graph(first, decompile.Options{}))
	second := parseGraph(t, text)

	var a, b []string
	first.Walk(func(el *model.Element) {
		a = append(a, el.Kind.String()+" "+el.QualifiedName+" :> "+strings.Join(el.SupertypeNames(), ","))
	})
	second.Walk(func(el *model.Element) {
		b = append(b, el.Kind.String()+" "+el.QualifiedName+" :> "+strings.Join(el.SupertypeNames(), ","))
	})
	if len(a) != len(b) {
		t.Fatalf("element count changed: %d -> %d\n%s", len(a), len(b), text)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("element %d changed: %q -> %q", i, a[i], b[i])
		}
	}
}
