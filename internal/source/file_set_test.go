package source

import "testing"

func TestAddAndGetByPath(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("model.sysml", []byte("package A;"), 0)
	if id1 != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id1)
	}

	f, ok := fs.GetByPath("model.sysml")
	if !ok {
		t.Fatal("expected file to exist after Add")
	}
	if string(f.Content) != "package A;" {
		t.Errorf("unexpected content %q", f.Content)
	}

	// Re-adding the same path yields a new ID; the index points at the latest.
	id2 := fs.Add("model.sysml", []byte("package B;"), 0)
	if id2 != 1 {
		t.Errorf("expected second FileID to be 1, got %d", id2)
	}
	f, _ = fs.GetByPath("model.sysml")
	if f.ID != id2 {
		t.Errorf("expected index to point at %d, got %d", id2, f.ID)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.sysml", []byte("package A {\n    part def B;\n}\n"))

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},   // 'p' of package
		{8, 1, 9},   // 'A'
		{11, 1, 12}, // '\n' belongs to line 1
		{12, 2, 1},  // first space of line 2
		{16, 2, 5},  // 'p' of part
		{28, 3, 1},  // '}'
	}
	for _, c := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: c.off, End: c.off})
		if start.Line != c.line || start.Col != c.col {
			t.Errorf("offset %d: expected %d:%d, got %d:%d", c.off, c.line, c.col, start.Line, start.Col)
		}
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("crlf.sysml", []byte("package A;\r\npackage B;\r\n"))
	f := fs.Get(id)
	if string(f.Content) != "package A;\npackage B;\n" {
		t.Errorf("CRLF not normalized: %q", f.Content)
	}

	id = fs.AddVirtual("bom.sysml", []byte("\xEF\xBB\xBFpackage A;"))
	f = fs.Get(id)
	if string(f.Content) != "package A;" {
		t.Errorf("BOM not stripped: %q", f.Content)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.sysml", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "one" {
		t.Errorf("line 1: got %q", got)
	}
	if got := f.GetLine(2); got != "two" {
		t.Errorf("line 2: got %q", got)
	}
	if got := f.GetLine(3); got != "three" {
		t.Errorf("line 3: got %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("line 4: expected empty, got %q", got)
	}
	if got := f.GetLine(0); got != "" {
		t.Errorf("line 0: expected empty, got %q", got)
	}
}
