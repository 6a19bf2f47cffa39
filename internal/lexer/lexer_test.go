package lexer_test

import (
	"testing"

	"syster/internal/diag"
	"syster/internal/lexer"
	"syster/internal/source"
	"syster/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sysml", []byte(input))
	bag := diag.NewBag(32)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func collectKinds(lx *lexer.Lexer) []token.Kind {
	var kinds []token.Kind
	for {
		tok := lx.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			return kinds
		}
	}
}

func expectKinds(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	kinds := collectKinds(lx)
	if len(kinds) != len(expected) {
		t.Fatalf("%q: expected %d tokens, got %d (%v)", input, len(expected), len(kinds), kinds)
	}
	for i, k := range expected {
		if kinds[i] != k {
			t.Errorf("%q: token %d: expected %v, got %v", input, i, k, kinds[i])
		}
	}
	if bag.HasErrors() {
		t.Errorf("%q: unexpected lex errors: %v", input, bag.Items())
	}
}

func TestLexPackage(t *testing.T) {
	expectKinds(t, "package Vehicle { part def Engine; }", []token.Kind{
		token.KwPackage, token.Ident, token.LBrace,
		token.KwPart, token.KwDef, token.Ident, token.Semicolon,
		token.RBrace, token.EOF,
	})
}

func TestLexSpecialization(t *testing.T) {
	expectKinds(t, "part def Car :> Base::Vehicle, Wheeled;", []token.Kind{
		token.KwPart, token.KwDef, token.Ident, token.Specialize,
		token.Ident, token.ColonColon, token.Ident, token.Comma, token.Ident,
		token.Semicolon, token.EOF,
	})
}

func TestLexColonVariants(t *testing.T) {
	expectKinds(t, ": :: :>", []token.Kind{
		token.Colon, token.ColonColon, token.Specialize, token.EOF,
	})
}

func TestLexMultiplicity(t *testing.T) {
	expectKinds(t, "part wheels : Wheel [1..4];", []token.Kind{
		token.KwPart, token.Ident, token.Colon, token.Ident,
		token.LBracket, token.IntLit, token.DotDot, token.IntLit, token.RBracket,
		token.Semicolon, token.EOF,
	})
}

func TestLexComments(t *testing.T) {
	expectKinds(t, "// line\npackage /* block */ P;", []token.Kind{
		token.KwPackage, token.Ident, token.Semicolon, token.EOF,
	})
}

func TestLexQuotedName(t *testing.T) {
	lx, bag := makeTestLexer("part def 'Disk Brake';")
	toks := []token.Token{lx.Next(), lx.Next(), lx.Next()}
	if toks[2].Kind != token.Ident || toks[2].Text != "Disk Brake" {
		t.Errorf("expected quoted ident 'Disk Brake', got %v %q", toks[2].Kind, toks[2].Text)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexQuotedNameEscapes(t *testing.T) {
	lx, bag := makeTestLexer(`part def 'O\'Brien \\ Co';`)
	toks := []token.Token{lx.Next(), lx.Next(), lx.Next()}
	if toks[2].Kind != token.Ident || toks[2].Text != `O'Brien \ Co` {
		t.Errorf("expected ident %q, got %v %q", `O'Brien \ Co`, toks[2].Kind, toks[2].Text)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexStringLit(t *testing.T) {
	lx, _ := makeTestLexer(`doc "line\nbreak"`)
	if tok := lx.Next(); tok.Kind != token.KwDoc {
		t.Fatalf("expected doc keyword, got %v", tok.Kind)
	}
	tok := lx.Next()
	if tok.Kind != token.StringLit || tok.Text != "line\nbreak" {
		t.Errorf("expected decoded string, got %v %q", tok.Kind, tok.Text)
	}
}

func TestLexUnknownChar(t *testing.T) {
	lx, bag := makeTestLexer("package P @ ;")
	var invalid int
	for {
		tok := lx.Next()
		if tok.Kind == token.Invalid {
			invalid++
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	if invalid != 1 {
		t.Errorf("expected 1 invalid token, got %d", invalid)
	}
	if !bag.HasErrors() {
		t.Error("expected a lexical diagnostic")
	}
	items := bag.Items()
	if items[0].Code != diag.LexUnknownChar {
		t.Errorf("expected LexUnknownChar, got %v", items[0].Code)
	}
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	lx, bag := makeTestLexer("package P; /* never closed")
	collectKinds(lx)
	if !bag.HasErrors() {
		t.Error("expected unterminated block comment diagnostic")
	}
}

func TestLexPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("package P;")
	if lx.Peek().Kind != token.KwPackage {
		t.Error("Peek should see 'package'")
	}
	if lx.Next().Kind != token.KwPackage {
		t.Error("Next after Peek should still return 'package'")
	}
}

func TestLexEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("")
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}
