package lexer

import "syster/internal/token"

// scanNumber scans an unsigned integer literal. Multiplicity bounds are the
// only numeric position in the supported grammar.
func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	span := lx.cursor.SpanFrom(mark)
	return token.Token{Kind: token.IntLit, Span: span, Text: string(lx.file.Content[span.Start:span.End])}
}
