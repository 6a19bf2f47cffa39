package lexer

import (
	"syster/internal/diag"
	"syster/internal/token"
)

// scanString scans a double-quoted string literal with \-escapes.
// The token text carries the decoded value.
func (lx *Lexer) scanString() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	var buf []byte
	for !lx.cursor.EOF() {
		ch := lx.cursor.Bump()
		switch ch {
		case '"':
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(mark), Text: string(buf)}
		case '\\':
			if lx.cursor.EOF() {
				break
			}
			esc := lx.cursor.Bump()
			switch esc {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case '"', '\\', '\'':
				buf = append(buf, esc)
			default:
				// keep unknown escapes verbatim
				buf = append(buf, '\\', esc)
			}
		case '\n':
			span := lx.cursor.SpanFrom(mark)
			lx.report(diag.LexUnterminatedString, span, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: span, Text: string(buf)}
		default:
			buf = append(buf, ch)
		}
	}
	span := lx.cursor.SpanFrom(mark)
	lx.report(diag.LexUnterminatedString, span, "unterminated string literal")
	return token.Token{Kind: token.StringLit, Span: span, Text: string(buf)}
}
