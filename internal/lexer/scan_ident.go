package lexer

import (
	"syster/internal/diag"
	"syster/internal/token"
)

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDigit(b)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	span := lx.cursor.SpanFrom(mark)
	text := string(lx.file.Content[span.Start:span.End])
	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Span: span, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: span, Text: text}
}

// scanQuotedName scans an unrestricted name: 'any chars except newline'.
// A backslash escapes the next character, so quotes and backslashes can
// appear inside the name. The token text carries the name without quotes.
func (lx *Lexer) scanQuotedName() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	var buf []byte
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
				break
			}
			buf = append(buf, lx.cursor.Bump())
			continue
		}
		if ch == '\'' {
			lx.cursor.Bump()
			return token.Token{Kind: token.Ident, Span: lx.cursor.SpanFrom(mark), Text: string(buf)}
		}
		if ch == '\n' {
			break
		}
		buf = append(buf, lx.cursor.Bump())
	}
	span := lx.cursor.SpanFrom(mark)
	lx.report(diag.LexUnterminatedName, span, "unterminated quoted name")
	return token.Token{Kind: token.Ident, Span: span, Text: string(buf)}
}
