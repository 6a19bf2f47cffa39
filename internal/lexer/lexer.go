package lexer

import (
	"fmt"

	"syster/internal/diag"
	"syster/internal/source"
	"syster/internal/token"
)

// Lexer produces significant tokens from SysML v2 / KerML textual notation.
// Whitespace and comments are skipped. The lexer never fails: unknown input
// is reported through Options.Reporter and scanning continues.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead buffer
}

// New creates a lexer over file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Peek returns the next significant token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

func (lx *Lexer) scan() token.Token {
	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(lx.cursor.Mark())}
	}

	mark := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case ch == '\'':
		return lx.scanQuotedName()
	case ch == '"':
		return lx.scanString()
	case isDigit(ch):
		return lx.scanNumber()
	}

	lx.cursor.Bump()
	switch ch {
	case '{':
		return lx.punct(token.LBrace, mark)
	case '}':
		return lx.punct(token.RBrace, mark)
	case '[':
		return lx.punct(token.LBracket, mark)
	case ']':
		return lx.punct(token.RBracket, mark)
	case ';':
		return lx.punct(token.Semicolon, mark)
	case ',':
		return lx.punct(token.Comma, mark)
	case '*':
		return lx.punct(token.Star, mark)
	case ':':
		if lx.cursor.Eat(':') {
			return lx.punct(token.ColonColon, mark)
		}
		if lx.cursor.Eat('>') {
			return lx.punct(token.Specialize, mark)
		}
		return lx.punct(token.Colon, mark)
	case '.':
		if lx.cursor.Eat('.') {
			return lx.punct(token.DotDot, mark)
		}
	}

	span := lx.cursor.SpanFrom(mark)
	lx.report(diag.LexUnknownChar, span, fmt.Sprintf("unexpected character %q", ch))
	return token.Token{Kind: token.Invalid, Span: span, Text: string(ch)}
}

func (lx *Lexer) punct(kind token.Kind, mark Mark) token.Token {
	span := lx.cursor.SpanFrom(mark)
	return token.Token{Kind: kind, Span: span, Text: string(lx.file.Content[span.Start:span.End])}
}

// skipTrivia consumes whitespace and comments.
// An unterminated block comment is reported and consumes the rest of file.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.cursor.Bump()
		case ch == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case ch == '/' && lx.cursor.PeekAt(1) == '*':
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.cursor.Bump()
			closed := false
			for !lx.cursor.EOF() {
				if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					closed = true
					break
				}
				lx.cursor.Bump()
			}
			if !closed {
				lx.report(diag.LexUnterminatedBlock, lx.cursor.SpanFrom(mark), "unterminated block comment")
			}
		default:
			return
		}
	}
}
