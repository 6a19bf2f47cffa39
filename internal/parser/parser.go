package parser

import (
	"fmt"

	"syster/internal/diag"
	"syster/internal/lexer"
	"syster/internal/model"
	"syster/internal/source"
	"syster/internal/token"
)

// Options configure a single-file parse.
type Options struct {
	// Reporter receives syntax diagnostics. May be nil.
	Reporter diag.Reporter
	// MaxErrors stops the parse after this many errors; 0 means no limit.
	MaxErrors uint
	// Stdlib marks the produced unit as a standard-library unit.
	Stdlib bool
}

// Parser holds the state for parsing one file. The parser never fails on
// malformed input: problems become diagnostics and a partial element tree is
// still produced for valid prefixes.
type Parser struct {
	lx       *lexer.Lexer
	fs       *source.FileSet
	file     *source.File
	opts     Options
	tok      token.Token
	errCount uint
}

// ParseFile parses one file into a FileUnit. The lexer must be positioned at
// the start of the file.
func ParseFile(fs *source.FileSet, file *source.File, lx *lexer.Lexer, opts Options) *model.FileUnit {
	p := &Parser{
		lx:   lx,
		fs:   fs,
		file: file,
		opts: opts,
	}
	p.advance()

	unit := &model.FileUnit{
		Path:   file.Path,
		FileID: file.ID,
		Stdlib: opts.Stdlib,
	}
	unit.Elements = p.parseMembers("", nil, token.EOF)
	return unit
}

func (p *Parser) advance() {
	p.tok = p.lx.Next()
}

// at reports whether the current token has the given kind.
func (p *Parser) at(kind token.Kind) bool { return p.tok.Kind == kind }

// eat consumes the current token iff it has the given kind.
func (p *Parser) eat(kind token.Kind) bool {
	if p.tok.Kind == kind {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind or reports an error.
func (p *Parser) expect(kind token.Kind, code diag.Code) (token.Token, bool) {
	if p.tok.Kind == kind {
		tok := p.tok
		p.advance()
		return tok, true
	}
	p.errorf(code, p.tok.Span, "expected %s, found %s", kind, p.describe(p.tok))
	return p.tok, false
}

func (p *Parser) describe(tok token.Token) string {
	switch tok.Kind {
	case token.Ident:
		return fmt.Sprintf("identifier %q", tok.Text)
	case token.EOF:
		return "end of file"
	default:
		return tok.Kind.String()
	}
}

// enough reports whether the error budget is exhausted.
func (p *Parser) enough() bool {
	return p.opts.MaxErrors != 0 && p.errCount >= p.opts.MaxErrors
}

func (p *Parser) errorf(code diag.Code, span source.Span, format string, args ...any) {
	p.errCount++
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, span, fmt.Sprintf(format, args...), nil)
	}
}

// recover skips tokens until a statement boundary: a semicolon (consumed),
// a closing brace (left for the caller), the next member keyword, or EOF.
// This maximizes the number of diagnostics recovered per pass.
func (p *Parser) recover() {
	for {
		switch {
		case p.at(token.EOF), p.at(token.RBrace), p.tok.StartsMember():
			return
		case p.at(token.Semicolon):
			p.advance()
			return
		default:
			p.advance()
		}
	}
}
