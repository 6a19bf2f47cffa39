package lexer

import (
	"syster/internal/diag"
	"syster/internal/source"
)

// Options configure a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. May be nil: problems are then
	// dropped, but lexing still continues.
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
