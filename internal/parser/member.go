package parser

import (
	"syster/internal/diag"
	"syster/internal/model"
	"syster/internal/source"
	"syster/internal/token"
)

// parseMembers parses namespace members until the terminator kind (RBrace
// inside a body, EOF at top level). outer is the enclosing qualified name;
// owner, when non-nil, receives doc comments and owns the parsed elements.
func (p *Parser) parseMembers(outer string, owner *model.Element, until token.Kind) []*model.Element {
	var members []*model.Element
	for !p.at(until) && !p.at(token.EOF) && !p.enough() {
		switch {
		case p.at(token.KwPackage):
			if el := p.parsePackage(outer); el != nil {
				members = p.attach(members, owner, el)
			}
		case p.at(token.KwImport):
			if el := p.parseImport(); el != nil {
				members = p.attach(members, owner, el)
			}
		case p.at(token.KwDoc):
			p.parseDoc(owner)
		case p.tok.IsDefKeyword(), p.at(token.KwRef):
			if el := p.parseDefOrUsage(outer); el != nil {
				members = p.attach(members, owner, el)
			}
		default:
			p.errorf(diag.SynUnexpectedTopLevel, p.tok.Span,
				"unexpected %s; expected a package, import, definition or usage", p.describe(p.tok))
			if p.at(token.RBrace) {
				// recover() leaves '}' for an enclosing body; there is none here.
				p.advance()
			}
			p.recover()
		}
	}
	if until == token.RBrace && !p.at(token.RBrace) && !p.enough() {
		p.errorf(diag.SynUnclosedBrace, p.tok.Span, "missing '}' before end of file")
	}
	return members
}

func (p *Parser) attach(members []*model.Element, owner *model.Element, el *model.Element) []*model.Element {
	if owner != nil {
		owner.AddChild(el)
	}
	return append(members, el)
}

// parsePackage parses: 'package' name (';' | '{' members '}').
func (p *Parser) parsePackage(outer string) *model.Element {
	start := p.tok.Span
	p.advance() // package

	name, ok := p.expect(token.Ident, diag.SynExpectName)
	if !ok {
		p.recover()
		return nil
	}

	el := &model.Element{
		Kind:          model.KindPackage,
		Name:          name.Text,
		QualifiedName: model.Qualify(outer, name.Text),
		Span:          start.Cover(name.Span),
	}
	p.parseBodyOrSemicolon(el)
	return el
}

// parseImport parses: 'import' qualifiedName ('::' '*')? ';'.
func (p *Parser) parseImport() *model.Element {
	start := p.tok.Span
	p.advance() // import

	target, span, ok := p.parseQualifiedName()
	if !ok {
		p.recover()
		return nil
	}
	if p.at(token.ColonColon) && p.lx.Peek().Kind == token.Star {
		p.advance() // ::
		span = span.Cover(p.tok.Span)
		p.advance() // *
		target += model.QualifiedSep + "*"
	}
	p.expectSemicolon()
	return &model.Element{
		Kind: model.KindImport,
		Name: target,
		Span: start.Cover(span),
	}
}

// parseDoc parses: 'doc' STRING ';'? and attaches the text to owner.
func (p *Parser) parseDoc(owner *model.Element) {
	p.advance() // doc
	if p.at(token.StringLit) {
		if owner != nil {
			owner.Doc = p.tok.Text
		}
		p.advance()
	} else {
		p.errorf(diag.SynUnexpectedToken, p.tok.Span, "expected string after 'doc', found %s", p.describe(p.tok))
		p.recover()
		return
	}
	p.eat(token.Semicolon)
}

// parseDefOrUsage parses definitions and usages:
//
//	part def Engine :> Base::Part { ... }
//	classifier Anything;
//	part engine : Engine [1..2];
//	ref driver : Person;
func (p *Parser) parseDefOrUsage(outer string) *model.Element {
	start := p.tok.Span
	kw := p.tok.Kind
	p.advance()

	isDef := false
	switch kw {
	case token.KwClass, token.KwClassifier, token.KwDatatype:
		// KerML kinds never take 'def'
		isDef = true
		if p.at(token.KwDef) {
			p.errorf(diag.SynUnexpectedToken, p.tok.Span, "%s does not take 'def'", kw)
			p.advance()
		}
	case token.KwRef:
		isDef = false
	default:
		isDef = p.eat(token.KwDef)
	}

	kind, ok := elementKind(kw, isDef)
	if !ok {
		p.errorf(diag.SynExpectDef, start, "%s cannot appear here", kw)
		p.recover()
		return nil
	}

	name, nameOK := p.expect(token.Ident, diag.SynExpectName)
	if !nameOK {
		p.recover()
		return nil
	}

	el := &model.Element{
		Kind:          kind,
		Name:          name.Text,
		QualifiedName: model.Qualify(outer, name.Text),
		Span:          start.Cover(name.Span),
	}

	// typed-by: usages may name a defining type; it resolves like any other
	// supertype reference.
	if !isDef && p.eat(token.Colon) {
		if target, span, ok := p.parseQualifiedName(); ok {
			el.Supertypes = append(el.Supertypes, model.SupertypeRef{Name: target, Span: span})
		} else {
			p.recover()
			return el
		}
	}

	if p.at(token.Specialize) || p.at(token.KwSpecializes) {
		p.advance()
		p.parseSupertypeList(el)
	}

	if p.at(token.LBracket) {
		p.parseMultiplicity()
	}

	p.parseBodyOrSemicolon(el)
	return el
}

// parseSupertypeList parses: qualifiedName (',' qualifiedName)*.
func (p *Parser) parseSupertypeList(el *model.Element) {
	for {
		target, span, ok := p.parseQualifiedName()
		if !ok {
			p.errorf(diag.SynExpectSupertype, p.tok.Span, "expected supertype name, found %s", p.describe(p.tok))
			p.recover()
			return
		}
		el.Supertypes = append(el.Supertypes, model.SupertypeRef{Name: target, Span: span})
		if !p.eat(token.Comma) {
			return
		}
	}
}

// parseMultiplicity parses and discards: '[' bound ('..' bound)? ']'.
// Multiplicity does not participate in symbol resolution.
func (p *Parser) parseMultiplicity() {
	open := p.tok.Span
	p.advance() // [
	if !p.eatBound() {
		p.errorf(diag.SynBadMultiplicity, p.tok.Span, "expected multiplicity bound, found %s", p.describe(p.tok))
		p.recover()
		return
	}
	if p.eat(token.DotDot) {
		if !p.eatBound() {
			p.errorf(diag.SynBadMultiplicity, p.tok.Span, "expected upper multiplicity bound, found %s", p.describe(p.tok))
			p.recover()
			return
		}
	}
	if !p.eat(token.RBracket) {
		p.errorf(diag.SynBadMultiplicity, open.Cover(p.tok.Span), "missing ']' in multiplicity")
		p.recover()
	}
}

func (p *Parser) eatBound() bool {
	return p.eat(token.IntLit) || p.eat(token.Star)
}

// parseBodyOrSemicolon finishes a declaration with either a braced member
// body or a semicolon.
func (p *Parser) parseBodyOrSemicolon(el *model.Element) {
	switch {
	case p.eat(token.Semicolon):
	case p.at(token.LBrace):
		p.advance()
		p.parseMembers(el.QualifiedName, el, token.RBrace)
		if p.at(token.RBrace) {
			el.Span = el.Span.Cover(p.tok.Span)
			p.advance()
		}
	default:
		p.errorf(diag.SynExpectBody, p.tok.Span, "expected ';' or '{', found %s", p.describe(p.tok))
		p.recover()
	}
}

func (p *Parser) expectSemicolon() {
	if !p.eat(token.Semicolon) {
		p.errorf(diag.SynExpectSemicolon, p.tok.Span, "expected ';', found %s", p.describe(p.tok))
		p.recover()
	}
}

// parseQualifiedName parses: ident ('::' ident)*.
func (p *Parser) parseQualifiedName() (string, source.Span, bool) {
	first, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return "", first.Span, false
	}
	name := first.Text
	span := first.Span
	for p.at(token.ColonColon) && p.lx.Peek().Kind == token.Ident {
		p.advance() // ::
		seg := p.tok
		p.advance()
		name += model.QualifiedSep + seg.Text
		span = span.Cover(seg.Span)
	}
	return name, span, true
}

func elementKind(kw token.Kind, isDef bool) (model.Kind, bool) {
	if isDef {
		switch kw {
		case token.KwPart:
			return model.KindPartDef, true
		case token.KwItem:
			return model.KindItemDef, true
		case token.KwAction:
			return model.KindActionDef, true
		case token.KwPort:
			return model.KindPortDef, true
		case token.KwAttribute:
			return model.KindAttributeDef, true
		case token.KwConnection:
			return model.KindConnectionDef, true
		case token.KwInterface:
			return model.KindInterfaceDef, true
		case token.KwRequirement:
			return model.KindRequirementDef, true
		case token.KwClass:
			return model.KindClass, true
		case token.KwClassifier:
			return model.KindClassifier, true
		case token.KwDatatype:
			return model.KindDataType, true
		}
		return model.KindInvalid, false
	}
	switch kw {
	case token.KwPart:
		return model.KindPartUsage, true
	case token.KwItem:
		return model.KindItemUsage, true
	case token.KwAction:
		return model.KindActionUsage, true
	case token.KwPort:
		return model.KindPortUsage, true
	case token.KwAttribute:
		return model.KindAttributeUsage, true
	case token.KwConnection:
		return model.KindConnectionUsage, true
	case token.KwRequirement:
		return model.KindRequirementUsage, true
	case token.KwRef:
		return model.KindReferenceUsage, true
	}
	return model.KindInvalid, false
}
