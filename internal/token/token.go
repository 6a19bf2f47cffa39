package token

import "syster/internal/source"

// Token represents a single source token with its location.
// Text carries the decoded payload: for quoted identifiers the unquoted
// name, for string literals the unescaped value.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwPackage, KwImport, KwDef, KwSpecializes, KwDoc, KwRef,
		KwPart, KwItem, KwAction, KwPort, KwAttribute, KwConnection,
		KwInterface, KwRequirement, KwClass, KwClassifier, KwDatatype:
		return true
	default:
		return false
	}
}

// IsDefKeyword reports whether the token can begin a definition or usage.
func (t Token) IsDefKeyword() bool {
	switch t.Kind {
	case KwPart, KwItem, KwAction, KwPort, KwAttribute, KwConnection,
		KwInterface, KwRequirement, KwClass, KwClassifier, KwDatatype:
		return true
	default:
		return false
	}
}

// StartsMember reports whether the token can begin a namespace member.
// The parser uses this set as its error-recovery synchronization points.
func (t Token) StartsMember() bool {
	switch t.Kind {
	case KwPackage, KwImport, KwDoc, KwRef:
		return true
	default:
		return t.IsDefKeyword()
	}
}
