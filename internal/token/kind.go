package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier, including quoted unrestricted names.
	Ident
	// IntLit represents an integer literal (multiplicity bounds).
	IntLit
	// StringLit represents a double-quoted string literal.
	StringLit

	// KwPackage represents the 'package' keyword.
	KwPackage // package
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwDef represents the 'def' keyword.
	KwDef // def
	// KwSpecializes represents the 'specializes' keyword.
	KwSpecializes // specializes
	// KwDoc represents the 'doc' keyword.
	KwDoc // doc
	// KwRef represents the 'ref' keyword.
	KwRef // ref
	// KwPart represents the 'part' keyword.
	KwPart // part
	// KwItem represents the 'item' keyword.
	KwItem // item
	// KwAction represents the 'action' keyword.
	KwAction // action
	// KwPort represents the 'port' keyword.
	KwPort // port
	// KwAttribute represents the 'attribute' keyword.
	KwAttribute // attribute
	// KwConnection represents the 'connection' keyword.
	KwConnection // connection
	// KwInterface represents the 'interface' keyword.
	KwInterface // interface
	// KwRequirement represents the 'requirement' keyword.
	KwRequirement // requirement
	// KwClass represents the KerML 'class' keyword.
	KwClass // class
	// KwClassifier represents the KerML 'classifier' keyword.
	KwClassifier // classifier
	// KwDatatype represents the KerML 'datatype' keyword.
	KwDatatype // datatype

	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// LBracket represents '[' (multiplicity).
	LBracket
	// RBracket represents ']'.
	RBracket
	// Semicolon represents ';'.
	Semicolon
	// Comma represents ','.
	Comma
	// Colon represents ':' (typed-by).
	Colon
	// ColonColon represents '::' (namespace qualification).
	ColonColon
	// Specialize represents ':>' (specialization).
	Specialize
	// Star represents '*' (wildcard import, unbounded multiplicity).
	Star
	// DotDot represents '..' (multiplicity range).
	DotDot
)

var kindNames = map[Kind]string{
	Invalid:       "invalid",
	EOF:           "eof",
	Ident:         "identifier",
	IntLit:        "integer",
	StringLit:     "string",
	KwPackage:     "'package'",
	KwImport:      "'import'",
	KwDef:         "'def'",
	KwSpecializes: "'specializes'",
	KwDoc:         "'doc'",
	KwRef:         "'ref'",
	KwPart:        "'part'",
	KwItem:        "'item'",
	KwAction:      "'action'",
	KwPort:        "'port'",
	KwAttribute:   "'attribute'",
	KwConnection:  "'connection'",
	KwInterface:   "'interface'",
	KwRequirement: "'requirement'",
	KwClass:       "'class'",
	KwClassifier:  "'classifier'",
	KwDatatype:    "'datatype'",
	LBrace:        "'{'",
	RBrace:        "'}'",
	LBracket:      "'['",
	RBracket:      "']'",
	Semicolon:     "';'",
	Comma:         "','",
	Colon:         "':'",
	ColonColon:    "'::'",
	Specialize:    "':>'",
	Star:          "'*'",
	DotDot:        "'..'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
