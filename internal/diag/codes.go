package diag

import "fmt"

// Code is a compact, stable identifier for a diagnostic kind.
type Code uint16

const (
	// UnknownCode is the zero value, used when no better code applies.
	UnknownCode Code = 0

	// Lexical (1000-1999)
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedName   Code = 1003
	LexUnterminatedBlock  Code = 1004
	LexBadNumber          Code = 1005

	// Syntax (2000-2999)
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectSemicolon    Code = 2003
	SynExpectBody         Code = 2004
	SynUnclosedBrace      Code = 2005
	SynExpectName         Code = 2006
	SynExpectSupertype    Code = 2007
	SynUnexpectedTopLevel Code = 2008
	SynBadMultiplicity    Code = 2009
	SynExpectDef          Code = 2010

	// Semantic (3000-3999)
	SemaDuplicateSymbol  Code = 3001
	SemaUnresolvedSymbol Code = 3002
	SemaSpecializeCycle  Code = 3003
	SemaSelfSpecialize   Code = 3004

	// Interchange formats (4000-4999)
	FmtSchemaViolation  Code = 4001
	FmtMalformedInput   Code = 4002
	FmtMissingEntry     Code = 4003
	FmtUnknownKind      Code = 4004
	FmtManifestMismatch Code = 4005

	// IO / configuration (5000-5999)
	IOLoadFileError  Code = 5001
	ConfStdlibPath   Code = 5002
	ConfNoInputFiles Code = 5003
)

var codeIDs = map[Code]string{
	UnknownCode:           "SYS0000",
	LexUnknownChar:        "LEX1001",
	LexUnterminatedString: "LEX1002",
	LexUnterminatedName:   "LEX1003",
	LexUnterminatedBlock:  "LEX1004",
	LexBadNumber:          "LEX1005",
	SynUnexpectedToken:    "SYN2001",
	SynExpectIdentifier:   "SYN2002",
	SynExpectSemicolon:    "SYN2003",
	SynExpectBody:         "SYN2004",
	SynUnclosedBrace:      "SYN2005",
	SynExpectName:         "SYN2006",
	SynExpectSupertype:    "SYN2007",
	SynUnexpectedTopLevel: "SYN2008",
	SynBadMultiplicity:    "SYN2009",
	SynExpectDef:          "SYN2010",
	SemaDuplicateSymbol:   "SEM3001",
	SemaUnresolvedSymbol:  "SEM3002",
	SemaSpecializeCycle:   "SEM3003",
	SemaSelfSpecialize:    "SEM3004",
	FmtSchemaViolation:    "FMT4001",
	FmtMalformedInput:     "FMT4002",
	FmtMissingEntry:       "FMT4003",
	FmtUnknownKind:        "FMT4004",
	FmtManifestMismatch:   "FMT4005",
	IOLoadFileError:       "IO5001",
	ConfStdlibPath:        "IO5002",
	ConfNoInputFiles:      "IO5003",
}

// ID returns the stable short identifier, e.g. "SEM3001".
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return fmt.Sprintf("SYS%04d", uint16(c))
}

func (c Code) String() string { return c.ID() }
