package token

var keywords = map[string]Kind{
	"package":     KwPackage,
	"import":      KwImport,
	"def":         KwDef,
	"specializes": KwSpecializes,
	"doc":         KwDoc,
	"ref":         KwRef,
	"part":        KwPart,
	"item":        KwItem,
	"action":      KwAction,
	"port":        KwPort,
	"attribute":   KwAttribute,
	"connection":  KwConnection,
	"interface":   KwInterface,
	"requirement": KwRequirement,
	"class":       KwClass,
	"classifier":  KwClassifier,
	"datatype":    KwDatatype,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
