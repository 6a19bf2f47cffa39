package model

// Kind classifies an element in the model graph. The string forms are the
// wire names used by every interchange codec and the symbol JSON output.
type Kind uint8

const (
	// KindInvalid is the zero value.
	KindInvalid Kind = iota
	// KindPackage is a namespace package.
	KindPackage
	// KindPartDef is a SysML part definition.
	KindPartDef
	KindItemDef
	KindActionDef
	KindPortDef
	KindAttributeDef
	KindConnectionDef
	KindInterfaceDef
	KindRequirementDef
	// KindClass is a KerML class.
	KindClass
	// KindClassifier is a KerML classifier.
	KindClassifier
	// KindDataType is a KerML datatype.
	KindDataType
	// KindPartUsage is a part usage ("part engine : Engine;").
	KindPartUsage
	KindItemUsage
	KindActionUsage
	KindPortUsage
	KindAttributeUsage
	KindConnectionUsage
	KindRequirementUsage
	// KindReferenceUsage is a 'ref' usage.
	KindReferenceUsage
	// KindImport is an import statement; not a symbol.
	KindImport
)

var kindNames = [...]string{
	KindInvalid:          "Invalid",
	KindPackage:          "Package",
	KindPartDef:          "PartDef",
	KindItemDef:          "ItemDef",
	KindActionDef:        "ActionDef",
	KindPortDef:          "PortDef",
	KindAttributeDef:     "AttributeDef",
	KindConnectionDef:    "ConnectionDef",
	KindInterfaceDef:     "InterfaceDef",
	KindRequirementDef:   "RequirementDef",
	KindClass:            "Class",
	KindClassifier:       "Classifier",
	KindDataType:         "DataType",
	KindPartUsage:        "PartUsage",
	KindItemUsage:        "ItemUsage",
	KindActionUsage:      "ActionUsage",
	KindPortUsage:        "PortUsage",
	KindAttributeUsage:   "AttributeUsage",
	KindConnectionUsage:  "ConnectionUsage",
	KindRequirementUsage: "RequirementUsage",
	KindReferenceUsage:   "ReferenceUsage",
	KindImport:           "Import",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}

// IsSymbol reports whether elements of this kind occupy a slot in the symbol
// table and count toward the analysis symbol total.
func (k Kind) IsSymbol() bool {
	return k != KindInvalid && k != KindImport
}

// IsUsage reports whether the kind is a usage rather than a definition.
func (k Kind) IsUsage() bool {
	switch k {
	case KindPartUsage, KindItemUsage, KindActionUsage, KindPortUsage,
		KindAttributeUsage, KindConnectionUsage, KindRequirementUsage,
		KindReferenceUsage:
		return true
	default:
		return false
	}
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// KindFromString maps a wire name back onto a Kind.
func KindFromString(name string) (Kind, bool) {
	k, ok := kindByName[name]
	if !ok || k == KindInvalid {
		return KindInvalid, false
	}
	return k, true
}
