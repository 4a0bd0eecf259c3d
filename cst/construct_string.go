package cst

// Code generated by stringer -type=Construct; maintained by hand in
// stringer's output shape.

var constructNames = [...]string{
	File:                 "File",
	ValueDefinition:      "ValueDefinition",
	ProcedureDefinition:  "ProcedureDefinition",
	TypeDefinition:       "TypeDefinition",
	Modifiers:            "Modifiers",
	Pattern:              "Pattern",
	RecordPattern:        "RecordPattern",
	RecordPatternItem:    "RecordPatternItem",
	TypeTag:              "TypeTag",
	QualifiedIdentifier:  "QualifiedIdentifier",
	ProcedureCall:        "ProcedureCall",
	RecordExpression:     "RecordExpression",
	RecordExpressionItem: "RecordExpressionItem",
	Conditional:          "Conditional",
	Map:                  "Map",
	TypeRecord:           "TypeRecord",
	TypeRecordItem:       "TypeRecordItem",
	PointerType:          "PointerType",
	Block:                "Block",
	ReturnStatement:      "ReturnStatement",
	UnreachableStatement: "UnreachableStatement",
}

func (c Construct) String() string {
	if int(c) >= 0 && int(c) < len(constructNames) {
		return constructNames[c]
	}

	return "Construct(?)"
}
