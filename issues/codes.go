package issues

// Code is a stable numeric issue code from the SCIM validation catalogue.
type Code int

// Data/schema validation codes (spec §6, subset 1-31).
const (
	BadValueSyntax         Code = 1
	BadType                Code = 2
	BadEncoding            Code = 3
	BadValueSemantics      Code = 4
	Missing                Code = 5
	MustNotBeProvided      Code = 6
	MustNotBeReturned      Code = 7
	MustBeEqual            Code = 8
	MustBeOneOf            Code = 9
	DuplicateValue         Code = 10
	MutuallyExclusive      Code = 11
	SchemasMissingBase     Code = 12
	SchemasMissingExt      Code = 13
	UnknownSchemaURI       Code = 14
	MultiplePrimary        Code = 15
	UnknownReferenceTarget Code = 16
	BadAttributeName       Code = 17
	BadErrorStatus         Code = 18
	BadStatusCode          Code = 19
	BadResourceCount       Code = 20
	ResourceNotMatchFilter Code = 21
	ResourcesNotSorted     Code = 22
	UnknownBulkResource    Code = 25
	BulkOperationsExceed   Code = 26
	TooManyBulkErrors      Code = 27
	UnknownModTarget       Code = 28
	AttributeNotModifiable Code = 29
	AttributeNotRemovable  Code = 30
	ValueNotSupported      Code = 31
)

// Filter / patch-path grammar codes (100-110).
const (
	UnbalancedParens    Code = 100
	UnbalancedBrackets  Code = 101
	ComplexOnSubAttr    Code = 102
	OperatorMissingOperand Code = 103
	UnknownOperator     Code = 104
	EmptyParenGroup     Code = 105
	BadFilterExpression Code = 106
	NestedComplexGroup  Code = 107
	EmptyComplexGroup   Code = 108
	UnrecognizedOperand Code = 109
	OperandTypeMismatch Code = 110
)

// template holds the fixed human-readable message for each code. Its fmt
// verbs are filled in by Issues.AddErrorf when arguments are supplied.
var template = map[Code]string{
	BadValueSyntax:         "bad value syntax",
	BadType:                "bad type, expecting '%s'",
	BadEncoding:            "bad encoding",
	BadValueSemantics:      "bad value semantics",
	Missing:                "missing",
	MustNotBeProvided:      "must not be provided",
	MustNotBeReturned:      "must not be returned",
	MustBeEqual:            "must be equal to %s",
	MustBeOneOf:            "must be one of: %s",
	DuplicateValue:         "duplicate value",
	MutuallyExclusive:      "mutually exclusive with %s",
	SchemasMissingBase:     "schemas array missing base schema",
	SchemasMissingExt:      "schemas array missing extension %s",
	UnknownSchemaURI:       "unknown schema URI %s",
	MultiplePrimary:        "more than one 'primary' set to true",
	UnknownReferenceTarget: "unknown reference target",
	BadAttributeName:       "bad attribute name %q",
	BadErrorStatus:         "bad error status value",
	BadStatusCode:          "bad status code, expecting '%s'",
	BadResourceCount:       "bad number of returned resources",
	ResourceNotMatchFilter: "returned resource does not match filter",
	ResourcesNotSorted:     "resources not sorted",
	UnknownBulkResource:    "unknown bulk operation resource",
	BulkOperationsExceed:   "bulk operations exceed configured max",
	TooManyBulkErrors:      "too many errors in bulk response",
	UnknownModTarget:       "unknown modification target",
	AttributeNotModifiable: "attribute not modifiable",
	AttributeNotRemovable:  "attribute not removable",
	ValueNotSupported:      "value not supported",

	UnbalancedParens:       "unbalanced parentheses",
	UnbalancedBrackets:     "unbalanced complex-attribute brackets",
	ComplexOnSubAttr:       "complex group on sub-attribute",
	OperatorMissingOperand: "operator missing operand",
	UnknownOperator:        "unknown operator %q",
	EmptyParenGroup:        "empty parenthesized expression",
	BadFilterExpression:    "bad filter expression",
	NestedComplexGroup:     "nested complex group",
	EmptyComplexGroup:      "empty complex group",
	UnrecognizedOperand:    "unrecognized operand %q",
	OperandTypeMismatch:    "operand incompatible with operator",
}

// Template returns the fixed human-readable template for a code, or "" if
// the code is unrecognized.
func (c Code) Template() string {
	return template[c]
}
