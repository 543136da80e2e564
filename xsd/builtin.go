package xsd

import "fmt"

// A Builtin represents one of the built-in xml schema types, as
// defined in the W3C specification, "XML Schema Part 2: Datatypes".
//
// http://www.w3.org/TR/xmlschema-2/#built-in-datatypes
type Builtin int

const (
	AnyType Builtin = iota
	AnySimpleType
	ENTITIES
	ENTITY
	ID
	IDREF
	IDREFS
	NCName
	NMTOKEN
	NMTOKENS
	NOTATION
	Name
	QName
	AnyURI
	Base64Binary
	Boolean
	Byte
	Date
	DateTime
	Decimal
	Double
	Duration
	Float
	GDay
	GMonth
	GMonthDay // ISO 8601 format: --MM-DD
	GYear
	GYearMonth
	HexBinary
	Int
	Integer
	Language
	Long
	NegativeInteger
	NonNegativeInteger
	NonPositiveInteger
	NormalizedString
	PositiveInteger
	Short
	String
	Time
	Token
	UnsignedByte
	UnsignedInt
	UnsignedLong
	UnsignedShort
)

var builtinNames = [...]string{
	AnyType:            "anyType",
	AnySimpleType:      "anySimpleType",
	ENTITIES:           "ENTITIES",
	ENTITY:             "ENTITY",
	ID:                 "ID",
	IDREF:              "IDREF",
	IDREFS:             "IDREFS",
	NCName:             "NCName",
	NMTOKEN:            "NMTOKEN",
	NMTOKENS:           "NMTOKENS",
	NOTATION:           "NOTATION",
	Name:               "Name",
	QName:              "QName",
	AnyURI:             "anyURI",
	Base64Binary:       "base64Binary",
	Boolean:            "boolean",
	Byte:               "byte",
	Date:               "date",
	DateTime:           "dateTime",
	Decimal:            "decimal",
	Double:             "double",
	Duration:           "duration",
	Float:              "float",
	GDay:               "gDay",
	GMonth:             "gMonth",
	GMonthDay:          "gMonthDay",
	GYear:              "gYear",
	GYearMonth:         "gYearMonth",
	HexBinary:          "hexBinary",
	Int:                "int",
	Integer:            "integer",
	Language:           "language",
	Long:               "long",
	NegativeInteger:    "negativeInteger",
	NonNegativeInteger: "nonNegativeInteger",
	NonPositiveInteger: "nonPositiveInteger",
	NormalizedString:   "normalizedString",
	PositiveInteger:    "positiveInteger",
	Short:              "short",
	String:             "string",
	Time:               "time",
	Token:              "token",
	UnsignedByte:       "unsignedByte",
	UnsignedInt:        "unsignedInt",
	UnsignedLong:       "unsignedLong",
	UnsignedShort:      "unsignedShort",
}

// String returns the local name of the built-in type as it appears
// in a schema, such as "dateTime".
func (b Builtin) String() string {
	if b < 0 || int(b) >= len(builtinNames) {
		return fmt.Sprintf("Builtin(%d)", int(b))
	}
	return builtinNames[b]
}

// ParseBuiltin looks up a Builtin by its local name in the XML Schema
// namespace. If local does not name a built-in type, ParseBuiltin
// returns a non-nil error.
func ParseBuiltin(local string) (Builtin, error) {
	for i, name := range builtinNames {
		if name == local {
			return Builtin(i), nil
		}
	}
	return -1, fmt.Errorf("xsd:%s is not a built-in", local)
}
