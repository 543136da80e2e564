package xsdgen

import "github.com/CognitoIQ/go-xsdbind/xsd"

// Go types of the built-in schema types. Types whose lexical form
// encoding/xml cannot parse into a richer Go type, such as dates
// without a time zone, durations and white space separated lists, are
// kept as strings.
var builtinTbl = []string{
	xsd.AnyType:            "string",
	xsd.AnySimpleType:      "string",
	xsd.ENTITIES:           "string",
	xsd.ENTITY:             "string",
	xsd.ID:                 "string",
	xsd.IDREF:              "string",
	xsd.IDREFS:             "string",
	xsd.NCName:             "string",
	xsd.NMTOKEN:            "string",
	xsd.NMTOKENS:           "string",
	xsd.NOTATION:           "string",
	xsd.Name:               "string",
	xsd.QName:              "string",
	xsd.AnyURI:             "string",
	xsd.Base64Binary:       "[]byte",
	xsd.Boolean:            "bool",
	xsd.Byte:               "int8",
	xsd.Date:               "string",
	xsd.DateTime:           "time.Time",
	xsd.Decimal:            "float64",
	xsd.Double:             "float64",
	xsd.Duration:           "string",
	xsd.Float:              "float32",
	xsd.GDay:               "string",
	xsd.GMonth:             "string",
	xsd.GMonthDay:          "string",
	xsd.GYear:              "string",
	xsd.GYearMonth:         "string",
	xsd.HexBinary:          "[]byte",
	xsd.Int:                "int",
	xsd.Integer:            "int",
	xsd.Language:           "string",
	xsd.Long:               "int64",
	xsd.NegativeInteger:    "int",
	xsd.NonNegativeInteger: "int",
	xsd.NonPositiveInteger: "int",
	xsd.NormalizedString:   "string",
	xsd.PositiveInteger:    "int",
	xsd.Short:              "int16",
	xsd.String:             "string",
	xsd.Time:               "string",
	xsd.Token:              "string",
	xsd.UnsignedByte:       "uint8",
	xsd.UnsignedInt:        "uint32",
	xsd.UnsignedLong:       "uint64",
	xsd.UnsignedShort:      "uint16",
}

func builtinType(b xsd.Builtin) TypeExpr {
	if b < 0 || int(b) >= len(builtinTbl) {
		return TypeExpr{Name: "string", Builtin: true}
	}
	return TypeExpr{Name: builtinTbl[b], Builtin: true}
}

// Go kinds used to render default values.
func isStringType(name string) bool { return name == "string" }
func isBoolType(name string) bool   { return name == "bool" }
func isFloatType(name string) bool  { return name == "float32" || name == "float64" }

func isIntType(name string) bool {
	switch name {
	case "int", "int8", "int16", "int32", "int64":
		return true
	}
	return false
}

func isUintType(name string) bool {
	switch name {
	case "uint", "uint8", "uint16", "uint32", "uint64":
		return true
	}
	return false
}
