package xsdgen

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TypeName converts a schema name into an exported Go identifier.
// Dots become underscores, the name is split into words at every
// character that is not a letter or digit, and the words are joined in
// upper camel case: "my.recursive-type" becomes "MyRecursiveType".
// Existing capitals are kept, so "HTTPHeader" is unchanged. A name that
// would not start with an upper case letter is prefixed with "X".
//
// TypeName is deterministic, and its result never contains a dot.
func TypeName(name string) string {
	name = strings.ReplaceAll(name, ".", "_")
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	// Casers are stateful and must not be shared between goroutines.
	title := cases.Title(language.Und, cases.NoLower)
	var buf strings.Builder
	for _, w := range words {
		buf.WriteString(title.String(w))
	}
	ident := buf.String()
	if r, _ := utf8.DecodeRuneInString(ident); !unicode.IsUpper(r) {
		ident = "X" + ident
	}
	return ident
}

// FieldName converts the name of an element or attribute into an
// exported Go identifier, in the same way as TypeName. The schema
// name is kept as the field's XML name.
func FieldName(name string) string {
	return TypeName(name)
}

func (cfg *Config) transform(name string) string {
	if cfg.nameTransform != nil {
		return cfg.nameTransform(name)
	}
	return name
}

func (cfg *Config) typeName(name string) string {
	return TypeName(cfg.transform(name))
}

func (cfg *Config) fieldName(name string) string {
	return FieldName(cfg.transform(name))
}

// uniqueName returns name, or name with the smallest numeric suffix
// starting at 2 that is not in taken.
func uniqueName(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}
	for i := 2; ; i++ {
		candidate := name + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}
