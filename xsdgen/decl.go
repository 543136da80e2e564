package xsdgen

import "fmt"

// A Namespace is the XML namespace attached to generated types. When
// URI is set, element fields are qualified with it.
type Namespace struct {
	Prefix string
	URI    string
}

// DeclKind distinguishes struct declarations from named scalar types.
type DeclKind int

const (
	StructDecl DeclKind = iota
	SimpleDecl
)

func (k DeclKind) String() string {
	switch k {
	case StructDecl:
		return "struct"
	case SimpleDecl:
		return "simple"
	}
	return fmt.Sprintf("DeclKind(%d)", int(k))
}

// A TypeDecl is a single generated type definition.
type TypeDecl struct {
	// Go identifier of the type.
	Name string
	// Name of the type in the schema. Empty for hoisted types.
	XMLName   string
	Doc       string
	Namespace Namespace
	Kind      DeclKind
	// Fields of a StructDecl, in output order: element and text
	// fields first, then attributes.
	Fields []Field
	// Underlying type of a SimpleDecl.
	Base TypeExpr
	// Enumerated values of a SimpleDecl.
	Enum []string
	// Alias is set for simple types declared as aliases of their
	// base, which keeps the base type's methods.
	Alias bool
	// Hoisted is set for types synthesized from an anonymous
	// type definition.
	Hoisted bool
	// Abstract is set for abstract types and elements, whose values
	// only appear in documents as derived types or substitutes.
	Abstract bool
}

// refs returns the names of the types used by d.
func (d *TypeDecl) refs() []string {
	names := make([]string, 0, len(d.Fields)+1)
	if d.Kind == SimpleDecl {
		names = append(names, d.Base.Name)
	}
	for _, f := range d.Fields {
		names = append(names, f.Type.Name)
	}
	return names
}

// Field returns the field with the given Go name.
func (d *TypeDecl) Field(name string) (*Field, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

// FieldKind is the way a field appears in XML.
type FieldKind int

const (
	ElementField FieldKind = iota
	AttributeField
	TextField
)

func (k FieldKind) String() string {
	switch k {
	case ElementField:
		return "element"
	case AttributeField:
		return "attribute"
	case TextField:
		return "text"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// A Field is a single field of a generated struct.
type Field struct {
	// Go identifier of the field.
	Name string
	// XMLName is the name of the element or attribute on the
	// wire. It is empty for text fields.
	XMLName string
	// Space qualifies XMLName with a namespace.
	Space string
	Kind  FieldKind
	Type  TypeExpr
	Doc   string
	// Default is the schema default (or fixed) value.
	Default string
	// Required is set for attributes with use="required".
	Required bool
	// Inherited holds the schema name of the base type the field was
	// flattened from.
	Inherited string
}

// Tag returns the encoding/xml struct tag for the field.
func (f *Field) Tag() string {
	var name string
	switch f.Kind {
	case TextField:
		return `xml:",chardata"`
	case AttributeField:
		name = f.XMLName + ",attr"
		if !f.Required {
			name += ",omitempty"
		}
	default:
		name = f.XMLName
		if f.Type.Optional {
			name += ",omitempty"
		}
	}
	if f.Space != "" {
		name = f.Space + " " + name
	}
	return fmt.Sprintf("xml:%q", name)
}

// A TypeExpr is the Go type of a field, with its cardinality wrappers.
type TypeExpr struct {
	// Go name of the element type, such as "string", "time.Time"
	// or "Order".
	Name string
	// Builtin is set for predeclared and standard library types.
	Builtin bool
	// Struct is set when Name is a generated struct type.
	Struct bool
	// Underlying is the builtin Go type a generated simple type is
	// defined as. Empty for builtins and structs.
	Underlying string
	// Optional values are referenced through a pointer.
	Optional bool
	// Plural values are held in a slice.
	Plural bool
	// Indirect values are referenced through a pointer regardless of
	// cardinality. Set for recursive fields.
	Indirect bool
}

// String renders the type as Go source: T, *T, []T or []*T. Optional
// byte slices are not wrapped in a pointer, as nil already marks them
// absent.
func (t TypeExpr) String() string {
	switch {
	case t.Plural && t.Indirect:
		return "[]*" + t.Name
	case t.Plural:
		return "[]" + t.Name
	case t.Pointer():
		return "*" + t.Name
	}
	return t.Name
}

// Pointer reports whether the rendered type is a pointer.
func (t TypeExpr) Pointer() bool {
	if t.Plural {
		return false
	}
	return t.Indirect || (t.Optional && !t.isBytes())
}

// base returns the Go type the value ultimately has.
func (t TypeExpr) base() string {
	if t.Underlying != "" {
		return t.Underlying
	}
	return t.Name
}

func (t TypeExpr) isBytes() bool { return t.base() == "[]byte" }
func (t TypeExpr) isTime() bool  { return t.base() == "time.Time" }

// Level is the severity of a Diagnostic.
type Level int

const (
	Warning Level = iota
	Info
	Debug
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Debug:
		return "debug"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// A Diagnostic is a message about the generation of a type that did not
// prevent it from being generated.
type Diagnostic struct {
	Level Level
	// Schema name of the type being generated, if any.
	Type    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Type == "" {
		return fmt.Sprintf("%s: %s", d.Level, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Level, d.Type, d.Message)
}

// A Fragment is the output of implementing a single complex type: the
// type itself followed by the types hoisted out of it.
type Fragment struct {
	Decls       []TypeDecl
	Diagnostics []Diagnostic
}

// Primary returns the declaration of the implemented type.
func (f *Fragment) Primary() *TypeDecl {
	if len(f.Decls) == 0 {
		return nil
	}
	return &f.Decls[0]
}

// Decl returns the declaration with the given Go name.
func (f *Fragment) Decl(name string) (*TypeDecl, bool) {
	return findDecl(f.Decls, name)
}

// Output is the result of generating every type in a schema.
type Output struct {
	// Documentation of the schema itself.
	Doc         string
	Decls       []TypeDecl
	Diagnostics []Diagnostic
}

// Decl returns the declaration with the given Go name.
func (o *Output) Decl(name string) (*TypeDecl, bool) {
	return findDecl(o.Decls, name)
}

func findDecl(decls []TypeDecl, name string) (*TypeDecl, bool) {
	for i := range decls {
		if decls[i].Name == name {
			return &decls[i], true
		}
	}
	return nil, false
}
