// Package xsdgen generates Go source code from xml schema documents.
//
// The xsdgen package declares a Go type for every complex type, simple
// type and anonymously typed global element of a schema, with the
// encoding/xml struct tags needed to marshal and unmarshal documents
// that adhere to it. Struct types also get Clone and Equal methods and
// a constructor that applies the defaults declared in the schema.
//
// Element and attribute names are converted to Go identifiers with
// TypeName. Optional elements become pointers and repeated elements
// slices. An element whose type is the type that contains it is always
// held through a pointer, as is one field of every longer chain of
// types that contain each other. Types derived by complex content
// extension or restriction carry the fields of their base type
// directly. Anonymous types are declared under a name formed from the
// enclosing type and the element, such as OrderItem for the <item>
// element of Order.
//
// The source code generation is configurable with the Option
// functions. Problems that do not stop a type from being generated are
// reported as Diagnostics and sent to the Logger set with LogOutput.
package xsdgen // import "github.com/CognitoIQ/go-xsdbind/xsdgen"
