package xsdgen

import (
	"bytes"
	"fmt"
	"io"
)

// A SchemaError reports a construct that could not be translated. No
// declarations are produced for the type it names; other types are
// unaffected.
type SchemaError struct {
	// Schema name of the type being generated.
	Type string
	// The offending construct, such as `element "next"`.
	Construct string
	Err       error
}

func (err *SchemaError) Error() string {
	if err.Construct == "" {
		return fmt.Sprintf("generate type %q: %v", err.Type, err.Err)
	}
	return fmt.Sprintf("generate type %q: %s: %v", err.Type, err.Construct, err.Err)
}

func (err *SchemaError) Unwrap() error { return err.Err }

// A ContextError reports a schema document whose header cannot be
// used. Nothing can be generated from such a document.
type ContextError struct {
	Err error
}

func (err *ContextError) Error() string {
	return fmt.Sprintf("schema context: %v", err.Err)
}

func (err *ContextError) Unwrap() error { return err.Err }

type errorList []error

func (l errorList) Error() string {
	var buf bytes.Buffer
	for _, err := range l {
		io.WriteString(&buf, err.Error()+"\n")
	}
	return buf.String()
}

func (l errorList) Unwrap() []error { return l }

// result returns l as an error, or nil if it is empty.
func (l errorList) result() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func construct(kind, name string) string {
	return fmt.Sprintf("%s %q", kind, name)
}
